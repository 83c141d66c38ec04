package service

import (
	"log"
	"time"

	"campus-events/data/models"
	"campus-events/data/repository"
)

type LedgerService struct {
	Repo     repository.DBRepo
	Notifier Notifier
}

// Rsvp books the user onto the event. The write must succeed or fail loudly;
// the confirmation notification afterwards is best-effort only.
func (s *LedgerService) Rsvp(eventID, userID int64) error {
	if err := s.Repo.Rsvp(eventID, userID); err != nil {
		return err
	}
	s.sendConfirmation(eventID, userID)
	return nil
}

func (s *LedgerService) CancelRsvp(eventID, userID int64) error {
	return s.Repo.CancelRsvp(eventID, userID)
}

// CheckIn records attendance; false means the user never RSVPed and nothing
// was written.
func (s *LedgerService) CheckIn(eventID, userID int64) (bool, error) {
	return s.Repo.CheckIn(eventID, userID)
}

func (s *LedgerService) RsvpedEventIDs(userID int64) ([]int64, error) {
	return s.Repo.RsvpedEventIDs(userID)
}

// RsvpDetails feeds the organiser export page; an empty list on failure keeps
// the page rendering.
func (s *LedgerService) RsvpDetails(eventID int64) []models.RsvpUserDetail {
	details, err := s.Repo.RsvpDetails(eventID)
	if err != nil {
		log.Printf("listing rsvp details for event %d: %v", eventID, err)
		return []models.RsvpUserDetail{}
	}
	return details
}

// PastBookedEvents is the user's booking history before asOf. Check-in status
// is deliberately ignored; this view answers "what did I book", not "what did
// I attend".
func (s *LedgerService) PastBookedEvents(userID int64, asOf time.Time) []models.Event {
	events, err := s.Repo.PastBookedEvents(userID, asOf)
	if err != nil {
		log.Printf("listing past booked events for user %d: %v", userID, err)
		return []models.Event{}
	}
	return events
}

func (s *LedgerService) sendConfirmation(eventID, userID int64) {
	if s.Notifier == nil {
		return
	}

	user, err := s.Repo.GetUserByID(userID)
	if err != nil {
		log.Printf("rsvp confirmation for user %d: %v", userID, err)
		return
	}
	event, err := s.Repo.GetEventByID(eventID)
	if err != nil {
		log.Printf("rsvp confirmation for event %d: %v", eventID, err)
		return
	}

	n := Notification{
		Kind:          NotificationRsvpConfirmed,
		UserID:        user.ID,
		Email:         user.Email,
		EventTitle:    event.Title,
		EventDate:     event.Date,
		EventLocation: event.Location,
	}
	if err := s.Notifier.Notify(n); err != nil {
		log.Printf("rsvp confirmation notify failed for user %d: %v", userID, err)
	}
}
