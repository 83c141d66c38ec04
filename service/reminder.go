package service

import (
	"log"
	"time"

	"campus-events/data/repository"
)

// ReminderService drives the daily reminder sweep. The cron trigger lives
// outside; whoever owns the schedule calls SendEventReminders once a day.
type ReminderService struct {
	Repo     repository.DBRepo
	Notifier Notifier
}

// SendEventReminders notifies every attendee of every event happening
// tomorrow, cancelled events excluded. Each failure is logged and skipped so
// one bad row never starves the rest of the sweep.
func (s *ReminderService) SendEventReminders(now time.Time) {
	tomorrow := now.AddDate(0, 0, 1)

	events, err := s.Repo.EventsOn(tomorrow)
	if err != nil {
		log.Printf("reminder sweep: %v", err)
		return
	}
	log.Printf("reminder sweep: %d events on %s", len(events), tomorrow.Format("2006-01-02"))

	for _, event := range events {
		details, err := s.Repo.RsvpDetails(event.ID)
		if err != nil {
			log.Printf("reminder sweep for event %d: %v", event.ID, err)
			continue
		}

		for _, d := range details {
			n := Notification{
				Kind:          NotificationEventReminder,
				UserID:        d.UserID,
				Email:         d.Email,
				Name:          d.Name,
				EventTitle:    event.Title,
				EventDate:     event.Date,
				EventLocation: event.Location,
			}
			if err := s.Notifier.Notify(n); err != nil {
				log.Printf("reminder notify failed for user %d event %d: %v", d.UserID, event.ID, err)
			}
		}
	}
}
