// Package service orchestrates the event lifecycle core for the web layer:
// validation in front of the repositories, best-effort semantics on the
// non-critical read paths, and notification dispatch on the write paths.
package service

import (
	"errors"
	"log"

	"campus-events/data/models"
	"campus-events/data/repository"
)

type EventService struct {
	Repo repository.DBRepo
}

// CreateEvent validates and stores a new event, defaulting its status to
// ACTIVE, and returns the generated id.
func (s *EventService) CreateEvent(e models.Event) (int64, error) {
	if e.Status == "" {
		e.Status = models.StatusActive
	}
	if err := models.ValidateModel(e); err != nil {
		return 0, err
	}
	return s.Repo.CreateEvent(e)
}

// GetEvent returns the event regardless of status, or nil when it does not
// exist. Callers filter by status as needed.
func (s *EventService) GetEvent(id int64) (*models.Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEvent replaces the event's mutable fields after validation.
func (s *EventService) UpdateEvent(e models.Event) error {
	if e.Status == "" {
		e.Status = models.StatusActive
	}
	if err := models.ValidateModel(e); err != nil {
		return err
	}
	return s.Repo.UpdateEvent(e)
}

// CancelEvent soft-deletes the event; the row stays for history.
func (s *EventService) CancelEvent(id int64) error {
	return s.Repo.CancelEvent(id)
}

// HardDeleteEvent marks the event DELETED and records who removed it and why.
func (s *EventService) HardDeleteEvent(id, adminID int64, reason string) error {
	return s.Repo.HardDeleteEvent(id, adminID, reason)
}

func (s *EventService) ListActiveEvents() ([]models.Event, error) {
	return s.Repo.ListActiveEvents()
}

func (s *EventService) ListDeletedEvents() ([]models.Event, error) {
	return s.Repo.ListDeletedEvents()
}

func (s *EventService) DeletedLogs() ([]models.DeletedEventLog, error) {
	return s.Repo.DeletedLogs()
}

// SetEventTags fully replaces the event's tags from a comma-separated list.
func (s *EventService) SetEventTags(eventID int64, commaSeparated string) error {
	return s.Repo.SetEventTags(eventID, commaSeparated)
}

// ListTags returns the whole tag vocabulary, empty on failure so filter
// dropdowns still render.
func (s *EventService) ListTags() []models.Tag {
	tags, err := s.Repo.ListTags()
	if err != nil {
		log.Printf("listing tags: %v", err)
		return []models.Tag{}
	}
	return tags
}

func (s *EventService) TagsForEvent(eventID int64) []models.Tag {
	tags, err := s.Repo.TagsForEvent(eventID)
	if err != nil {
		log.Printf("listing tags for event %d: %v", eventID, err)
		return []models.Tag{}
	}
	return tags
}
