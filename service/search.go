package service

import (
	"log"
	"time"

	"campus-events/data/models"
	"campus-events/data/repository"
)

type SearchService struct {
	Repo repository.DBRepo
}

// SearchUpcoming is the browse listing: ACTIVE upcoming events matching the
// optional free-text query, optionally paginated. Failures degrade to an
// empty page rather than an error.
func (s *SearchService) SearchUpcoming(query string, page, size *int, now time.Time) []models.Event {
	events, err := s.Repo.SearchUpcoming(query, nil, page, size, now)
	if err != nil {
		log.Printf("searching upcoming events: %v", err)
		return []models.Event{}
	}
	return events
}

// SearchUpcomingByOrganiser scopes the upcoming listing to one organiser's
// events. The organiser id comes in as an explicit parameter; nothing here
// reads ambient session state.
func (s *SearchService) SearchUpcomingByOrganiser(organiserID int64, query string, page, size *int, now time.Time) []models.Event {
	events, err := s.Repo.SearchUpcoming(query, &organiserID, page, size, now)
	if err != nil {
		log.Printf("searching upcoming events for organiser %d: %v", organiserID, err)
		return []models.Event{}
	}
	return events
}

// SearchPast is the history listing: past events including cancelled ones,
// hard deletions excluded.
func (s *SearchService) SearchPast(query string, now time.Time) []models.Event {
	events, err := s.Repo.SearchPast(query, now)
	if err != nil {
		log.Printf("searching past events: %v", err)
		return []models.Event{}
	}
	return events
}
