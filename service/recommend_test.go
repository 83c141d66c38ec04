package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"campus-events/data/models"
	"campus-events/data/repository"

	"github.com/stretchr/testify/assert"
)

// stubRepo embeds the repository interface so each test overrides only the
// methods its service touches; anything else panics loudly.
type stubRepo struct {
	repository.DBRepo

	interestTags    []string
	interestTagsErr error
	candidates      []models.Event
	candidatesErr   error
	tagsByEvent     map[int64][]string

	user     models.User
	userErr  error
	event    models.Event
	eventErr error
	rsvpErr  error

	eventsOn       []models.Event
	eventsOnErr    error
	rsvpDetails    map[int64][]models.RsvpUserDetail
	rsvpDetailsErr map[int64]error
	pastBooked     []models.Event
	pastBookedErr  error

	searchUpcoming    []models.Event
	searchUpcomingErr error
	searchPast        []models.Event
	searchPastErr     error
	gotOrganiserID    *int64

	gotProfile       models.StudentProfile
	updateProfileErr error
}

func (s *stubRepo) InterestTagNames(userID int64) ([]string, error) {
	return s.interestTags, s.interestTagsErr
}

func (s *stubRepo) CandidateEvents(userID int64, now time.Time) ([]models.Event, error) {
	return s.candidates, s.candidatesErr
}

func (s *stubRepo) EventTagNames(eventIDs []int64) (map[int64][]string, error) {
	return s.tagsByEvent, nil
}

func (s *stubRepo) Rsvp(eventID, userID int64) error {
	return s.rsvpErr
}

func (s *stubRepo) GetUserByID(id int64) (models.User, error) {
	return s.user, s.userErr
}

func (s *stubRepo) GetEventByID(id int64) (models.Event, error) {
	return s.event, s.eventErr
}

func (s *stubRepo) EventsOn(day time.Time) ([]models.Event, error) {
	return s.eventsOn, s.eventsOnErr
}

func (s *stubRepo) RsvpDetails(eventID int64) ([]models.RsvpUserDetail, error) {
	return s.rsvpDetails[eventID], s.rsvpDetailsErr[eventID]
}

func (s *stubRepo) PastBookedEvents(userID int64, asOf time.Time) ([]models.Event, error) {
	return s.pastBooked, s.pastBookedErr
}

func (s *stubRepo) SearchUpcoming(query string, organiserID *int64, page, size *int, now time.Time) ([]models.Event, error) {
	s.gotOrganiserID = organiserID
	return s.searchUpcoming, s.searchUpcomingErr
}

func (s *stubRepo) SearchPast(query string, now time.Time) ([]models.Event, error) {
	return s.searchPast, s.searchPastErr
}

func (s *stubRepo) UpdateProfile(p models.StudentProfile) error {
	s.gotProfile = p
	return s.updateProfileErr
}

func TestTagsOverlap(t *testing.T) {
	assert.True(t, TagsOverlap("music", "music"))
	assert.True(t, TagsOverlap("music", "live music"))
	assert.True(t, TagsOverlap("arts", "art"))
	assert.False(t, TagsOverlap("music", "sports"))
	assert.False(t, TagsOverlap("", "music"))
	assert.False(t, TagsOverlap("music", ""))
}

func TestSimilarityScore(t *testing.T) {
	t.Run("no event tags scores zero", func(t *testing.T) {
		assert.Zero(t, SimilarityScore([]string{"music"}, nil))
	})

	t.Run("no overlap scores zero", func(t *testing.T) {
		assert.Zero(t, SimilarityScore([]string{"music"}, []string{"sports"}))
	})

	t.Run("single exact match", func(t *testing.T) {
		assert.InDelta(t, 1.0, SimilarityScore([]string{"music"}, []string{"music"}), 1e-9)
	})

	t.Run("normalised by set sizes", func(t *testing.T) {
		// 1 shared over sqrt(2*2)
		got := SimilarityScore([]string{"music", "arts"}, []string{"music", "chess"})
		assert.InDelta(t, 0.5, got, 1e-9)
	})

	t.Run("empty interests do not divide by zero", func(t *testing.T) {
		assert.Zero(t, SimilarityScore(nil, []string{"music"}))
	})
}

func TestRankBySimilarity(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	event := func(id int64, daysOut int) models.Event {
		return models.Event{
			ID:        id,
			Title:     fmt.Sprintf("event %d", id),
			Date:      now.AddDate(0, 0, daysOut),
			StartTime: now.AddDate(0, 0, daysOut),
		}
	}

	t.Run("matched candidates ranked, unmatched dropped", func(t *testing.T) {
		// interests built from two booked events tagged music and arts
		interests := []string{"music", "arts"}
		candidates := []models.Event{event(1, 2), event(2, 1)}
		tags := map[int64][]string{
			1: {"music"},
			2: {"sports"},
		}

		got := RankBySimilarity(candidates, tags, interests, 10)

		assert.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("higher score wins regardless of date", func(t *testing.T) {
		interests := []string{"music", "arts"}
		candidates := []models.Event{event(1, 1), event(2, 5)}
		tags := map[int64][]string{
			1: {"music", "chess"}, // one of two tags matched
			2: {"music", "arts"},  // both tags matched
		}

		got := RankBySimilarity(candidates, tags, interests, 10)

		assert.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("ties broken by date then start time", func(t *testing.T) {
		interests := []string{"music"}
		candidates := []models.Event{event(1, 3), event(2, 1), event(3, 2)}
		tags := map[int64][]string{
			1: {"music"},
			2: {"music"},
			3: {"music"},
		}

		got := RankBySimilarity(candidates, tags, interests, 10)

		assert.Equal(t, []int64{2, 3, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("limit truncates", func(t *testing.T) {
		interests := []string{"music"}
		candidates := []models.Event{event(1, 1), event(2, 2), event(3, 3)}
		tags := map[int64][]string{1: {"music"}, 2: {"music"}, 3: {"music"}}

		got := RankBySimilarity(candidates, tags, interests, 2)

		assert.Len(t, got, 2)
	})
}

func TestRecommend(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

	t.Run("ranks candidates against interests", func(t *testing.T) {
		repo := &stubRepo{
			interestTags: []string{"music", "arts"},
			candidates: []models.Event{
				{ID: 1, Title: "Open Mic", Date: now.AddDate(0, 0, 1)},
				{ID: 2, Title: "Football Trial", Date: now.AddDate(0, 0, 1)},
			},
			tagsByEvent: map[int64][]string{
				1: {"Live Music"},
				2: {"Sports"},
			},
		}
		svc := &RecommendationService{Repo: repo}

		got := svc.Recommend(42, now, 0)

		assert.Len(t, got, 1)
		assert.Equal(t, "Open Mic", got[0].Title)
	})

	t.Run("feed failure degrades to an empty list", func(t *testing.T) {
		repo := &stubRepo{interestTagsErr: errors.New("boom")}
		svc := &RecommendationService{Repo: repo}

		got := svc.Recommend(42, now, 0)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("candidate failure degrades to an empty list", func(t *testing.T) {
		repo := &stubRepo{
			interestTags:  []string{"music"},
			candidatesErr: errors.New("boom"),
		}
		svc := &RecommendationService{Repo: repo}

		assert.Empty(t, svc.Recommend(42, now, 0))
	})
}

func BenchmarkRankBySimilarity(b *testing.B) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	interests := []string{"music", "arts", "chess", "coding", "food"}

	candidates := make([]models.Event, 500)
	tags := make(map[int64][]string, len(candidates))
	pool := []string{"live music", "sports", "arts", "robotics", "coding", "careers"}
	for i := range candidates {
		id := int64(i + 1)
		candidates[i] = models.Event{ID: id, Date: now.AddDate(0, 0, i%30)}
		tags[id] = []string{pool[i%len(pool)], pool[(i+2)%len(pool)]}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RankBySimilarity(candidates, tags, interests, DefaultRecommendationLimit)
	}
}
