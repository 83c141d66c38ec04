package service

import (
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"campus-events/data/models"
	"campus-events/data/repository"
)

// DefaultRecommendationLimit caps the personalised listing when the caller
// does not say otherwise.
const DefaultRecommendationLimit = 8

type RecommendationService struct {
	Repo repository.DBRepo
}

// Recommend ranks upcoming ACTIVE events the user has not booked by tag
// similarity to their interests. Recommendation is best-effort: any failure
// returns an empty list so the caller's page still renders.
func (s *RecommendationService) Recommend(userID int64, now time.Time, limit int) []models.Event {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	interests, err := s.Repo.InterestTagNames(userID)
	if err != nil {
		log.Printf("recommendations for user %d: %v", userID, err)
		return []models.Event{}
	}

	candidates, err := s.Repo.CandidateEvents(userID, now)
	if err != nil {
		log.Printf("recommendations for user %d: %v", userID, err)
		return []models.Event{}
	}

	ids := make([]int64, len(candidates))
	for i, e := range candidates {
		ids[i] = e.ID
	}
	tagsByEvent, err := s.Repo.EventTagNames(ids)
	if err != nil {
		log.Printf("recommendations for user %d: %v", userID, err)
		return []models.Event{}
	}

	return RankBySimilarity(candidates, tagsByEvent, interests, limit)
}

type scoredEvent struct {
	event models.Event
	score float64
}

// RankBySimilarity scores each candidate against the interest tag set and
// returns the best limit events, highest score first with date then start
// time breaking ties. Candidates with no overlap at all are dropped, not
// merely ranked last.
func RankBySimilarity(candidates []models.Event, tagsByEvent map[int64][]string, interests []string, limit int) []models.Event {
	interestSet := normaliseTagSet(interests)

	scored := []scoredEvent{}
	for _, e := range candidates {
		eventTags := normaliseTagSet(tagsByEvent[e.ID])
		score := SimilarityScore(interestSet, eventTags)
		if score > 0 {
			scored = append(scored, scoredEvent{event: e, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if !scored[i].event.Date.Equal(scored[j].event.Date) {
			return scored[i].event.Date.Before(scored[j].event.Date)
		}
		return scored[i].event.StartTime.Before(scored[j].event.StartTime)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	events := make([]models.Event, len(scored))
	for i, se := range scored {
		events[i] = se.event
	}
	return events
}

// SimilarityScore is the cosine-like measure between a user's interest tags
// and an event's tags: the number of event tags matched by containment,
// normalised by the geometric mean of the two set sizes.
func SimilarityScore(interests, eventTags []string) float64 {
	if len(eventTags) == 0 {
		return 0
	}

	shared := 0
	for _, et := range eventTags {
		for _, it := range interests {
			if TagsOverlap(it, et) {
				shared++
				break
			}
		}
	}
	if shared == 0 {
		return 0
	}

	interestCount := len(interests)
	if interestCount < 1 {
		interestCount = 1
	}
	return float64(shared) / math.Sqrt(float64(interestCount*len(eventTags)))
}

// TagsOverlap reports whether two normalised tag names match by symmetric
// substring containment. This is deliberately fuzzy — "art" matches "arts"
// and "music" matches "live music" — at the cost of false positives on short
// substrings. Exact matching would silently change ranking behaviour, so
// don't tighten it.
func TagsOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// normaliseTagSet lower-cases, trims and dedupes, preserving first-seen
// order so scoring stays deterministic.
func normaliseTagSet(names []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
