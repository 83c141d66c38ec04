package repository

import (
	"fmt"
	"time"

	"campus-events/data/models"
)

// InterestTagNames builds a user's interest vocabulary: the distinct
// lower-cased tag names of every event they have ever RSVPed to, plus their
// free-text profile interest when present.
func (sr *SqlRepo) InterestTagNames(userID int64) ([]string, error) {
	query := `
		SELECT DISTINCT LOWER(t.tag_name)
		  FROM rsvps r
		  JOIN event_tags et ON et.event_id = r.event_id
		  JOIN tags t ON t.tag_id = et.tag_id
		 WHERE r.user_id = $1
		UNION
		SELECT LOWER(TRIM(sp.interest))
		  FROM student_profiles sp
		 WHERE sp.user_id = $2 AND TRIM(COALESCE(sp.interest, '')) <> ''`

	rows, err := sr.DB.Query(query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading interest tags for user %d: %v", userID, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning interest tag: %v", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CandidateEvents returns the recommendation pool for a user: ACTIVE upcoming
// events the user has not RSVPed to.
func (sr *SqlRepo) CandidateEvents(userID int64, now time.Time) ([]models.Event, error) {
	today := dateOf(now)
	query := `
		SELECT e.*
		  FROM events e
		  LEFT JOIN rsvps r ON r.event_id = e.event_id AND r.user_id = $1
		 WHERE r.event_id IS NULL
		   AND e.status = 'ACTIVE'
		   AND ` + upcomingCond(2) + `
		 ORDER BY e.date ASC, e.start_time ASC`

	rows, err := sr.DB.Query(query, userID, today, today, now)
	if err != nil {
		return nil, fmt.Errorf("error loading candidate events for user %d: %v", userID, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// EventTagNames returns the distinct lower-cased tag names per event for the
// given ids, in one query.
func (sr *SqlRepo) EventTagNames(eventIDs []int64) (map[int64][]string, error) {
	byEvent := map[int64][]string{}
	if len(eventIDs) == 0 {
		return byEvent, nil
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT et.event_id, LOWER(t.tag_name)
		  FROM event_tags et
		  JOIN tags t ON t.tag_id = et.tag_id
		 WHERE et.event_id IN (%s)`, placeholders(len(eventIDs)))

	vals := make([]interface{}, len(eventIDs))
	for i, id := range eventIDs {
		vals[i] = id
	}

	rows, err := sr.DB.Query(query, vals...)
	if err != nil {
		return nil, fmt.Errorf("error loading event tag names: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("error scanning event tag name: %v", err)
		}
		byEvent[id] = append(byEvent[id], name)
	}
	return byEvent, rows.Err()
}
