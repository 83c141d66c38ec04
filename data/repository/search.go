package repository

import (
	"fmt"
	"strings"
	"time"

	"campus-events/data/models"
)

// upcomingCond renders the SQL side of the time gate starting at placeholder
// ph. It binds three values: today, today again, and the full now timestamp.
// Must stay in lockstep with models.Event.IsUpcoming.
func upcomingCond(ph int) string {
	return fmt.Sprintf("(e.date > $%d::date OR (e.date = $%d::date AND e.start_time >= $%d))",
		ph, ph+1, ph+2)
}

// SearchUpcoming returns ACTIVE upcoming events, optionally filtered by a
// case-insensitive substring over title, description and location, and
// optionally scoped to one organiser. Ordering is date, start time, title so
// pages stay stable; pagination applies only when both page (>= 0) and
// size (> 0) are given, otherwise the full result is returned.
func (sr *SqlRepo) SearchUpcoming(query string, organiserID *int64, page, size *int, now time.Time) ([]models.Event, error) {
	today := dateOf(now)
	conds := []string{"e.status = 'ACTIVE'", upcomingCond(1)}
	vals := []interface{}{today, today, now}
	ph := 4

	if organiserID != nil {
		conds = append(conds, fmt.Sprintf("e.organiser_id = $%d", ph))
		vals = append(vals, *organiserID)
		ph++
	}

	if q := strings.TrimSpace(query); q != "" {
		conds = append(conds, fmt.Sprintf(
			"LOWER(CONCAT(COALESCE(e.title,''), ' ', COALESCE(e.description,''), ' ', COALESCE(e.location,''))) LIKE $%d", ph))
		vals = append(vals, "%"+strings.ToLower(q)+"%")
		ph++
	}

	sqlStr := "SELECT e.* FROM events e WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY e.date ASC, e.start_time ASC, e.title ASC"

	if page != nil && size != nil && *page >= 0 && *size > 0 {
		sqlStr += fmt.Sprintf(" LIMIT $%d OFFSET $%d", ph, ph+1)
		vals = append(vals, *size, *page**size)
	}

	rows, err := sr.DB.Query(sqlStr, vals...)
	if err != nil {
		return nil, fmt.Errorf("error searching upcoming events: %v", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// SearchPast returns the history view: events dated before today, hard
// deletions excluded but cancellations kept, newest first.
func (sr *SqlRepo) SearchPast(query string, now time.Time) ([]models.Event, error) {
	conds := []string{"e.date < $1::date", "e.status <> 'DELETED'"}
	vals := []interface{}{dateOf(now)}
	ph := 2

	if q := strings.TrimSpace(query); q != "" {
		conds = append(conds, fmt.Sprintf(
			"LOWER(CONCAT(COALESCE(e.title,''), ' ', COALESCE(e.description,''), ' ', COALESCE(e.location,''))) LIKE $%d", ph))
		vals = append(vals, "%"+strings.ToLower(q)+"%")
	}

	sqlStr := "SELECT e.* FROM events e WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY e.date DESC"

	rows, err := sr.DB.Query(sqlStr, vals...)
	if err != nil {
		return nil, fmt.Errorf("error searching past events: %v", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}
