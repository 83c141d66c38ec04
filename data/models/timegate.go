package models

import "time"

// The time gate is the one predicate deciding whether an event still counts
// as upcoming relative to a reference instant. Every upcoming listing — plain,
// searched, organiser-scoped, recommended — must agree with it, so it lives
// here and nowhere else. The boundary is inclusive: an event starting exactly
// now is still upcoming.

// IsUpcoming reports whether the event is on a later day than now, or on the
// same day with a start time at or after now.
func (e Event) IsUpcoming(now time.Time) bool {
	eventDay := dateOnly(e.Date)
	today := dateOnly(now)

	if eventDay.After(today) {
		return true
	}
	return eventDay.Equal(today) && !e.StartTime.Before(now)
}

// IsPast is the complementary gate used by history views: the event's day is
// strictly before now's day. Same-day events are never past, regardless of
// start time, matching the listing behaviour organisers expect.
func (e Event) IsPast(now time.Time) bool {
	return dateOnly(e.Date).Before(dateOnly(now))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
