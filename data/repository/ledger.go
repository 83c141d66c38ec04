package repository

import (
	"fmt"
	"time"

	"campus-events/data/models"

	"github.com/google/uuid"
)

// Rsvp records a user's intent to attend. The (event_id, user_id) pair is
// unique; a repeat RSVP only refreshes the timestamp, so concurrent duplicate
// attempts collapse into one row. The check-in credential is minted on first
// insert and survives refreshes.
func (sr *SqlRepo) Rsvp(eventID, userID int64) error {
	query := `
		INSERT INTO rsvps (event_id, user_id, rsvp_date, qr_code)
		VALUES ($1, $2, NOW(), $3)
		ON CONFLICT (event_id, user_id) DO UPDATE SET rsvp_date = EXCLUDED.rsvp_date`

	if _, err := sr.DB.Exec(query, eventID, userID, uuid.NewString()); err != nil {
		return fmt.Errorf("error recording rsvp (%d, %d): %v", eventID, userID, err)
	}
	return nil
}

// CancelRsvp removes the pair if present; cancelling a non-existent RSVP is
// not an error.
func (sr *SqlRepo) CancelRsvp(eventID, userID int64) error {
	_, err := sr.DB.Exec("DELETE FROM rsvps WHERE event_id = $1 AND user_id = $2", eventID, userID)
	if err != nil {
		return fmt.Errorf("error cancelling rsvp (%d, %d): %v", eventID, userID, err)
	}
	return nil
}

// CheckIn upserts an attendance record for the pair and reports whether the
// check-in was accepted. A check-in without a matching RSVP is rejected
// without writing anything; that refusal is the authorization gate.
func (sr *SqlRepo) CheckIn(eventID, userID int64) (bool, error) {
	var rsvpCount int
	err := sr.DB.QueryRow(
		"SELECT COUNT(*) FROM rsvps WHERE event_id = $1 AND user_id = $2",
		eventID, userID).Scan(&rsvpCount)
	if err != nil {
		return false, fmt.Errorf("error checking rsvp (%d, %d): %v", eventID, userID, err)
	}
	if rsvpCount == 0 {
		return false, nil
	}

	query := `
		INSERT INTO attendance (event_id, user_id, checkin_time)
		VALUES ($1, $2, NOW())
		ON CONFLICT (event_id, user_id) DO UPDATE SET checkin_time = EXCLUDED.checkin_time`

	if _, err := sr.DB.Exec(query, eventID, userID); err != nil {
		return false, fmt.Errorf("error recording check-in (%d, %d): %v", eventID, userID, err)
	}
	return true, nil
}

func (sr *SqlRepo) RsvpedEventIDs(userID int64) ([]int64, error) {
	rows, err := sr.DB.Query("SELECT event_id FROM rsvps WHERE user_id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("error listing rsvped event ids for user %d: %v", userID, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning event id: %v", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RsvpDetails returns the organiser export view for an event: every attendee
// with contact and profile details, ordered by when they RSVPed.
func (sr *SqlRepo) RsvpDetails(eventID int64) ([]models.RsvpUserDetail, error) {
	query := `
		SELECT r.user_id, u.email, COALESCE(sp.name, ''), COALESCE(sp.course, ''),
		       r.rsvp_date, r.qr_code
		  FROM rsvps r
		  JOIN users u ON u.user_id = r.user_id
		  LEFT JOIN student_profiles sp ON sp.user_id = r.user_id
		 WHERE r.event_id = $1
		 ORDER BY r.rsvp_date ASC`

	rows, err := sr.DB.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing rsvp details for event %d: %v", eventID, err)
	}
	defer rows.Close()

	details := []models.RsvpUserDetail{}
	for rows.Next() {
		var d models.RsvpUserDetail
		if err := rows.Scan(&d.UserID, &d.Email, &d.Name, &d.Course, &d.RsvpDate, &d.QRCode); err != nil {
			return nil, fmt.Errorf("error scanning rsvp detail: %v", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// PastBookedEvents returns events before asOf's date that the user holds an
// RSVP for, newest first. This is a booking-history view: whether the user
// actually checked in does not matter here.
func (sr *SqlRepo) PastBookedEvents(userID int64, asOf time.Time) ([]models.Event, error) {
	query := `
		SELECT e.*
		  FROM events e
		  JOIN rsvps r ON r.event_id = e.event_id
		 WHERE e.date < $1::date
		   AND r.user_id = $2
		   AND e.status <> 'DELETED'
		 ORDER BY e.date DESC`

	rows, err := sr.DB.Query(query, dateOf(asOf), userID)
	if err != nil {
		return nil, fmt.Errorf("error listing past booked events for user %d: %v", userID, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}
