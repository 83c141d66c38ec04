package models

import "time"

// RSVP is a user's commitment to attend an event, one per (event, user).
// QRCode is the opaque credential presented at check-in.
type RSVP struct {
	EventID  int64     `json:"event_id" db:"event_id"`
	UserID   int64     `json:"user_id" db:"user_id"`
	RsvpDate time.Time `json:"rsvp_date" db:"rsvp_date"`
	QRCode   string    `json:"qr_code" db:"qr_code"`
}

func (RSVP) TableName() string {
	return "rsvps"
}

// GetID satisfies Model; RSVPs are keyed by the (event, user) pair rather
// than a surrogate id.
func (r RSVP) GetID() int64 {
	return r.EventID
}

func (r RSVP) EmptySlice() interface{} {
	return &[]RSVP{}
}

// Attendance records a physical check-in, valid only following an RSVP for
// the same (event, user) pair.
type Attendance struct {
	EventID     int64     `json:"event_id" db:"event_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CheckinTime time.Time `json:"checkin_time" db:"checkin_time"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a Attendance) GetID() int64 {
	return a.EventID
}

func (a Attendance) EmptySlice() interface{} {
	return &[]Attendance{}
}

// RsvpUserDetail is the organiser export row: one attendee with contact and
// profile details, produced by joining rsvps against users and
// student_profiles.
type RsvpUserDetail struct {
	UserID   int64     `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Course   string    `json:"course"`
	RsvpDate time.Time `json:"rsvp_date"`
	QRCode   string    `json:"qr_code"`
}
