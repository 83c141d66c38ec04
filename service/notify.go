package service

import (
	"log"
	"time"
)

type NotificationKind string

const (
	NotificationRsvpConfirmed NotificationKind = "rsvp_confirmed"
	NotificationEventReminder NotificationKind = "event_reminder"
)

// Notification is the payload handed to the outbound delivery collaborator
// (email, push). Delivery itself lives outside this core.
type Notification struct {
	Kind          NotificationKind
	UserID        int64
	Email         string
	Name          string
	EventTitle    string
	EventDate     time.Time
	EventLocation string
}

// Notifier delivers notifications. Implementations must be safe to call from
// the write paths: the core treats every Notify as fire-and-forget and never
// fails a booking because delivery failed.
type Notifier interface {
	Notify(n Notification) error
}

// LogNotifier is the default collaborator: it just logs what would be sent.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) error {
	log.Printf("notify %s -> user %d (%s): %s on %s at %s",
		n.Kind, n.UserID, n.Email, n.EventTitle,
		n.EventDate.Format("2006-01-02"), n.EventLocation)
	return nil
}
