package models

import (
	"time"

	"github.com/go-playground/validator"
)

// Event status values. CANCELLED (soft delete) and DELETED (hard delete) are
// independent states reachable from ACTIVE directly; DELETED is terminal.
const (
	StatusActive    = "ACTIVE"
	StatusCancelled = "CANCELLED"
	StatusDeleted   = "DELETED"
)

// MinStartFinishGap is the minimum duration an event must run for. Mirrors
// the form-level check organisers see when creating an event.
const MinStartFinishGap = 30 * time.Minute

// FinishTimeLayout is the wire format of Event.FinishTime, a time of day on
// the event's date.
const FinishTimeLayout = "15:04"

type Event struct {
	ID          int64     `json:"id" db:"event_id" readOnly:"true"`
	OrganiserID *int64    `json:"organiser_id" db:"organiser_id"`
	ClubID      *int64    `json:"club_id" db:"club_id"`
	Title       string    `validate:"required,max=100" json:"title" db:"title"`
	Description string    `validate:"required,max=2000" json:"description" db:"description"`
	Location    string    `validate:"required,max=255" json:"location" db:"location"`
	Date        time.Time `validate:"required" json:"date" db:"date"`
	StartTime   time.Time `validate:"required" json:"start_time" db:"start_time"`
	FinishTime  string    `validate:"required" json:"finish_time" db:"finish_time"`
	Status      string    `validate:"omitempty,oneof=ACTIVE CANCELLED DELETED" json:"status" db:"status"`
	Capacity    int       `validate:"required,gt=0" json:"capacity" db:"capacity"`
}

func (Event) TableName() string {
	return "events"
}

func (e Event) GetID() int64 {
	return e.ID
}

func (e Event) EmptySlice() interface{} {
	return &[]Event{}
}

// FinishesAt combines the event's date with its finish time of day. The zero
// time is returned when FinishTime does not parse.
func (e Event) FinishesAt() time.Time {
	t, err := time.Parse(FinishTimeLayout, e.FinishTime)
	if err != nil {
		// tolerate a seconds suffix, the DB may round-trip one
		t, err = time.Parse("15:04:05", e.FinishTime)
		if err != nil {
			return time.Time{}
		}
	}
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, e.Date.Location())
}

// eventStructLevel enforces the rules that span multiple fields: the finish
// time, combined with the date, must sit at least MinStartFinishGap after the
// start timestamp.
func eventStructLevel(sl validator.StructLevel) {
	e := sl.Current().Interface().(Event)
	if e.FinishTime == "" || e.StartTime.IsZero() || e.Date.IsZero() {
		return // covered by the field-level required rules
	}

	finish := e.FinishesAt()
	if finish.IsZero() {
		sl.ReportError(e.FinishTime, "FinishTime", "finish_time", "timeofday", "")
		return
	}
	if finish.Sub(e.StartTime) < MinStartFinishGap {
		sl.ReportError(e.FinishTime, "FinishTime", "finish_time", "mingap", "")
	}
}
