package models

import "time"

// DeletedEventLog is the append-only audit record written alongside a hard
// delete. Exactly one row per delete action; rows are never updated.
type DeletedEventLog struct {
	ID        int64     `json:"id" db:"log_id" readOnly:"true"`
	EventID   int64     `validate:"required" json:"event_id" db:"event_id"`
	AdminID   int64     `validate:"required" json:"admin_id" db:"admin_id"`
	Reason    string    `validate:"required" json:"reason" db:"reason"`
	DeletedAt time.Time `json:"deleted_at" db:"deleted_at" readOnly:"true"`
}

func (DeletedEventLog) TableName() string {
	return "deleted_events_log"
}

func (l DeletedEventLog) GetID() int64 {
	return l.ID
}

func (l DeletedEventLog) EmptySlice() interface{} {
	return &[]DeletedEventLog{}
}
