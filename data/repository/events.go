package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-events/data/models"
)

// CreateEvent inserts a new event, defaulting status to ACTIVE when unset,
// and returns the generated id. The event must already be validated.
func (sr *SqlRepo) CreateEvent(e models.Event) (int64, error) {
	if e.Status == "" {
		e.Status = models.StatusActive
	}
	return sr.Create(e)
}

func (sr *SqlRepo) GetEventByID(id int64) (models.Event, error) {
	model, err := sr.GetModelByID(&models.Event{}, id)
	if err != nil {
		return models.Event{}, err
	}

	event, ok := model.(*models.Event)
	if !ok {
		return models.Event{}, fmt.Errorf("type assertion to Event failed")
	}

	return *event, nil
}

// UpdateEvent replaces all mutable fields of an event. Status is owned by the
// state transitions (CancelEvent, HardDeleteEvent) and is never written here;
// DELETED rows refuse updates outright.
func (sr *SqlRepo) UpdateEvent(e models.Event) error {
	query := `
		UPDATE events
		   SET organiser_id = $1, club_id = $2, title = $3, description = $4,
		       location = $5, date = $6, start_time = $7, finish_time = $8,
		       capacity = $9
		 WHERE event_id = $10 AND status <> 'DELETED'`

	res, err := sr.DB.Exec(query,
		e.OrganiserID, e.ClubID, e.Title, e.Description, e.Location,
		e.Date, e.StartTime, e.FinishTime, e.Capacity, e.ID)
	if err != nil {
		return fmt.Errorf("error updating event %d: %v", e.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sr.missingOrDeleted(e.ID)
	}
	return nil
}

// CancelEvent soft-deletes an event by flipping its status to CANCELLED.
// Idempotent: cancelling a cancelled event is a no-op. DELETED is terminal.
func (sr *SqlRepo) CancelEvent(id int64) error {
	res, err := sr.DB.Exec(
		"UPDATE events SET status = 'CANCELLED' WHERE event_id = $1 AND status <> 'DELETED'", id)
	if err != nil {
		return fmt.Errorf("error cancelling event %d: %v", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sr.missingOrDeleted(id)
	}
	return nil
}

// HardDeleteEvent flips the event's status to DELETED and appends the audit
// log row in the same transaction, so the two can never diverge.
func (sr *SqlRepo) HardDeleteEvent(id, adminID int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return models.NewValidationError("reason", "a deletion reason is required")
	}

	tx, err := sr.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting delete transaction: %v", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE events SET status = 'DELETED' WHERE event_id = $1 AND status <> 'DELETED'", id)
	if err != nil {
		return fmt.Errorf("error marking event %d deleted: %v", id, err)
	}
	// absent or already deleted: either way no second audit row
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sr.missingOrDeleted(id)
	}

	_, err = tx.Exec(
		"INSERT INTO deleted_events_log (event_id, admin_id, reason) VALUES ($1, $2, $3)",
		id, adminID, reason)
	if err != nil {
		return fmt.Errorf("error writing audit log for event %d: %v", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing delete of event %d: %v", id, err)
	}
	return nil
}

func (sr *SqlRepo) ListActiveEvents() ([]models.Event, error) {
	return sr.listEventsWhere("status = 'ACTIVE'")
}

func (sr *SqlRepo) ListDeletedEvents() ([]models.Event, error) {
	return sr.listEventsWhere("status = 'DELETED'")
}

func (sr *SqlRepo) listEventsWhere(cond string) ([]models.Event, error) {
	rows, err := sr.DB.Query(
		fmt.Sprintf("SELECT * FROM events WHERE %s ORDER BY date DESC", cond))
	if err != nil {
		return nil, fmt.Errorf("error listing events: %v", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// DeletedLogs returns the audit trail, newest first.
func (sr *SqlRepo) DeletedLogs() ([]models.DeletedEventLog, error) {
	result, err := sr.listAll(models.DeletedEventLog{}, "deleted_at DESC")
	if err != nil {
		return nil, err
	}
	return *result.(*[]models.DeletedEventLog), nil
}

// EventsOn returns the events scheduled on the given calendar day, cancelled
// ones excluded. Feeds the daily reminder sweep.
func (sr *SqlRepo) EventsOn(day time.Time) ([]models.Event, error) {
	rows, err := sr.DB.Query(
		"SELECT * FROM events WHERE date = $1::date AND status <> 'CANCELLED'", dateOf(day))
	if err != nil {
		return nil, fmt.Errorf("error listing events for %s: %v", day.Format("2006-01-02"), err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// missingOrDeleted disambiguates a zero-row state transition: the event is
// either absent entirely or already hard-deleted.
func (sr *SqlRepo) missingOrDeleted(id int64) error {
	var status string
	err := sr.DB.QueryRow("SELECT status FROM events WHERE event_id = $1", id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error checking event %d: %v", id, err)
	}
	return models.NewValidationError("status", "event has been deleted")
}
