package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campus-events/data/models"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

// FindOrCreateTag looks a tag up by its exact stored name, creating it when
// absent. Two callers racing to create the same new name are both served: the
// loser's unique violation is caught and the winner's row re-read.
func (sr *SqlRepo) FindOrCreateTag(name string) (int64, error) {
	id, err := sr.findTagByName(name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("error finding tag %q: %v", name, err)
	}

	err = sr.DB.QueryRow("INSERT INTO tags (tag_name) VALUES ($1) RETURNING tag_id", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		// lost the race; the row exists now
		id, err = sr.findTagByName(name)
		if err != nil {
			return 0, fmt.Errorf("error re-reading tag %q after conflict: %v", name, err)
		}
		return id, nil
	}
	return 0, fmt.Errorf("error creating tag %q: %v", name, err)
}

func (sr *SqlRepo) findTagByName(name string) (int64, error) {
	var id int64
	err := sr.DB.QueryRow("SELECT tag_id FROM tags WHERE tag_name = $1", name).Scan(&id)
	return id, err
}

// SetEventTags fully replaces the event's tag links from a comma-separated
// name list. Tokens are trimmed and empty ones dropped; unknown names create
// new tags. The clear-then-relink runs in one transaction so readers never
// observe a half-replaced set.
func (sr *SqlRepo) SetEventTags(eventID int64, commaSeparated string) error {
	tagIDs := []int64{}
	for _, token := range strings.Split(commaSeparated, ",") {
		name := strings.TrimSpace(token)
		if name == "" {
			continue
		}
		id, err := sr.FindOrCreateTag(name)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, id)
	}

	tx, err := sr.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting tag update transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM event_tags WHERE event_id = $1", eventID); err != nil {
		return fmt.Errorf("error clearing tags for event %d: %v", eventID, err)
	}

	for _, tagID := range tagIDs {
		_, err := tx.Exec(
			"INSERT INTO event_tags (event_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			eventID, tagID)
		if err != nil {
			return fmt.Errorf("error linking tag %d to event %d: %v", tagID, eventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing tag update for event %d: %v", eventID, err)
	}
	return nil
}

func (sr *SqlRepo) ListTags() ([]models.Tag, error) {
	result, err := sr.listAll(models.Tag{}, "tag_name ASC")
	if err != nil {
		return nil, err
	}
	return *result.(*[]models.Tag), nil
}

func (sr *SqlRepo) TagsForEvent(eventID int64) ([]models.Tag, error) {
	query := `
		SELECT t.*
		  FROM tags t
		  JOIN event_tags et ON et.tag_id = t.tag_id
		 WHERE et.event_id = $1`

	rows, err := sr.DB.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing tags for event %d: %v", eventID, err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func scanTags(rows *sql.Rows) ([]models.Tag, error) {
	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := models.ScanRowsToModel(&t, rows); err != nil {
			return nil, fmt.Errorf("error scanning tag row: %v", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
