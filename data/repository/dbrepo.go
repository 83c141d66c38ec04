package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"campus-events/data/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrNotFound is returned when a referenced event does not exist.
var ErrNotFound = errors.New("not found")

type DBRepo interface {
	Connection() *sql.DB
	RunMigrations(dbName string) error

	Create(m models.Model) (id int64, err error)
	Update(m models.Model) error
	GetUserByID(id int64) (models.User, error)
	UpdateProfile(p models.StudentProfile) error

	// event store
	CreateEvent(e models.Event) (int64, error)
	GetEventByID(id int64) (models.Event, error)
	UpdateEvent(e models.Event) error
	CancelEvent(id int64) error
	HardDeleteEvent(id, adminID int64, reason string) error
	ListActiveEvents() ([]models.Event, error)
	ListDeletedEvents() ([]models.Event, error)
	DeletedLogs() ([]models.DeletedEventLog, error)
	EventsOn(day time.Time) ([]models.Event, error)

	// rsvp & attendance ledger
	Rsvp(eventID, userID int64) error
	CancelRsvp(eventID, userID int64) error
	CheckIn(eventID, userID int64) (bool, error)
	RsvpedEventIDs(userID int64) ([]int64, error)
	RsvpDetails(eventID int64) ([]models.RsvpUserDetail, error)
	PastBookedEvents(userID int64, asOf time.Time) ([]models.Event, error)

	// tags
	FindOrCreateTag(name string) (int64, error)
	SetEventTags(eventID int64, commaSeparated string) error
	ListTags() ([]models.Tag, error)
	TagsForEvent(eventID int64) ([]models.Tag, error)

	// upcoming/past search
	SearchUpcoming(query string, organiserID *int64, page, size *int, now time.Time) ([]models.Event, error)
	SearchPast(query string, now time.Time) ([]models.Event, error)

	// recommendation feeds
	InterestTagNames(userID int64) ([]string, error)
	CandidateEvents(userID int64, now time.Time) ([]models.Event, error)
	EventTagNames(eventIDs []int64) (map[int64][]string, error)
}

type SqlRepo struct {
	DB *sql.DB
}

func (sr *SqlRepo) Connection() *sql.DB {
	return sr.DB
}

func (sr *SqlRepo) RunMigrations(dbName string) error {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("failed to get current file path")
	}

	dir := filepath.Dir(filename)
	migrationsDir := filepath.Join(dir, "../migrations")
	// Convert backslashes to forward slashes for Windows compatibility
	migrationsDir = strings.ReplaceAll(migrationsDir, "\\", "/")

	log.Printf("Resolved migrations directory: %s", migrationsDir)

	driver, err := pgx.WithInstance(sr.DB, &pgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, dbName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Println("Migrations complete")
	return nil
}

// Create inserts a model into the corresponding db table and returns the id
// of the newly created record. The primary key column is the model's first
// field, which every model declares readOnly.
func (sr *SqlRepo) Create(m models.Model) (id int64, err error) {
	vals := models.GetValsFromModel(m)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		m.TableName(),
		strings.Join(models.GetColumnNames(m, true), ", "),
		placeholders(len(vals)),
		pkColumn(m))

	stmt, err := sr.DB.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("error preparing query: %v", err)
	}
	defer stmt.Close()

	row := stmt.QueryRow(vals...)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %v", err)
	}

	return id, nil
}

func (sr *SqlRepo) Update(m models.Model) error {
	columns := models.GetColumnNames(m, true)

	setClause := make([]string, len(columns))
	for i, c := range columns {
		setClause[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		m.TableName(),
		strings.Join(setClause, ", "),
		pkColumn(m),
		len(columns)+1)

	stmt, err := sr.DB.Prepare(query)
	if err != nil {
		return fmt.Errorf("error preparing query: %v", err)
	}
	defer stmt.Close()

	vals := models.GetValsFromModel(m)
	vals = append(vals, m.GetID())
	res, err := stmt.Exec(vals...)
	if err != nil {
		return fmt.Errorf("error executing query: %v", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetModelByID retrieves a model from the db by its ID and returns it. The
// model must be passed as a pointer to the desired model type.
func (sr *SqlRepo) GetModelByID(m models.Model, id int64) (models.Model, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", m.TableName(), pkColumn(m))
	r := sr.DB.QueryRow(query, id)

	if err := models.ScanRowToModel(m, r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (sr *SqlRepo) GetUserByID(id int64) (models.User, error) {
	model, err := sr.GetModelByID(&models.User{}, id)
	if err != nil {
		return models.User{}, err
	}

	user, ok := model.(*models.User)
	if !ok {
		return models.User{}, fmt.Errorf("type assertion to User failed")
	}

	return *user, nil
}

// UpdateProfile replaces the user's profile row through the generic Update;
// ErrNotFound when the user has no profile yet.
func (sr *SqlRepo) UpdateProfile(p models.StudentProfile) error {
	return sr.Update(p)
}

// listAll selects every row of the model's table, ordered, into the slice
// type the model advertises through EmptySlice.
func (sr *SqlRepo) listAll(m models.Model, orderBy string) (interface{}, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s", m.TableName(), orderBy)
	rows, err := sr.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %v", m.TableName(), err)
	}
	defer rows.Close()

	return models.ScanRowsToSlice(m, rows)
}

// pkColumn returns the model's primary key column, by convention the first
// declared field.
func pkColumn(m models.Model) string {
	return models.GetColumnNames(m, false)[0]
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := 1; i <= n; i++ {
		ph[i-1] = fmt.Sprintf("$%d", i)
	}
	return strings.Join(ph, ", ")
}

// dateOf truncates a timestamp to midnight so it can be bound against a DATE
// column without the time-of-day part skewing comparisons.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// scanEvents drains a SELECT e.* result set into a slice of events.
func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := models.ScanRowsToModel(&e, rows); err != nil {
			return nil, fmt.Errorf("error scanning event row: %v", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
