/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package recorder is an optional diagnostic sink: it persists a history of
// per-frame per-instance status transitions to a SQLite database for later
// replay or inspection. It is never read back by the tracker itself - per
// SPEC_FULL.md §6/§12, the tracker's own state stays purely in-memory - this
// package exists purely so an operator can ask "what did instance 3 do
// across the last session" after the fact.
package recorder

/*****************************************************************************************************************/

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quietloom/artrack/internal/augmentation"
	"github.com/quietloom/artrack/pkg/registry"
)

/*****************************************************************************************************************/

// newID returns a fresh, lexically-sortable record identifier. entropy is
// read fresh per call rather than held as shared state, since Recorder is
// not expected to be driven from more than one goroutine.
func newID() string {
	t := time.Now()
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}

/*****************************************************************************************************************/

// Session is one recorded run of the pipeline, identified by a ULID so
// session identifiers sort chronologically by creation time.
type Session struct {
	ID        string `gorm:"primaryKey"`
	StartedAt time.Time
}

/*****************************************************************************************************************/

// StatusRecord is one observed (instance id, status) pair at a point in
// time within a session.
type StatusRecord struct {
	ID           string `gorm:"primaryKey"`
	SessionID    string `gorm:"index"`
	InstanceID   int
	Status       int
	ObservedAt   time.Time
}

/*****************************************************************************************************************/

// Recorder writes status records to a SQLite database via gorm. The zero
// value is not usable; construct one with Open.
type Recorder struct {
	db        *gorm.DB
	sessionID string
}

/*****************************************************************************************************************/

// Open opens (creating if necessary) the SQLite database at path, migrates
// its schema, and starts a new recording session.
func Open(path string) (*Recorder, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("recorder: failed to open %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Session{}, &StatusRecord{}); err != nil {
		return nil, fmt.Errorf("recorder: failed to migrate schema: %w", err)
	}

	session := Session{
		ID:        newID(),
		StartedAt: time.Now(),
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("recorder: failed to start session: %w", err)
	}

	return &Recorder{db: db, sessionID: session.ID}, nil
}

/*****************************************************************************************************************/

// Record appends one status observation for id to the current session.
func (r *Recorder) Record(id registry.ID, status augmentation.Status) error {
	rec := StatusRecord{
		ID:         newID(),
		SessionID:  r.sessionID,
		InstanceID: int(id),
		Status:     int(status),
		ObservedAt: time.Now(),
	}
	if err := r.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("recorder: failed to record status: %w", err)
	}
	return nil
}

/*****************************************************************************************************************/

// History returns every recorded status transition for id within the
// current session, ordered by observation time.
func (r *Recorder) History(id registry.ID) ([]StatusRecord, error) {
	var out []StatusRecord
	err := r.db.
		Where("session_id = ? AND instance_id = ?", r.sessionID, int(id)).
		Order("observed_at asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("recorder: failed to read history: %w", err)
	}
	return out, nil
}

/*****************************************************************************************************************/

// Close releases the underlying database connection.
func (r *Recorder) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("recorder: failed to access underlying connection: %w", err)
	}
	return sqlDB.Close()
}

/*****************************************************************************************************************/
