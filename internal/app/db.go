package app

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// EventType names an entry in the event log
type EventType string

const (
	EventInputReceived   EventType = "InputReceived"
	EventTaskCategorized EventType = "TaskCategorized"
	EventNoteSynthesized EventType = "NoteSynthesized"
	EventHandoffFailed   EventType = "HandoffFailed"
)

// Event is a row of the event log
type Event struct {
	ID            int64     `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Type          EventType `json:"event_type"`
	SourceInputID string    `json:"source_input_id"`
	PayloadJSON   string    `json:"payload_json"`
}

// InitDB initializes the SQLite database and creates the events table with indexes
func InitDB(dbPath string) (*sql.DB, error) {
	// Ensure the data directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createSchema(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		event_type TEXT NOT NULL,
		source_input_id TEXT,
		payload_json TEXT
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_event_type ON events(event_type);`); err != nil {
		return fmt.Errorf("failed to create event_type index: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_source_input_id ON events(source_input_id);`); err != nil {
		return fmt.Errorf("failed to create source_input_id index: %w", err)
	}

	return nil
}

// EventStore appends to and reads from the events table
type EventStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewEventStore wraps an initialized database
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db, now: time.Now}
}

// Record inserts one event, marshalling payload to JSON
func (s *EventStore) Record(inputID string, eventType EventType, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO events (timestamp, event_type, source_input_id, payload_json) VALUES (?, ?, ?, ?)`,
		s.now().UnixMilli(), string(eventType), inputID, string(payloadJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s event: %w", eventType, err)
	}
	return nil
}

// List returns the most recent events, oldest first. A limit <= 0 returns all of them.
func (s *EventStore) List(limit int) ([]Event, error) {
	query := `SELECT id, timestamp, event_type, source_input_id, payload_json FROM events ORDER BY id DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event     Event
			millis    int64
			eventType string
			sourceID  sql.NullString
			payload   sql.NullString
		)
		if err := rows.Scan(&event.ID, &millis, &eventType, &sourceID, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		event.Timestamp = time.UnixMilli(millis)
		event.Type = EventType(eventType)
		event.SourceInputID = sourceID.String
		event.PayloadJSON = payload.String
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	// Reverse into chronological order
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}
