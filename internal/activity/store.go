// Package activity keeps an operational log of backend fetches. It records
// what happened to each request, never the payloads themselves.
package activity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/marsdash/internal/db"
)

// Store provides persistence for activity entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new entry. If entry.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	var errText sql.NullString
	if entry.Error != "" {
		errText = sql.NullString{String: entry.Error, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fetch_activity (
			id, session_id, rover, generation, outcome, photos, duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.SessionID,
		entry.Rover,
		int64(entry.Generation),
		string(entry.Outcome),
		entry.Photos,
		entry.DurationMS,
		errText,
	)
	if err != nil {
		return fmt.Errorf("inserting activity entry: %w", err)
	}
	return nil
}

// GetByID retrieves a single entry. A missing entry yields sql.ErrNoRows.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM fetch_activity WHERE id = ?`, id)
	e, err := scanInto(row)
	if err != nil {
		return nil, fmt.Errorf("getting activity entry %s: %w", id, err)
	}
	return e, nil
}

// QueryFilter controls which entries are returned by Query.
type QueryFilter struct {
	Rover     string
	Outcome   Outcome
	SessionID string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

const columns = "id, timestamp, session_id, rover, generation, outcome, photos, duration_ms, error"

// Query returns entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Rover != "" {
		clauses = append(clauses, "rover = ?")
		args = append(args, filter.Rover)
	}
	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(time.DateTime))
	}

	query := "SELECT " + columns + " FROM fetch_activity"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	} else if filter.Offset > 0 {
		query += fmt.Sprintf(" LIMIT -1 OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// CountByOutcome returns how many entries exist per outcome.
func (s *Store) CountByOutcome(ctx context.Context) (map[Outcome]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT outcome, COUNT(*) FROM fetch_activity GROUP BY outcome")
	if err != nil {
		return nil, fmt.Errorf("counting activity: %w", err)
	}
	defer rows.Close()

	counts := make(map[Outcome]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		counts[Outcome(outcome)] = n
	}
	return counts, rows.Err()
}

// DeleteBefore removes all entries older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM fetch_activity WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old activity: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e          Entry
		ts         string
		outcome    string
		generation int64
		errText    sql.NullString
	)

	err := sc.Scan(
		&e.ID, &ts, &e.SessionID, &e.Rover, &generation, &outcome,
		&e.Photos, &e.DurationMS, &errText,
	)
	if err != nil {
		return nil, err
	}

	e.Outcome = Outcome(outcome)
	e.Generation = uint64(generation)
	if errText.Valid {
		e.Error = errText.String
	}

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		e.Timestamp = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		e.Timestamp = t
	}

	return &e, nil
}
