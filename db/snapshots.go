// ABOUTME: Match snapshot database operations
// ABOUTME: Upserts raw match payloads by their upstream key and lists them in feed order
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/models"
)

// SaveMatchSnapshot inserts the payload or replaces the stored one with the
// same match key. snapshot.ID is set to the row id either way.
func SaveMatchSnapshot(db *sql.DB, snapshot *models.MatchSnapshot) error {
	return saveSnapshot(db, snapshot)
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func saveSnapshot(q queryRower, snapshot *models.MatchSnapshot) error {
	snapshot.MatchKey = strings.TrimSpace(snapshot.MatchKey)
	if snapshot.MatchKey == "" {
		return fmt.Errorf("match key is required")
	}
	if !gjson.Valid(snapshot.Payload) {
		return fmt.Errorf("match %s: payload is not valid JSON", snapshot.MatchKey)
	}
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now()
	}

	id := uuid.New()
	err := q.QueryRow(`
		INSERT INTO match_snapshots (id, match_key, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(match_key) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, id.String(), snapshot.MatchKey, snapshot.Payload, snapshot.FetchedAt).Scan(&snapshot.ID)
	if err != nil {
		return fmt.Errorf("failed to save match %s: %w", snapshot.MatchKey, err)
	}
	return nil
}

func GetMatchSnapshot(db *sql.DB, matchKey string) (*models.MatchSnapshot, error) {
	snapshot := &models.MatchSnapshot{}

	err := db.QueryRow(`
		SELECT id, match_key, payload, fetched_at
		FROM match_snapshots WHERE match_key = ?
	`, strings.TrimSpace(matchKey)).Scan(
		&snapshot.ID,
		&snapshot.MatchKey,
		&snapshot.Payload,
		&snapshot.FetchedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("match %s: %w", matchKey, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return snapshot, nil
}

// ListMatchSnapshots returns every stored match, oldest import first so the
// feed keeps upstream order.
func ListMatchSnapshots(db *sql.DB) ([]models.MatchSnapshot, error) {
	rows, err := db.Query(`
		SELECT id, match_key, payload, fetched_at
		FROM match_snapshots
		ORDER BY fetched_at, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var snapshots []models.MatchSnapshot
	for rows.Next() {
		var s models.MatchSnapshot
		if err := rows.Scan(&s.ID, &s.MatchKey, &s.Payload, &s.FetchedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

func DeleteMatchSnapshot(db *sql.DB, matchKey string) error {
	result, err := db.Exec(`DELETE FROM match_snapshots WHERE match_key = ?`, strings.TrimSpace(matchKey))
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("match %s: %w", matchKey, ErrNotFound)
	}
	return nil
}

// MatchPayloads parses stored snapshots into records for the feed builder.
func MatchPayloads(snapshots []models.MatchSnapshot) []gjson.Result {
	records := make([]gjson.Result, 0, len(snapshots))
	for _, s := range snapshots {
		records = append(records, gjson.Parse(s.Payload))
	}
	return records
}
