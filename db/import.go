// ABOUTME: Bulk import of upstream match payloads into match snapshots
// ABOUTME: Accepts a bare array or a {matches: [...]} / {data: [...]} envelope
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/models"
)

// MatchEnvelopeKeys are the object keys that may hold the match array.
var MatchEnvelopeKeys = []string{"matches", "data", "results"}

// MatchKeyFields are the match fields used as the snapshot key.
var MatchKeyFields = []string{"id", "match_id", "matchId"}

// ImportResult reports what ImportMatches did.
type ImportResult struct {
	Imported int
	Skipped  int
}

// MatchList extracts the match records from an API response body.
func MatchList(data []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("match feed is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if root.IsArray() {
		return root.Array(), nil
	}
	if root.IsObject() {
		for _, key := range MatchEnvelopeKeys {
			if list := root.Get(gjson.Escape(key)); list.IsArray() {
				return list.Array(), nil
			}
		}
		// A single match object.
		if MatchKey(root) != "" {
			return []gjson.Result{root}, nil
		}
	}

	return nil, fmt.Errorf("match feed must be an array or contain one of %v", MatchEnvelopeKeys)
}

// MatchKey returns the upstream id of a match, or "" when it has none.
func MatchKey(match gjson.Result) string {
	for _, field := range MatchKeyFields {
		if key := identity.IDOf(match.Get(gjson.Escape(field))); key != "" {
			return key
		}
	}
	return ""
}

// ImportMatches stores every keyed match in data inside one transaction.
// Matches without an id are skipped.
func ImportMatches(db *sql.DB, data []byte, fetchedAt time.Time) (ImportResult, error) {
	var result ImportResult

	matches, err := MatchList(data)
	if err != nil {
		return result, err
	}
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return result, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, match := range matches {
		key := MatchKey(match)
		if key == "" || !match.IsObject() {
			result.Skipped++
			continue
		}

		snapshot := &models.MatchSnapshot{
			MatchKey: key,
			Payload:  match.Raw,
			// Keep upstream order stable when every row shares one fetch time.
			FetchedAt: fetchedAt.Add(time.Duration(i) * time.Microsecond),
		}
		if err := saveSnapshot(tx, snapshot); err != nil {
			return result, err
		}
		result.Imported++
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit import: %w", err)
	}
	return result, nil
}
