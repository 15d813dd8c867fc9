// ABOUTME: Conversions between MCP tool payloads and courtside records
// ABOUTME: Turns free-form JSON arguments into gjson records and views into tool output
package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/models"
)

// IdentityOutput lists the identifiers collected from one record.
type IdentityOutput struct {
	IDs         []string `json:"ids"`
	Emails      []string `json:"emails"`
	Phones      []string `json:"phones"`
	PhoneDigits []string `json:"phone_digits"`
}

// MatchViewOutput is a match classified for one viewer.
type MatchViewOutput struct {
	ID             string `json:"id,omitempty"`
	Title          string `json:"title,omitempty"`
	Type           string `json:"type"`
	Occupied       int    `json:"occupied"`
	SpotsRemaining int    `json:"spots_remaining"`
	PlayerLimit    int    `json:"player_limit"`
	IsHost         bool   `json:"is_host"`
	IsJoined       bool   `json:"is_joined"`
	IsInvited      bool   `json:"is_invited"`
	IsPrivate      bool   `json:"is_private"`
	LowRoster      bool   `json:"low_roster"`
	StartsAt       string `json:"starts_at,omitempty"`
}

// toRecord re-encodes a decoded tool argument so it can be read with gjson.
func toRecord(v any) (gjson.Result, error) {
	if v == nil {
		return gjson.Result{}, nil
	}
	if s, ok := v.(string); ok && gjson.Valid(s) && strings.ContainsAny(s, "{[") {
		return gjson.Parse(s), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to encode record: %w", err)
	}
	return gjson.ParseBytes(data), nil
}

// toRecords accepts a list of records or a single record.
func toRecords(v any) ([]gjson.Result, error) {
	record, err := toRecord(v)
	if err != nil {
		return nil, err
	}
	if record.IsArray() {
		return record.Array(), nil
	}
	if record.IsObject() {
		return []gjson.Result{record}, nil
	}
	return nil, nil
}

// fromRaw decodes raw JSON for embedding in tool output.
func fromRaw(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return v, nil
}

func identityToOutput(s identity.Set) IdentityOutput {
	return IdentityOutput{
		IDs:         s.IDs(),
		Emails:      s.Emails(),
		Phones:      s.Phones(),
		PhoneDigits: s.PhoneDigits(),
	}
}

func viewToOutput(v models.MatchView) MatchViewOutput {
	out := MatchViewOutput{
		ID:             v.ID,
		Title:          v.Title,
		Type:           string(v.Type),
		Occupied:       v.Occupied,
		SpotsRemaining: v.SpotsRemaining,
		PlayerLimit:    v.PlayerLimit,
		IsHost:         v.IsHost,
		IsJoined:       v.IsJoined,
		IsInvited:      v.IsInvited,
		IsPrivate:      v.IsPrivate,
		LowRoster:      v.LowRoster,
	}
	if v.StartsAt != nil {
		out.StartsAt = v.StartsAt.Format(time.RFC3339)
	}
	return out
}

func viewsToOutput(views []models.MatchView) []MatchViewOutput {
	out := make([]MatchViewOutput, len(views))
	for i, v := range views {
		out[i] = viewToOutput(v)
	}
	return out
}

// resolveIdentity prefers a stored viewer and falls back to an inline profile.
func resolveIdentity(database *sql.DB, viewerID string, profile any) (identity.Set, error) {
	if viewerID != "" {
		if database == nil {
			return identity.Set{}, fmt.Errorf("viewer_id requires a database")
		}
		id, err := uuid.Parse(viewerID)
		if err != nil {
			return identity.Set{}, fmt.Errorf("invalid viewer_id: %w", err)
		}
		viewer, err := db.GetViewer(database, id)
		if err != nil {
			return identity.Set{}, err
		}
		return db.ViewerIdentity(viewer), nil
	}

	record, err := toRecord(profile)
	if err != nil {
		return identity.Set{}, err
	}
	return identity.Collect(record), nil
}
