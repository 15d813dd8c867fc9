// ABOUTME: Roster MCP tool handlers
// ABOUTME: Implements summarize_roster and prune_member tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/models"
	"github.com/harperreed/courtside/roster"
)

type RosterHandlers struct {
	db *sql.DB
}

func NewRosterHandlers(database *sql.DB) *RosterHandlers {
	return &RosterHandlers{db: database}
}

type SummarizeRosterInput struct {
	MatchKey string `json:"match_key,omitempty" jsonschema:"Key of a stored match (takes precedence over match)"`
	Match    any    `json:"match,omitempty" jsonschema:"Match object to summarize"`
}

func (h *RosterHandlers) SummarizeRoster(_ context.Context, request *mcp.CallToolRequest, input SummarizeRosterInput) (*mcp.CallToolResult, models.RosterSummary, error) {
	match, _, err := h.loadMatch(input.MatchKey, input.Match)
	if err != nil {
		return nil, models.RosterSummary{}, err
	}

	return nil, roster.Summarize(match), nil
}

type PruneMemberInput struct {
	MatchKey string `json:"match_key,omitempty" jsonschema:"Key of a stored match; the pruned payload is saved back"`
	Match    any    `json:"match,omitempty" jsonschema:"Match object to prune without saving"`
	ViewerID string `json:"viewer_id,omitempty" jsonschema:"Stored viewer ID of the departing member"`
	Member   any    `json:"member,omitempty" jsonschema:"Profile JSON of the departing member"`
}

type PruneMemberOutput struct {
	MatchKey string               `json:"match_key,omitempty"`
	Saved    bool                 `json:"saved"`
	Before   models.RosterSummary `json:"before"`
	After    models.RosterSummary `json:"after"`
	Match    any                  `json:"match"`
}

func (h *RosterHandlers) PruneMember(_ context.Context, request *mcp.CallToolRequest, input PruneMemberInput) (*mcp.CallToolResult, PruneMemberOutput, error) {
	if input.ViewerID == "" && input.Member == nil {
		return nil, PruneMemberOutput{}, fmt.Errorf("viewer_id or member is required")
	}

	member, err := resolveIdentity(h.db, input.ViewerID, input.Member)
	if err != nil {
		return nil, PruneMemberOutput{}, fmt.Errorf("failed to resolve member: %w", err)
	}
	if member.IsEmpty() {
		return nil, PruneMemberOutput{}, fmt.Errorf("member has no identifiers")
	}

	match, snapshot, err := h.loadMatch(input.MatchKey, input.Match)
	if err != nil {
		return nil, PruneMemberOutput{}, err
	}

	pruned, err := roster.PruneDepartedMember(match, member)
	if err != nil {
		return nil, PruneMemberOutput{}, err
	}

	out := PruneMemberOutput{
		MatchKey: input.MatchKey,
		Before:   roster.Summarize(match),
		After:    roster.Summarize(gjson.ParseBytes(pruned)),
	}
	if out.Match, err = fromRaw(pruned); err != nil {
		return nil, PruneMemberOutput{}, err
	}

	if snapshot != nil {
		// Keep the original fetch time so the match holds its feed position.
		snapshot.Payload = string(pruned)
		if err := db.SaveMatchSnapshot(h.db, snapshot); err != nil {
			return nil, PruneMemberOutput{}, err
		}
		out.Saved = true
	}

	return nil, out, nil
}

// loadMatch returns the stored snapshot for key, or the inline match with a nil snapshot.
func (h *RosterHandlers) loadMatch(key string, inline any) (gjson.Result, *models.MatchSnapshot, error) {
	if key != "" {
		snapshot, err := db.GetMatchSnapshot(h.db, key)
		if err != nil {
			return gjson.Result{}, nil, err
		}
		return gjson.Parse(snapshot.Payload), snapshot, nil
	}

	match, err := toRecord(inline)
	if err != nil {
		return gjson.Result{}, nil, err
	}
	if !match.IsObject() {
		return gjson.Result{}, nil, fmt.Errorf("match_key or a match object is required")
	}
	return match, nil, nil
}
