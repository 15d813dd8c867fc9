// ABOUTME: Match feed MCP tool handlers
// ABOUTME: Implements classify_matches, viewer_feed and import_matches tools
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/feed"
	"github.com/harperreed/courtside/models"
)

type MatchHandlers struct {
	db      *sql.DB
	builder *feed.Builder
}

func NewMatchHandlers(database *sql.DB, builder *feed.Builder) *MatchHandlers {
	if builder == nil {
		builder = feed.NewBuilder()
	}
	return &MatchHandlers{db: database, builder: builder}
}

type ClassifyMatchesInput struct {
	ViewerID string `json:"viewer_id,omitempty" jsonschema:"Stored viewer ID (takes precedence over viewer)"`
	Viewer   any    `json:"viewer,omitempty" jsonschema:"Viewer profile JSON as returned by the API"`
	Matches  any    `json:"matches" jsonschema:"Match object or array of match objects (required)"`
}

type FeedOutput struct {
	Matches   []MatchViewOutput `json:"matches"`
	Hosted    int               `json:"hosted"`
	Joined    int               `json:"joined"`
	Available int               `json:"available"`
	Hidden    int               `json:"hidden"`
}

func (h *MatchHandlers) ClassifyMatches(_ context.Context, request *mcp.CallToolRequest, input ClassifyMatchesInput) (*mcp.CallToolResult, FeedOutput, error) {
	if input.Matches == nil {
		return nil, FeedOutput{}, fmt.Errorf("matches is required")
	}

	viewer, err := resolveIdentity(h.db, input.ViewerID, input.Viewer)
	if err != nil {
		return nil, FeedOutput{}, fmt.Errorf("failed to resolve viewer: %w", err)
	}

	matches, err := toRecords(input.Matches)
	if err != nil {
		return nil, FeedOutput{}, err
	}

	views := h.builder.BuildFeed(matches, viewer)
	return nil, feedToOutput(views, len(matches)), nil
}

type ViewerFeedInput struct {
	ViewerID string `json:"viewer_id" jsonschema:"Stored viewer ID (required)"`
}

func (h *MatchHandlers) ViewerFeed(_ context.Context, request *mcp.CallToolRequest, input ViewerFeedInput) (*mcp.CallToolResult, FeedOutput, error) {
	if input.ViewerID == "" {
		return nil, FeedOutput{}, fmt.Errorf("viewer_id is required")
	}

	viewer, err := resolveIdentity(h.db, input.ViewerID, nil)
	if err != nil {
		return nil, FeedOutput{}, err
	}

	snapshots, err := db.ListMatchSnapshots(h.db)
	if err != nil {
		return nil, FeedOutput{}, err
	}

	views := h.builder.BuildFeed(db.MatchPayloads(snapshots), viewer)
	return nil, feedToOutput(views, len(snapshots)), nil
}

type ImportMatchesInput struct {
	Matches any `json:"matches" jsonschema:"Array of match objects, or an API response with a matches/data array (required)"`
}

type ImportMatchesOutput struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Stored   int `json:"stored"`
}

func (h *MatchHandlers) ImportMatches(_ context.Context, request *mcp.CallToolRequest, input ImportMatchesInput) (*mcp.CallToolResult, ImportMatchesOutput, error) {
	if input.Matches == nil {
		return nil, ImportMatchesOutput{}, fmt.Errorf("matches is required")
	}

	data, err := json.Marshal(input.Matches)
	if err != nil {
		return nil, ImportMatchesOutput{}, fmt.Errorf("failed to encode matches: %w", err)
	}

	result, err := db.ImportMatches(h.db, data, time.Now())
	if err != nil {
		return nil, ImportMatchesOutput{}, fmt.Errorf("failed to import matches: %w", err)
	}

	snapshots, err := db.ListMatchSnapshots(h.db)
	if err != nil {
		return nil, ImportMatchesOutput{}, err
	}

	return nil, ImportMatchesOutput{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Stored:   len(snapshots),
	}, nil
}

func feedToOutput(views []models.MatchView, total int) FeedOutput {
	out := FeedOutput{
		Matches: viewsToOutput(views),
		Hidden:  total - len(views),
	}
	for _, v := range views {
		switch v.Type {
		case models.MatchHosted:
			out.Hosted++
		case models.MatchJoined:
			out.Joined++
		default:
			out.Available++
		}
	}
	return out
}
