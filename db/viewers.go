// ABOUTME: Viewer profile database operations
// ABOUTME: Stores the raw profile JSON that feeds identity extraction
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/models"
)

// ViewerIdentity collects the identifiers of a stored viewer from its profile.
func ViewerIdentity(viewer *models.Viewer) identity.Set {
	return identity.CollectJSON([]byte(viewer.Profile))
}

func CreateViewer(db *sql.DB, viewer *models.Viewer) error {
	if strings.TrimSpace(viewer.Name) == "" {
		return fmt.Errorf("viewer name is required")
	}
	if viewer.Profile == "" {
		viewer.Profile = "{}"
	}
	if !gjson.Valid(viewer.Profile) {
		return fmt.Errorf("viewer profile is not valid JSON")
	}

	viewer.ID = uuid.New()
	now := time.Now()
	viewer.CreatedAt = now
	viewer.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO viewers (id, name, profile, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, viewer.ID.String(), viewer.Name, viewer.Profile, viewer.CreatedAt, viewer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}
	return nil
}

func GetViewer(db *sql.DB, id uuid.UUID) (*models.Viewer, error) {
	viewer := &models.Viewer{}

	err := db.QueryRow(`
		SELECT id, name, profile, created_at, updated_at
		FROM viewers WHERE id = ?
	`, id.String()).Scan(
		&viewer.ID,
		&viewer.Name,
		&viewer.Profile,
		&viewer.CreatedAt,
		&viewer.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("viewer %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}

	return viewer, nil
}

func UpdateViewerProfile(db *sql.DB, id uuid.UUID, profile string) error {
	if !gjson.Valid(profile) {
		return fmt.Errorf("viewer profile is not valid JSON")
	}

	result, err := db.Exec(`
		UPDATE viewers SET profile = ?, updated_at = ? WHERE id = ?
	`, profile, time.Now(), id.String())
	if err != nil {
		return fmt.Errorf("failed to update viewer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("viewer %s: %w", id, ErrNotFound)
	}
	return nil
}

func FindViewers(db *sql.DB, query string, limit int) ([]models.Viewer, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	if query != "" {
		rows, err = db.Query(`
			SELECT id, name, profile, created_at, updated_at
			FROM viewers
			WHERE LOWER(name) LIKE ?
			ORDER BY name
			LIMIT ?
		`, "%"+strings.ToLower(query)+"%", limit)
	} else {
		rows, err = db.Query(`
			SELECT id, name, profile, created_at, updated_at
			FROM viewers
			ORDER BY name
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query viewers: %w", err)
	}
	defer rows.Close()

	var viewers []models.Viewer
	for rows.Next() {
		var v models.Viewer
		if err := rows.Scan(&v.ID, &v.Name, &v.Profile, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		viewers = append(viewers, v)
	}

	return viewers, rows.Err()
}
