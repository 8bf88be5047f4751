package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"launchpad/internal/domain/project"
	"launchpad/internal/repository"
)

// ProjectStore implements repository.ProjectStore on SQLite. The data
// column holds the canonical JSON snapshot and is the source of truth on
// read; the remaining columns are denormalized for filtering only.
type ProjectStore struct {
	db     *DB
	logger *slog.Logger
}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore(db *DB, logger *slog.Logger) *ProjectStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectStore{db: db, logger: logger}
}

// List returns all projects ordered by name, case-insensitive ascending.
// Rows whose snapshot no longer parses are skipped, not fatal.
func (s *ProjectStore) List(ctx context.Context) ([]project.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, data FROM projects ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		proj, err := project.FromJSON([]byte(data))
		if err != nil {
			s.logger.Warn("skipping malformed project snapshot", "key", key, "error", err)
			continue
		}
		projects = append(projects, proj)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Get retrieves a project by key.
func (s *ProjectStore) Get(ctx context.Context, key string) (*project.Project, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM projects WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	proj, err := project.FromJSON([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode project %q: %w", key, err)
	}
	return &proj, nil
}

// Upsert inserts or replaces the snapshot keyed by proj.Key. The stored
// created_at survives replacement; updated_at is refreshed. Snapshot and
// denormalized columns change together or not at all.
func (s *ProjectStore) Upsert(ctx context.Context, proj *project.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if proj.CreatedAt == nil {
		created := now
		var existing string
		err := tx.QueryRowContext(ctx, `SELECT created_at FROM projects WHERE key = ?`, proj.Key).Scan(&existing)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// first persistence
		case err != nil:
			return fmt.Errorf("failed to read existing project: %w", err)
		default:
			if parsed, parseErr := time.Parse(time.RFC3339Nano, existing); parseErr == nil {
				created = parsed
			}
		}
		proj.CreatedAt = &created
	}
	updated := now
	proj.UpdatedAt = &updated

	data, err := json.Marshal(proj)
	if err != nil {
		return fmt.Errorf("failed to encode project %q: %w", proj.Key, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (
			key, name, icon, default_profile, last_profile, summary, tags,
			status, favorite, active, usage_hours, data, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			name=excluded.name,
			icon=excluded.icon,
			default_profile=excluded.default_profile,
			last_profile=excluded.last_profile,
			summary=excluded.summary,
			tags=excluded.tags,
			status=excluded.status,
			favorite=excluded.favorite,
			active=excluded.active,
			usage_hours=excluded.usage_hours,
			data=excluded.data,
			updated_at=excluded.updated_at
	`,
		proj.Key,
		proj.Name,
		proj.Icon,
		proj.DefaultProfile,
		proj.LastProfile,
		proj.Summary,
		proj.TagsLabel(),
		proj.Status,
		boolToInt(proj.Favorite),
		boolToInt(proj.Active),
		proj.UsageHours,
		string(data),
		proj.CreatedAt.Format(time.RFC3339Nano),
		proj.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert project %q: %w", proj.Key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes the project row and reports whether it existed.
func (s *ProjectStore) Delete(ctx context.Context, key string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// SetFavorite flips the favorite flag and persists the result.
func (s *ProjectStore) SetFavorite(ctx context.Context, key string, favorite bool) (*project.Project, error) {
	return s.readModifyWrite(ctx, key, func(proj *project.Project) {
		proj.Favorite = favorite
	})
}

// UpdateLastProfile records the most recently used profile.
func (s *ProjectStore) UpdateLastProfile(ctx context.Context, key, profile string) (*project.Project, error) {
	return s.readModifyWrite(ctx, key, func(proj *project.Project) {
		proj.LastProfile = profile
	})
}

// RecordHistory appends one history entry stamped with the current time.
func (s *ProjectStore) RecordHistory(ctx context.Context, key, description string) (*project.Project, error) {
	timeLabel := time.Now().Format("15:04")
	return s.readModifyWrite(ctx, key, func(proj *project.Project) {
		proj.AddHistory(timeLabel, description)
	})
}

// BulkImport upserts each project in order, one transaction per item; a
// failure leaves earlier imports in place.
func (s *ProjectStore) BulkImport(ctx context.Context, projects []project.Project) error {
	for i := range projects {
		if err := s.Upsert(ctx, &projects[i]); err != nil {
			return fmt.Errorf("failed to import project %q: %w", projects[i].Key, err)
		}
	}
	return nil
}

func (s *ProjectStore) readModifyWrite(ctx context.Context, key string, mutate func(*project.Project)) (*project.Project, error) {
	proj, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	mutate(proj)
	if err := s.Upsert(ctx, proj); err != nil {
		return nil, err
	}
	return proj, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
