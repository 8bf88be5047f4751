package repository

import (
	"context"

	"launchpad/internal/domain/project"
)

// ProjectStore manages durable project snapshots keyed by project key.
type ProjectStore interface {
	// List returns all projects ordered by name, case-insensitive.
	List(ctx context.Context) ([]project.Project, error)
	// Get returns the project for key, or ErrNotFound.
	Get(ctx context.Context, key string) (*project.Project, error)
	// Upsert inserts or replaces the snapshot. On insert it stamps
	// CreatedAt unless the entity already carries one; on replace it
	// preserves the stored CreatedAt. UpdatedAt is refreshed either way
	// and both timestamps are written back onto proj.
	Upsert(ctx context.Context, proj *project.Project) error
	// Delete removes the row and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
	// SetFavorite flips the favorite flag, or returns ErrNotFound.
	SetFavorite(ctx context.Context, key string, favorite bool) (*project.Project, error)
	// UpdateLastProfile records the most recently used profile, or
	// returns ErrNotFound.
	UpdateLastProfile(ctx context.Context, key, profile string) (*project.Project, error)
	// RecordHistory appends one history entry, or returns ErrNotFound.
	RecordHistory(ctx context.Context, key, description string) (*project.Project, error)
	// BulkImport upserts each project in order, one transaction per item.
	BulkImport(ctx context.Context, projects []project.Project) error
}
