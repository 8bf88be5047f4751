package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"launchpad/internal/domain/project"
	"launchpad/internal/repository"
)

func newTestStore(t *testing.T) *ProjectStore {
	t.Helper()
	return NewProjectStore(newTestDB(t), nil)
}

func sampleProject(key, name string) project.Project {
	return project.Project{
		Key:            key,
		Name:           name,
		Icon:           "📁",
		DefaultProfile: "dev",
		LastProfile:    "dev",
		Summary:        "sample",
		Tags:           []string{"go", "backend"},
		Status:         project.StatusReady,
		Components: []project.Component{
			{Name: "API", Status: "Stopped"},
		},
	}
}

func TestProjectStore_UpsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	proj := sampleProject("demo", "Demo")
	require.NoError(t, store.Upsert(ctx, &proj))
	require.NotNil(t, proj.CreatedAt)
	require.NotNil(t, proj.UpdatedAt)

	got, err := store.Get(ctx, "demo")
	require.NoError(t, err)
	require.Equal(t, "Demo", got.Name)
	require.Equal(t, []string{"go", "backend"}, got.Tags)
	require.Len(t, got.Components, 1)
	require.Equal(t, "API", got.Components[0].Name)
	require.True(t, got.CreatedAt.Equal(*proj.CreatedAt))
}

func TestProjectStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectStore_Upsert_PreservesCreatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleProject("demo", "Demo")
	require.NoError(t, store.Upsert(ctx, &first))
	created := *first.CreatedAt

	time.Sleep(10 * time.Millisecond)

	// A fresh write of the same key without timestamps keeps the
	// original created_at and only advances updated_at.
	second := sampleProject("demo", "Demo Renamed")
	require.NoError(t, store.Upsert(ctx, &second))

	got, err := store.Get(ctx, "demo")
	require.NoError(t, err)
	require.Equal(t, "Demo Renamed", got.Name)
	require.True(t, got.CreatedAt.Equal(created))
	require.True(t, got.UpdatedAt.After(created))
}

func TestProjectStore_List_OrderedCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, p := range []project.Project{
		sampleProject("z", "zeta"),
		sampleProject("a", "Alpha"),
		sampleProject("b", "beta"),
	} {
		proj := p
		require.NoError(t, store.Upsert(ctx, &proj))
	}

	projects, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	require.Equal(t, "Alpha", projects[0].Name)
	require.Equal(t, "beta", projects[1].Name)
	require.Equal(t, "zeta", projects[2].Name)
}

func TestProjectStore_List_SkipsMalformedSnapshots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	proj := sampleProject("good", "Good")
	require.NoError(t, store.Upsert(ctx, &proj))

	_, err := store.db.Exec(`
		INSERT INTO projects (key, name, data, created_at, updated_at)
		VALUES ('bad', 'Bad', '{not json', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')
	`)
	require.NoError(t, err)

	projects, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "good", projects[0].Key)
}

func TestProjectStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	proj := sampleProject("demo", "Demo")
	require.NoError(t, store.Upsert(ctx, &proj))

	deleted, err := store.Delete(ctx, "demo")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = store.Delete(ctx, "demo")
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = store.Get(ctx, "demo")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectStore_SetFavorite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	proj := sampleProject("demo", "Demo")
	require.NoError(t, store.Upsert(ctx, &proj))

	updated, err := store.SetFavorite(ctx, "demo", true)
	require.NoError(t, err)
	require.True(t, updated.Favorite)

	got, err := store.Get(ctx, "demo")
	require.NoError(t, err)
	require.True(t, got.Favorite)

	_, err = store.SetFavorite(ctx, "nonexistent", true)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectStore_UpdateLastProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	proj := sampleProject("demo", "Demo")
	require.NoError(t, store.Upsert(ctx, &proj))

	updated, err := store.UpdateLastProfile(ctx, "demo", "staging")
	require.NoError(t, err)
	require.Equal(t, "staging", updated.LastProfile)

	got, err := store.Get(ctx, "demo")
	require.NoError(t, err)
	require.Equal(t, "staging", got.LastProfile)
}

func TestProjectStore_RecordHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	proj := sampleProject("demo", "Demo")
	require.NoError(t, store.Upsert(ctx, &proj))

	updated, err := store.RecordHistory(ctx, "demo", "Launch (dev)")
	require.NoError(t, err)
	require.Len(t, updated.History, 1)
	require.Equal(t, "Launch (dev)", updated.History[0].Description)
	require.NotEmpty(t, updated.History[0].Time)

	_, err = store.RecordHistory(ctx, "nonexistent", "noop")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectStore_BulkImport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.BulkImport(ctx, []project.Project{
		sampleProject("one", "One"),
		sampleProject("two", "Two"),
	})
	require.NoError(t, err)

	projects, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
}
