package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"launchpad/internal/domain/project"
	"launchpad/internal/repository"
)

// Service orchestrates the entity model, the status engine, and the
// store. The store is the single source of truth; every operation is a
// read-modify-persist sequence and mu serializes those sequences because
// the HTTP and MCP transports call in concurrently.
type Service struct {
	store  repository.ProjectStore
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

// NewService creates a launch service.
func NewService(store repository.ProjectStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// ActionResult pairs the refreshed detail and overview payloads returned
// by every mutating operation.
type ActionResult struct {
	Project  *project.Project `json:"project"`
	Overview project.Overview `json:"overview"`
}

// Init seeds the built-in example projects when the store is empty.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	seed, err := seedProjects()
	if err != nil {
		return fmt.Errorf("loading seed projects: %w", err)
	}
	if err := s.store.BulkImport(ctx, seed); err != nil {
		return fmt.Errorf("importing seed projects: %w", err)
	}

	s.logger.Info("seeded built-in projects", "count", len(seed))
	return nil
}

// Overview returns every project's overview payload, sorted by name.
func (s *Service) Overview(ctx context.Context) ([]project.Overview, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	overviews := make([]project.Overview, 0, len(projects))
	for i := range projects {
		overviews = append(overviews, projects[i].Overview())
	}
	return overviews, nil
}

// Details returns the full payload for every project, keyed by project key.
func (s *Service) Details(ctx context.Context) (map[string]project.Project, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	details := make(map[string]project.Project, len(projects))
	for _, proj := range projects {
		details[proj.Key] = proj
	}
	return details, nil
}

// Detail returns the full payload for one project, or nil when the key
// is unknown.
func (s *Service) Detail(ctx context.Context, key string) (*project.Project, error) {
	proj, err := s.store.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return proj, nil
}

// OverviewFor returns a single project's overview entry, or nil when the
// key is unknown.
func (s *Service) OverviewFor(ctx context.Context, key string) (*project.Overview, error) {
	proj, err := s.Detail(ctx, key)
	if proj == nil || err != nil {
		return nil, err
	}
	overview := proj.Overview()
	return &overview, nil
}

// ComponentAction applies a lifecycle action to one component and
// persists the result. Unknown project, component, or action is an inert
// no-op signalled by a nil result.
func (s *Service) ComponentAction(ctx context.Context, key, componentName string, action project.Action) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proj, err := s.store.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	if !proj.Apply(componentName, action, s.now()) {
		return nil, nil
	}

	if err := s.store.Upsert(ctx, proj); err != nil {
		return nil, fmt.Errorf("persisting project: %w", err)
	}

	s.logger.Info("component action applied",
		"project", key, "component", componentName, "action", action, "status", proj.Status)
	return &ActionResult{Project: proj, Overview: proj.Overview()}, nil
}

// Launch starts every component of a project under the resolved profile
// and persists the result. Unknown project keys are an inert no-op.
func (s *Service) Launch(ctx context.Context, key, profile string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proj, err := s.store.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	used := proj.Launch(profile, s.now())

	if err := s.store.Upsert(ctx, proj); err != nil {
		return nil, fmt.Errorf("persisting project: %w", err)
	}

	s.logger.Info("project launched", "project", key, "profile", used)
	return &ActionResult{Project: proj, Overview: proj.Overview()}, nil
}

// CreateFromSummary validates and persists a project built from a
// loosely typed summary payload. A missing key or name yields
// project.ErrInvalidInput and nothing is persisted.
func (s *Service) CreateFromSummary(ctx context.Context, summary map[string]any) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proj, err := project.FromSummary(summary)
	if err != nil {
		return nil, err
	}

	if err := s.store.Upsert(ctx, &proj); err != nil {
		return nil, fmt.Errorf("persisting project: %w", err)
	}

	s.logger.Info("project created", "project", proj.Key)
	return &proj, nil
}

// SetFavorite flips the favorite flag. Unknown keys are an inert no-op.
func (s *Service) SetFavorite(ctx context.Context, key string, favorite bool) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proj, err := s.store.SetFavorite(ctx, key, favorite)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating favorite: %w", err)
	}
	return &ActionResult{Project: proj, Overview: proj.Overview()}, nil
}

// Delete removes a project by key and reports whether it existed.
func (s *Service) Delete(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed, err := s.store.Delete(ctx, key)
	if err != nil {
		return false, fmt.Errorf("deleting project: %w", err)
	}
	if existed {
		s.logger.Info("project deleted", "project", key)
	}
	return existed, nil
}

// TagOptions returns the sorted set of tags in use across all projects.
func (s *Service) TagOptions(ctx context.Context) ([]string, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	seen := make(map[string]struct{})
	for _, proj := range projects {
		for _, tag := range proj.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}
