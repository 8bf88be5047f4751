package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"launchpad/internal/domain/launch"
	"launchpad/internal/domain/project"
)

// LaunchService defines the façade operations the HTTP layer exposes.
type LaunchService interface {
	Overview(ctx context.Context) ([]project.Overview, error)
	Detail(ctx context.Context, key string) (*project.Project, error)
	ComponentAction(ctx context.Context, key, componentName string, action project.Action) (*launch.ActionResult, error)
	Launch(ctx context.Context, key, profile string) (*launch.ActionResult, error)
	CreateFromSummary(ctx context.Context, summary map[string]any) (*project.Project, error)
	SetFavorite(ctx context.Context, key string, favorite bool) (*launch.ActionResult, error)
	Delete(ctx context.Context, key string) (bool, error)
	TagOptions(ctx context.Context) ([]string, error)
}

// Server wires the REST handlers consumed by the desktop UI.
type Server struct {
	svc    LaunchService
	media  *MediaStore
	logger *slog.Logger
}

// NewRouter builds the API router. mcpHandler, when non-nil, is mounted
// at /mcp so agent tooling shares the HTTP listener.
func NewRouter(svc LaunchService, media *MediaStore, mcpHandler http.Handler, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{svc: svc, media: media, logger: logger}

	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", s.listProjects)
		r.Post("/projects", s.createProject)
		r.Get("/projects/{key}", s.getProject)
		r.Delete("/projects/{key}", s.deleteProject)
		r.Post("/projects/{key}/launch", s.launchProject)
		r.Post("/projects/{key}/components/{name}/actions/{action}", s.componentAction)
		r.Put("/projects/{key}/favorite", s.setFavorite)
		r.Get("/tags", s.tagOptions)
		if media != nil {
			r.Post("/images", s.uploadImage)
		}
	})
	if media != nil {
		r.Get("/media/uploads/{name}", s.serveMedia)
	}
	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
		r.Handle("/mcp/*", mcpHandler)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	overviews, err := s.svc.Overview(r.Context())
	if err != nil {
		s.serverError(w, "listing projects", err)
		return
	}
	if overviews == nil {
		overviews = []project.Overview{}
	}
	s.writeJSON(w, http.StatusOK, overviews)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.svc.Detail(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.serverError(w, "loading project", err)
		return
	}
	if proj == nil {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var summary map[string]any
	if err := json.NewDecoder(r.Body).Decode(&summary); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	proj, err := s.svc.CreateFromSummary(r.Context(), summary)
	if errors.Is(err, project.ErrInvalidInput) {
		s.writeError(w, http.StatusBadRequest, "project key and name are required")
		return
	}
	if err != nil {
		s.serverError(w, "creating project", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	existed, err := s.svc.Delete(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.serverError(w, "deleting project", err)
		return
	}
	if !existed {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) launchProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Profile string `json:"profile"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	result, err := s.svc.Launch(r.Context(), chi.URLParam(r, "key"), body.Profile)
	if err != nil {
		s.serverError(w, "launching project", err)
		return
	}
	if result == nil {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) componentAction(w http.ResponseWriter, r *http.Request) {
	action, ok := project.ParseAction(chi.URLParam(r, "action"))
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	result, err := s.svc.ComponentAction(r.Context(), chi.URLParam(r, "key"), chi.URLParam(r, "name"), action)
	if err != nil {
		s.serverError(w, "applying component action", err)
		return
	}
	if result == nil {
		s.writeError(w, http.StatusNotFound, "project or component not found")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) setFavorite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Favorite bool `json:"favorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.svc.SetFavorite(r.Context(), chi.URLParam(r, "key"), body.Favorite)
	if err != nil {
		s.serverError(w, "updating favorite", err)
		return
	}
	if result == nil {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) tagOptions(w http.ResponseWriter, r *http.Request) {
	tags, err := s.svc.TagOptions(r.Context())
	if err != nil {
		s.serverError(w, "listing tags", err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("writing response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) serverError(w http.ResponseWriter, operation string, err error) {
	s.logger.Error(operation, "error", err)
	s.writeError(w, http.StatusInternalServerError, "internal error")
}
