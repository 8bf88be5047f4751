package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"launchpad/internal/domain/launch"
	"launchpad/internal/domain/project"
)

// LaunchService defines the façade operations exposed as MCP tools.
type LaunchService interface {
	Overview(ctx context.Context) ([]project.Overview, error)
	Detail(ctx context.Context, key string) (*project.Project, error)
	ComponentAction(ctx context.Context, key, componentName string, action project.Action) (*launch.ActionResult, error)
	Launch(ctx context.Context, key, profile string) (*launch.ActionResult, error)
	CreateFromSummary(ctx context.Context, summary map[string]any) (*project.Project, error)
	SetFavorite(ctx context.Context, key string, favorite bool) (*launch.ActionResult, error)
}

const serverInstructions = `LaunchPad catalogues local development projects and the
lifecycle status of their components. Use list_projects for a summary of every
project, get_project for full detail including component logs and health checks,
launch_project to start every component under a profile, and component_action to
start, stop, pause, or resume a single component. Lifecycle actions only record
status transitions; they do not manage real OS processes.`

// NewServer creates an MCP server exposing the launch façade as tools.
func NewServer(svc LaunchService, logger *slog.Logger) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "launchpad",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerTools(server, svc)

	return server
}

// NewStreamableHTTPHandler wraps the server for mounting on the HTTP API.
func NewStreamableHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)
}
