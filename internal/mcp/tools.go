package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"launchpad/internal/domain/launch"
	"launchpad/internal/domain/project"
)

type listProjectsParams struct{}

type listProjectsResult struct {
	Projects []project.Overview `json:"projects"`
}

type getProjectParams struct {
	Key string `json:"key" jsonschema:"project key"`
}

type launchProjectParams struct {
	Key     string `json:"key" jsonschema:"project key"`
	Profile string `json:"profile,omitempty" jsonschema:"launch profile, defaults to the project's last used profile"`
}

type componentActionParams struct {
	Key       string `json:"key" jsonschema:"project key"`
	Component string `json:"component" jsonschema:"component name"`
	Action    string `json:"action" jsonschema:"one of start, stop, pause, resume"`
}

type createProjectParams struct {
	Key            string   `json:"key" jsonschema:"unique project key"`
	Name           string   `json:"name" jsonschema:"project display name"`
	Icon           string   `json:"icon,omitempty"`
	DefaultProfile string   `json:"defaultProfile,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

type setFavoriteParams struct {
	Key      string `json:"key" jsonschema:"project key"`
	Favorite bool   `json:"favorite"`
}

func registerTools(server *sdkmcp.Server, svc LaunchService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List every catalogued project with its aggregate status",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listProjectsParams) (*sdkmcp.CallToolResult, listProjectsResult, error) {
		overviews, err := svc.Overview(ctx)
		if err != nil {
			return nil, listProjectsResult{}, err
		}
		return nil, listProjectsResult{Projects: overviews}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get full detail for one project, including components, logs, links, and history",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params getProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svc.Detail(ctx, params.Key)
		if err != nil {
			return nil, nil, err
		}
		if proj == nil {
			return nil, nil, fmt.Errorf("project %q not found", params.Key)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "launch_project",
		Description: "Start every component of a project under a launch profile",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params launchProjectParams) (*sdkmcp.CallToolResult, *launch.ActionResult, error) {
		result, err := svc.Launch(ctx, params.Key, params.Profile)
		if err != nil {
			return nil, nil, err
		}
		if result == nil {
			return nil, nil, fmt.Errorf("project %q not found", params.Key)
		}
		return nil, result, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "component_action",
		Description: "Start, stop, pause, or resume one component of a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params componentActionParams) (*sdkmcp.CallToolResult, *launch.ActionResult, error) {
		action, ok := project.ParseAction(params.Action)
		if !ok {
			return nil, nil, fmt.Errorf("unknown action %q", params.Action)
		}
		result, err := svc.ComponentAction(ctx, params.Key, params.Component, action)
		if err != nil {
			return nil, nil, err
		}
		if result == nil {
			return nil, nil, fmt.Errorf("project %q or component %q not found", params.Key, params.Component)
		}
		return nil, result, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project from a summary payload",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params createProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		summary := map[string]any{
			"key":            params.Key,
			"name":           params.Name,
			"icon":           params.Icon,
			"defaultProfile": params.DefaultProfile,
			"summary":        params.Summary,
			"tags":           params.Tags,
		}
		proj, err := svc.CreateFromSummary(ctx, summary)
		if err != nil {
			return nil, nil, err
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_favorite",
		Description: "Mark or unmark a project as favorite",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params setFavoriteParams) (*sdkmcp.CallToolResult, *launch.ActionResult, error) {
		result, err := svc.SetFavorite(ctx, params.Key, params.Favorite)
		if err != nil {
			return nil, nil, err
		}
		if result == nil {
			return nil, nil, fmt.Errorf("project %q not found", params.Key)
		}
		return nil, result, nil
	})
}
