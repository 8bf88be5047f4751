package project_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"launchpad/internal/domain/project"
)

func testClock() time.Time {
	return time.Date(2026, 8, 28, 9, 42, 0, 0, time.UTC)
}

func twoComponentProject() project.Project {
	return project.Project{
		Key:            "demo",
		Name:           "Demo",
		DefaultProfile: "dev",
		LastProfile:    "dev",
		Components: []project.Component{
			{Name: "API", Status: "Stopped"},
			{Name: "Worker", Status: "Stopped"},
		},
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"no components", nil, project.StatusReady},
		{"running wins over stopped", []string{"Running", "Stopped"}, project.StatusRunning},
		{"failure wins over running", []string{"Failed", "Running"}, project.StatusNeedsAttention},
		{"error counts as failure", []string{"Error: boom", "Running"}, project.StatusNeedsAttention},
		{"substring match on variant", []string{"FAILED (exit 1)"}, project.StatusNeedsAttention},
		{"paused wins over stopped", []string{"Paused", "Stopped"}, project.StatusPaused},
		{"all stopped", []string{"Stopped", "Stopped"}, project.StatusStopped},
		{"mixed idle falls back to ready", []string{"Stopped", "Idle"}, project.StatusReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := make([]project.Component, len(tt.statuses))
			for i, status := range tt.statuses {
				components[i] = project.Component{Name: "c", Status: status}
			}
			require.Equal(t, tt.want, project.DeriveStatus(components))
		})
	}
}

func TestApply_Start(t *testing.T) {
	proj := twoComponentProject()

	ok := proj.Apply("API", project.ActionStart, testClock())
	require.True(t, ok)

	api := proj.Component("API")
	require.Equal(t, project.StatusRunning, api.Status)
	require.Equal(t, "Manual start", api.StatusDetail)
	require.Equal(t, []string{"[09:42] Running: Manual start"}, api.Logs)

	require.Len(t, proj.History, 1)
	require.Equal(t, "Start API", proj.History[0].Description)
	require.Equal(t, "09:42", proj.History[0].Time)

	require.Equal(t, project.StatusRunning, proj.Status)
	require.True(t, proj.Active)
}

func TestApply_StopPauseResume(t *testing.T) {
	proj := twoComponentProject()

	require.True(t, proj.Apply("API", project.ActionPause, testClock()))
	require.Equal(t, project.StatusPaused, proj.Component("API").Status)
	require.Equal(t, "Paused via LaunchPad", proj.Component("API").StatusDetail)
	require.Equal(t, project.StatusPaused, proj.Status)
	require.True(t, proj.Active)

	require.True(t, proj.Apply("API", project.ActionResume, testClock()))
	require.Equal(t, project.StatusRunning, proj.Component("API").Status)
	require.Equal(t, "Resume", proj.Component("API").StatusDetail)

	require.True(t, proj.Apply("API", project.ActionStop, testClock()))
	require.Equal(t, project.StatusStopped, proj.Component("API").Status)
	require.Equal(t, "Stopped via LaunchPad", proj.Component("API").StatusDetail)
	require.Equal(t, project.StatusStopped, proj.Status)
	require.False(t, proj.Active)

	require.Equal(t, []string{"Pause API", "Resume API", "Stop API"}, historyDescriptions(proj))
}

func TestApply_UnknownComponent(t *testing.T) {
	proj := twoComponentProject()

	ok := proj.Apply("nonexistent", project.ActionStart, testClock())
	require.False(t, ok)
	require.Empty(t, proj.History)
	require.Equal(t, "Stopped", proj.Component("API").Status)
}

func TestApply_UnknownAction(t *testing.T) {
	proj := twoComponentProject()

	ok := proj.Apply("API", project.Action("restart"), testClock())
	require.False(t, ok)
	require.Empty(t, proj.History)
}

func TestLaunch_StartsEveryComponent(t *testing.T) {
	proj := twoComponentProject()

	used := proj.Launch("staging", testClock())
	require.Equal(t, "staging", used)

	for _, c := range proj.Components {
		require.Equal(t, project.StatusRunning, c.Status)
		require.Equal(t, "Launch profile staging", c.StatusDetail)
	}
	require.Equal(t, "staging", proj.LastProfile)
	require.Equal(t, []string{"Launch (staging)"}, historyDescriptions(proj))
	require.Equal(t, project.StatusRunning, proj.Status)
	require.True(t, proj.Active)
}

func TestEffectiveProfile(t *testing.T) {
	proj := project.Project{DefaultProfile: "dev", LastProfile: "staging"}
	require.Equal(t, "prod", proj.EffectiveProfile("prod"))
	require.Equal(t, "staging", proj.EffectiveProfile(""))

	proj.LastProfile = ""
	require.Equal(t, "dev", proj.EffectiveProfile(""))
}

func TestHistoryCap(t *testing.T) {
	var proj project.Project
	for i := 0; i < 100; i++ {
		proj.AddHistory("09:00", "event")
	}
	require.Len(t, proj.History, 100)

	proj.AddHistory("10:00", "newest")
	require.Len(t, proj.History, 100)
	require.Equal(t, "newest", proj.History[99].Description)
	require.Equal(t, "10:00", proj.History[99].Time)
}

func TestComponentLogsCap(t *testing.T) {
	c := project.Component{Name: "API"}
	for i := 0; i < 101; i++ {
		c.SetStatus("Running", "tick", testClock())
	}
	require.Len(t, c.Logs, 100)
}

func TestPutComponent_ReplacesInPlace(t *testing.T) {
	proj := twoComponentProject()

	proj.PutComponent(project.Component{Name: "API", Status: "Running"})
	require.Len(t, proj.Components, 2)
	require.Equal(t, "API", proj.Components[0].Name)
	require.Equal(t, "Running", proj.Components[0].Status)

	proj.PutComponent(project.Component{Name: "Cache", Status: "Ready"})
	require.Len(t, proj.Components, 3)
	require.Equal(t, "Cache", proj.Components[2].Name)
}

func TestParseAction(t *testing.T) {
	for _, valid := range []string{"start", "stop", "pause", "resume"} {
		action, ok := project.ParseAction(valid)
		require.True(t, ok)
		require.Equal(t, project.Action(valid), action)
	}

	_, ok := project.ParseAction("restart")
	require.False(t, ok)
}

func historyDescriptions(proj project.Project) []string {
	descriptions := make([]string, len(proj.History))
	for i, event := range proj.History {
		descriptions[i] = event.Description
	}
	return descriptions
}
