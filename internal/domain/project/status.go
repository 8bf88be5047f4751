package project

import (
	"strings"
	"time"
)

// Action is a component lifecycle command.
type Action string

const (
	ActionStart  Action = "start"
	ActionStop   Action = "stop"
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
)

// ParseAction maps a wire string onto a known action.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionStart, ActionStop, ActionPause, ActionResume:
		return Action(s), true
	}
	return "", false
}

// systemName identifies the launcher in stop/pause detail strings.
const systemName = "LaunchPad"

// Apply runs a lifecycle action against the named component, records one
// history entry, and re-derives the aggregate status. It reports false
// when the component or the action is unknown; the project is left
// untouched in that case.
func (p *Project) Apply(componentName string, action Action, at time.Time) bool {
	c := p.Component(componentName)
	if c == nil {
		return false
	}

	switch action {
	case ActionStart:
		c.SetStatus(StatusRunning, "Manual start", at)
		p.AddHistory(clockLabel(at), "Start "+c.Name)
	case ActionResume:
		c.SetStatus(StatusRunning, "Resume", at)
		p.AddHistory(clockLabel(at), "Resume "+c.Name)
	case ActionStop:
		c.SetStatus(StatusStopped, "Stopped via "+systemName, at)
		p.AddHistory(clockLabel(at), "Stop "+c.Name)
	case ActionPause:
		c.SetStatus(StatusPaused, "Paused via "+systemName, at)
		p.AddHistory(clockLabel(at), "Pause "+c.Name)
	default:
		return false
	}

	p.Refresh()
	return true
}

// Launch starts every component under the resolved profile, records the
// launch in history, updates LastProfile, and re-derives the aggregate
// status. It returns the profile that was used.
func (p *Project) Launch(requestedProfile string, at time.Time) string {
	profile := p.EffectiveProfile(requestedProfile)
	for i := range p.Components {
		p.Components[i].SetStatus(StatusRunning, "Launch profile "+profile, at)
	}
	p.LastProfile = profile
	p.AddHistory(clockLabel(at), "Launch ("+profile+")")
	p.Refresh()
	return profile
}

// DeriveStatus maps a set of component statuses onto the aggregate
// project status. Matching is a case-insensitive substring check so that
// variants like "Failed (exit 1)" still count as failures.
func DeriveStatus(components []Component) string {
	if len(components) == 0 {
		return StatusReady
	}

	statuses := make([]string, len(components))
	for i, c := range components {
		statuses[i] = strings.ToLower(c.Status)
	}

	anyContains := func(substrings ...string) bool {
		for _, status := range statuses {
			for _, sub := range substrings {
				if strings.Contains(status, sub) {
					return true
				}
			}
		}
		return false
	}

	if anyContains("fail", "error") {
		return StatusNeedsAttention
	}
	if anyContains("running") {
		return StatusRunning
	}
	if anyContains("paused") {
		return StatusPaused
	}

	allStopped := true
	for _, status := range statuses {
		if !strings.Contains(status, "stopped") {
			allStopped = false
			break
		}
	}
	if allStopped {
		return StatusStopped
	}

	return StatusReady
}
