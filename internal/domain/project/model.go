package project

import (
	"strings"
	"time"
)

// Aggregate status values derived from component statuses.
const (
	StatusReady          = "Ready"
	StatusRunning        = "Running"
	StatusPaused         = "Paused"
	StatusStopped        = "Stopped"
	StatusNeedsAttention = "Needs Attention"
)

// maxLogEntries caps component logs and project history; oldest entries
// are dropped first.
const maxLogEntries = 100

// HealthCheck is a single probe result embedded in a component or project.
type HealthCheck struct {
	Label  string `json:"label"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// QuickLink is a labelled URL owned by a project.
type QuickLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// FolderLink is a labelled filesystem path owned by a project.
type FolderLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// HistoryEvent is one append-only audit entry. Time is a display label
// ("09:42", "Yesterday"), not a parseable timestamp.
type HistoryEvent struct {
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Component is a named sub-unit of a project with its own lifecycle
// status. Identity is Name, unique within the owning project.
type Component struct {
	Name         string        `json:"name"`
	Status       string        `json:"status"`
	Summary      string        `json:"summary"`
	StatusDetail string        `json:"statusDetail"`
	Logs         []string      `json:"logs"`
	HealthChecks []HealthCheck `json:"healthChecks"`
}

// SetStatus transitions the component and appends a timestamped log line.
func (c *Component) SetStatus(status, detail string, at time.Time) {
	c.Status = status
	c.StatusDetail = detail
	c.Logs = capTail(append(c.Logs, "["+clockLabel(at)+"] "+status+": "+detail))
}

// Project is a tracked unit of work. Key is the immutable persistence
// primary key.
type Project struct {
	Key            string         `json:"key"`
	Name           string         `json:"name"`
	Icon           string         `json:"icon"`
	DefaultProfile string         `json:"defaultProfile"`
	LastProfile    string         `json:"lastProfile"`
	Summary        string         `json:"summary"`
	Tags           []string       `json:"tags"`
	Status         string         `json:"status"`
	Favorite       bool           `json:"favorite"`
	Active         bool           `json:"active"`
	UsageHours     float64        `json:"usageHours"`
	Components     []Component    `json:"components"`
	QuickLinks     []QuickLink    `json:"quickLinks"`
	Folders        []FolderLink   `json:"folders"`
	History        []HistoryEvent `json:"history"`
	HealthChecks   []HealthCheck  `json:"healthChecks"`
	CreatedAt      *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time     `json:"updatedAt,omitempty"`
}

// Overview is the reduced projection used by list views. Tags stays a
// structured list; TagsLabel is the flattened form for display only.
type Overview struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	LastProfile string   `json:"lastProfile"`
	Tags        []string `json:"tags"`
	TagsLabel   string   `json:"tagsLabel"`
	Status      string   `json:"status"`
	Favorite    bool     `json:"favorite"`
	Active      bool     `json:"active"`
	UsageHours  float64  `json:"usageHours"`
}

// Overview returns the project's list-view projection.
func (p *Project) Overview() Overview {
	return Overview{
		Key:         p.Key,
		Name:        p.Name,
		Icon:        p.Icon,
		LastProfile: p.LastProfile,
		Tags:        p.Tags,
		TagsLabel:   p.TagsLabel(),
		Status:      p.Status,
		Favorite:    p.Favorite,
		Active:      p.Active,
		UsageHours:  p.UsageHours,
	}
}

// TagsLabel flattens the tag list into a single display string.
func (p *Project) TagsLabel() string {
	return strings.Join(p.Tags, ", ")
}

// Component returns the named component, or nil when absent.
func (p *Project) Component(name string) *Component {
	for i := range p.Components {
		if p.Components[i].Name == name {
			return &p.Components[i]
		}
	}
	return nil
}

// PutComponent adds a component, replacing an existing one with the same
// name in place.
func (p *Project) PutComponent(c Component) {
	for i := range p.Components {
		if p.Components[i].Name == c.Name {
			p.Components[i] = c
			return
		}
	}
	p.Components = append(p.Components, c)
}

// AddHistory appends one audit entry, trimming to the retention cap.
func (p *Project) AddHistory(timeLabel, description string) {
	p.History = capTail(append(p.History, HistoryEvent{Time: timeLabel, Description: description}))
}

// EffectiveProfile resolves the profile to launch with: the explicit
// request wins, then the last used profile, then the default.
func (p *Project) EffectiveProfile(requested string) string {
	if requested != "" {
		return requested
	}
	if p.LastProfile != "" {
		return p.LastProfile
	}
	return p.DefaultProfile
}

// Refresh re-derives the aggregate status and the active flag from the
// current component statuses.
func (p *Project) Refresh() {
	p.Status = DeriveStatus(p.Components)
	p.Active = p.Status == StatusRunning || p.Status == StatusPaused
}

func capTail[T any](entries []T) []T {
	if len(entries) <= maxLogEntries {
		return entries
	}
	return entries[len(entries)-maxLogEntries:]
}

func clockLabel(at time.Time) string {
	return at.Format("15:04")
}
