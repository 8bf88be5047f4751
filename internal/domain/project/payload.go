package project

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Accepted layouts for stored timestamps. The second form covers
// snapshots written without a zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// FromJSON decodes a stored snapshot through the lenient payload parser.
func FromJSON(data []byte) (Project, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return Project{}, fmt.Errorf("decoding project snapshot: %w", err)
	}
	return FromMap(payload)
}

// FromMap builds a Project from a loosely typed payload using the
// external field names. Missing optional fields take defaults and
// malformed nested entries are skipped; a missing key is the only fatal
// case.
func FromMap(payload map[string]any) (Project, error) {
	key := strings.TrimSpace(stringOf(payload["key"]))
	if key == "" {
		return Project{}, ErrInvalidPayload
	}

	p := Project{
		Key:            key,
		Name:           stringOf(payload["name"]),
		Icon:           stringOf(payload["icon"]),
		DefaultProfile: stringOf(payload["defaultProfile"]),
		LastProfile:    stringOf(payload["lastProfile"]),
		Summary:        stringOf(payload["summary"]),
		Tags:           NormalizeTags(payload["tags"]),
		Status:         stringOf(payload["status"]),
		Favorite:       boolOf(payload["favorite"]),
		Active:         boolOf(payload["active"]),
		UsageHours:     floatOf(payload["usageHours"]),
		Components:     componentsOf(payload["components"]),
		QuickLinks:     quickLinksOf(payload["quickLinks"]),
		Folders:        foldersOf(payload["folders"]),
		History:        historyOf(payload["history"]),
		HealthChecks:   healthChecksOf(payload["healthChecks"]),
		CreatedAt:      timeOf(payload["createdAt"]),
		UpdatedAt:      timeOf(payload["updatedAt"]),
	}

	if p.DefaultProfile == "" {
		p.DefaultProfile = "dev"
	}
	if p.LastProfile == "" {
		p.LastProfile = p.DefaultProfile
	}
	if p.Status == "" {
		p.Status = StatusReady
	}
	if p.UsageHours < 0 {
		p.UsageHours = 0
	}

	return p, nil
}

// FromSummary builds a Project from a user-submitted summary payload.
// Key and name are required after trimming; everything else defaults.
func FromSummary(summary map[string]any) (Project, error) {
	key := strings.TrimSpace(stringOf(summary["key"]))
	name := strings.TrimSpace(stringOf(summary["name"]))
	if key == "" || name == "" {
		return Project{}, ErrInvalidInput
	}

	description := stringOf(summary["description"])
	if description == "" {
		description = stringOf(summary["summary"])
	}
	icon := stringOf(summary["icon"])
	if icon == "" {
		icon = "📁"
	}

	payload := map[string]any{
		"key":            key,
		"name":           name,
		"icon":           icon,
		"defaultProfile": summary["defaultProfile"],
		"lastProfile":    summary["lastProfile"],
		"summary":        description,
		"tags":           summary["tags"],
		"status":         summary["status"],
		"favorite":       summary["favorite"],
		"active":         summary["active"],
		"usageHours":     summary["usageHours"],
		"components":     summary["components"],
		"quickLinks":     summary["quickLinks"],
		"folders":        summary["folders"],
		"history":        summary["history"],
		"healthChecks":   summary["healthChecks"],
	}
	return FromMap(payload)
}

// NormalizeTags accepts either a comma-separated string or a sequence.
// String input is split on commas with empty segments dropped; sequence
// items are trimmed but never split, so a tag may legitimately contain a
// comma. Normalizing an already-normalized sequence is a no-op.
func NormalizeTags(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		var tags []string
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				tags = append(tags, item)
			}
		}
		return tags
	case []string:
		var tags []string
		for _, item := range v {
			if item = strings.TrimSpace(item); item != "" {
				tags = append(tags, item)
			}
		}
		return tags
	case []any:
		var tags []string
		for _, item := range v {
			if s := strings.TrimSpace(stringOf(item)); s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		if s := strings.TrimSpace(stringOf(value)); s != "" {
			return []string{s}
		}
		return nil
	}
}

func componentsOf(value any) []Component {
	var components []Component
	for _, entry := range mapsOf(value) {
		name := strings.TrimSpace(stringOf(entry["name"]))
		if name == "" {
			continue
		}
		components = append(components, Component{
			Name:         name,
			Status:       stringOf(entry["status"]),
			Summary:      stringOf(entry["summary"]),
			StatusDetail: stringOf(entry["statusDetail"]),
			Logs:         stringsOf(entry["logs"]),
			HealthChecks: healthChecksOf(entry["healthChecks"]),
		})
	}
	return components
}

func healthChecksOf(value any) []HealthCheck {
	var checks []HealthCheck
	for _, entry := range mapsOf(value) {
		label := strings.TrimSpace(stringOf(entry["label"]))
		if label == "" {
			continue
		}
		checks = append(checks, HealthCheck{
			Label:  label,
			Status: stringOf(entry["status"]),
			Detail: stringOf(entry["detail"]),
		})
	}
	return checks
}

func quickLinksOf(value any) []QuickLink {
	var links []QuickLink
	for _, entry := range mapsOf(value) {
		label := strings.TrimSpace(stringOf(entry["label"]))
		if label == "" {
			continue
		}
		links = append(links, QuickLink{Label: label, URL: stringOf(entry["url"])})
	}
	return links
}

func foldersOf(value any) []FolderLink {
	var folders []FolderLink
	for _, entry := range mapsOf(value) {
		label := strings.TrimSpace(stringOf(entry["label"]))
		if label == "" {
			continue
		}
		folders = append(folders, FolderLink{Label: label, Path: stringOf(entry["path"])})
	}
	return folders
}

func historyOf(value any) []HistoryEvent {
	var history []HistoryEvent
	for _, entry := range mapsOf(value) {
		description := stringOf(entry["description"])
		if description == "" {
			continue
		}
		history = append(history, HistoryEvent{
			Time:        stringOf(entry["time"]),
			Description: description,
		})
	}
	return history
}

// mapsOf filters a nested collection down to its well-formed entries.
func mapsOf(value any) []map[string]any {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	var maps []map[string]any
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			maps = append(maps, m)
		}
	}
	return maps
}

func stringsOf(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func stringOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func boolOf(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(v)
		return err == nil && parsed
	case float64:
		return v != 0
	}
	return false
}

func floatOf(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return parsed
		}
	}
	return 0
}

func timeOf(value any) *time.Time {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
