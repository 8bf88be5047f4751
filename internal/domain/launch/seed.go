package launch

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"launchpad/internal/domain/project"
)

//go:embed seed.json
var seedJSON []byte

// seedProjects parses the built-in example catalogue. Each project goes
// through the lenient payload parser and gets its aggregate status
// derived before import.
func seedProjects() ([]project.Project, error) {
	var payloads []map[string]any
	if err := json.Unmarshal(seedJSON, &payloads); err != nil {
		return nil, fmt.Errorf("decoding seed payloads: %w", err)
	}

	projects := make([]project.Project, 0, len(payloads))
	for _, payload := range payloads {
		proj, err := project.FromMap(payload)
		if err != nil {
			return nil, fmt.Errorf("parsing seed project: %w", err)
		}
		proj.Refresh()
		projects = append(projects, proj)
	}
	return projects, nil
}
