package contract

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/huangsam/fmtgauge/schema"
)

// projectsFile is the YAML shape of a user-supplied registry.
type projectsFile struct {
	Projects []schema.Project `yaml:"projects"`
}

// LoadProjectsFile reads a YAML registry that replaces the built-in project
// list. Names are lower-cased and must be unique; entries come back sorted
// by name so downstream ordering is deterministic.
func LoadProjectsFile(path string) ([]schema.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects file: %w", err)
	}
	var parsed projectsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse projects file %s: %w", path, err)
	}
	if len(parsed.Projects) == 0 {
		return nil, fmt.Errorf("projects file %s defines no projects", path)
	}

	seen := make(map[string]struct{}, len(parsed.Projects))
	for i := range parsed.Projects {
		project := &parsed.Projects[i]
		project.Name = strings.ToLower(strings.TrimSpace(project.Name))
		if project.Name == "" {
			return nil, fmt.Errorf("projects file %s has an entry without a name", path)
		}
		if project.URL == "" {
			return nil, fmt.Errorf("project %q has no url", project.Name)
		}
		if _, dup := seen[project.Name]; dup {
			return nil, fmt.Errorf("project %q is defined twice", project.Name)
		}
		seen[project.Name] = struct{}{}
		if project.CustomArguments == nil {
			project.CustomArguments = []string{}
		}
	}
	sort.Slice(parsed.Projects, func(i, j int) bool {
		return parsed.Projects[i].Name < parsed.Projects[j].Name
	})
	return parsed.Projects, nil
}

// FilterProjects applies allow and deny name lists. Unknown names in either
// list are an error so typos surface before any cloning starts.
func FilterProjects(projects []schema.Project, allow, deny []string) ([]schema.Project, error) {
	known := make(map[string]struct{}, len(projects))
	for _, project := range projects {
		known[project.Name] = struct{}{}
	}
	for _, name := range append(append([]string{}, allow...), deny...) {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown project %q; check the registry names", name)
		}
	}

	var filtered []schema.Project
	for _, project := range projects {
		if len(allow) > 0 && !slices.Contains(allow, project.Name) {
			continue
		}
		if slices.Contains(deny, project.Name) {
			continue
		}
		filtered = append(filtered, project)
	}
	return filtered, nil
}
