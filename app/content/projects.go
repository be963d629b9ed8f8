package content

import (
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

var _ Adapter[Project] = (*ProjectsAdapter)(nil)

type ProjectsAdapter struct {
	locator string
}

func NewProjectsAdapter(locator string) *ProjectsAdapter {
	return &ProjectsAdapter{locator: locator}
}

func (a *ProjectsAdapter) Name() string {
	return "projects"
}

func (a *ProjectsAdapter) Locator() string {
	return a.locator
}

func (a *ProjectsAdapter) DisplayCap() int {
	return 0
}

func (a *ProjectsAdapter) RenderCard(project Project, index int) (template.HTML, error) {
	return RenderProjectCard(project, index)
}

type projectsDocument struct {
	Projects []Project `yaml:"projects"`
}

func (a *ProjectsAdapter) Parse(data []byte) ([]Project, error) {
	var doc projectsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrParse, err)
	}

	projects := make([]Project, 0, len(doc.Projects))
	for i, project := range doc.Projects {
		if strings.TrimSpace(project.Name) == "" {
			slog.Warn("Skipping project without name", "index", i, "source", a.locator)
			continue
		}
		projects = append(projects, project)
	}

	if len(projects) == 0 {
		return nil, fmt.Errorf("%w: no projects in %s", ErrEmpty, a.locator)
	}

	return projects, nil
}
