package api

import (
	"github.com/vvilaysack/portfolio/app/content"
	"github.com/vvilaysack/portfolio/app/database"
	"github.com/vvilaysack/portfolio/app/site"
	"github.com/vvilaysack/portfolio/app/tasks"
	"github.com/vvilaysack/portfolio/app/theme"
)

// SectionContent pairs the rendered state of a section with the engine that
// fills it.
type SectionContent struct {
	Section *content.Section
	Manager content.Manager
}

type Handler struct {
	profiles  *site.ProfileCache
	contents  map[string]SectionContent
	scheduler tasks.TaskSchedulerInterface
	themes    *theme.Service
	prefRepo  database.PreferenceRepository
	version   string
}

type sectionCopy struct {
	Title    string
	Subtitle string
	Error    string
}

var sectionCopies = map[string]sectionCopy{
	site.SectionCertifications: {
		Title:    "Certifications",
		Subtitle: "Professional certifications and credentials",
		Error:    "Unable to load certifications. Please try again later.",
	},
	site.SectionProjects: {
		Title:    "Projects",
		Subtitle: "Things I have built and contributed to",
		Error:    "Unable to load projects. Please try again later.",
	},
	site.SectionBlog: {
		Title:    "Blog",
		Subtitle: "Latest articles from Medium",
		Error:    "Unable to load blog posts. Please visit Medium directly.",
	},
}
