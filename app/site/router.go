package site

import (
	"slices"
	"strings"
)

const (
	SectionHome           = "home"
	SectionAbout          = "about"
	SectionCertifications = "certifications"
	SectionProjects       = "projects"
	SectionBlog           = "blog"
)

// Sections lists the navigable sections in menu order.
var Sections = []string{
	SectionHome,
	SectionAbout,
	SectionCertifications,
	SectionProjects,
	SectionBlog,
}

// Resolve maps a hash fragment to a known section. Unknown or empty names
// resolve to home.
func Resolve(name string) string {
	name = strings.TrimPrefix(name, "#")
	if slices.Contains(Sections, name) {
		return name
	}
	return SectionHome
}

// ContentSection reports whether entering the section loads remote content.
func ContentSection(name string) bool {
	switch name {
	case SectionCertifications, SectionProjects, SectionBlog:
		return true
	default:
		return false
	}
}
