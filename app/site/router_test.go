package site

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "home"},
		{"home", "home"},
		{"about", "about"},
		{"#certifications", "certifications"},
		{"projects", "projects"},
		{"blog", "blog"},
		{"Blog", "home"},
		{"admin", "home"},
		{"#", "home"},
		{"../etc/passwd", "home"},
	}

	for _, tt := range tests {
		if got := Resolve(tt.input); got != tt.expected {
			t.Errorf("Resolve(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestContentSection(t *testing.T) {
	expected := map[string]bool{
		"home":           false,
		"about":          false,
		"certifications": true,
		"projects":       true,
		"blog":           true,
	}

	for _, section := range Sections {
		if ContentSection(section) != expected[section] {
			t.Errorf("ContentSection(%q) = %v, expected %v", section, ContentSection(section), expected[section])
		}
	}
}
