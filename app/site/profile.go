package site

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const defaultName = "Your Name"

type ProfileCache struct {
	profileFile    string
	mediumUsername string
	profile        *Profile
	mu             sync.RWMutex
}

// NewProfileCache reads profiles from profileFile. mediumUsername is used when
// the file does not name one.
func NewProfileCache(profileFile, mediumUsername string) *ProfileCache {
	return &ProfileCache{
		profileFile:    profileFile,
		mediumUsername: mediumUsername,
	}
}

// Run loads the profile file. A missing file leaves the default profile in place.
func (pc *ProfileCache) Run() error {
	if _, err := os.Stat(pc.profileFile); os.IsNotExist(err) {
		slog.Warn("Site profile not found, using defaults", "file", pc.profileFile)
		pc.store(pc.withDefaults(&Profile{}))
		return nil
	}

	profile, err := pc.parseProfile()
	if err != nil {
		return err
	}

	if err := validateProfile(profile); err != nil {
		return fmt.Errorf("invalid profile %s: %w", pc.profileFile, err)
	}

	pc.store(profile)
	slog.Debug("Site profile loaded", "file", pc.profileFile, "name", profile.Name)

	return nil
}

// Get returns a copy of the loaded profile, or defaults before Run.
func (pc *ProfileCache) Get() Profile {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.profile == nil {
		return *pc.withDefaults(&Profile{})
	}

	profile := *pc.profile
	profile.About = append([]string(nil), pc.profile.About...)
	return profile
}

func (pc *ProfileCache) store(profile *Profile) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.profile = profile
}

func (pc *ProfileCache) parseProfile() (*Profile, error) {
	data, err := os.ReadFile(pc.profileFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return pc.withDefaults(&profile), nil
}

func (pc *ProfileCache) withDefaults(profile *Profile) *Profile {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		profile.Name = defaultName
	}
	if profile.Initials == "" {
		profile.Initials = Initials(profile.Name)
	}
	if profile.MediumUsername == "" {
		profile.MediumUsername = pc.mediumUsername
	}
	profile.MediumUsername = strings.TrimPrefix(profile.MediumUsername, "@")
	if profile.Social.Medium == "" && profile.MediumUsername != "" {
		profile.Social.Medium = "https://medium.com/@" + profile.MediumUsername
	}
	return profile
}

func validateProfile(profile *Profile) error {
	if utf8.RuneCountInString(profile.Initials) > 3 {
		return fmt.Errorf("initials must be at most 3 characters, got %q", profile.Initials)
	}

	links := map[string]string{
		"github":   profile.Social.GitHub,
		"linkedin": profile.Social.LinkedIn,
		"medium":   profile.Social.Medium,
		"avatar":   profile.Avatar,
	}

	for field, link := range links {
		if link == "" || strings.HasPrefix(link, "/") {
			continue
		}
		u, err := url.Parse(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%s must be an http(s) URL or a site path, got %q", field, link)
		}
	}

	return nil
}

// Initials takes the first letter of the first two words of name.
func Initials(name string) string {
	var initials strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		initials.WriteRune(r)
		if utf8.RuneCountInString(initials.String()) == 2 {
			break
		}
	}
	return cases.Upper(language.Und).String(initials.String())
}
