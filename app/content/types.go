package content

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	BlogDisplayCap = 4
	wordsPerMinute = 200
	excerptLength  = 150
	dateLayout     = "Jan 2, 2006"
)

type BlogPost struct {
	Title       string
	Description string // HTML
	Content     string // HTML, optional
	Thumbnail   string
	PubDate     time.Time
	Link        string
}

// FormattedDate returns an en-US short date, or "" when the source date was unparseable.
func (p BlogPost) FormattedDate() string {
	if p.PubDate.IsZero() {
		return ""
	}
	return p.PubDate.Format(dateLayout)
}

func (p BlogPost) ReadTimeMinutes() int {
	return ReadTime(p.Content)
}

func (p BlogPost) IsLao() bool {
	return ContainsLao(p.Title) || ContainsLao(p.Description)
}

func (p BlogPost) Excerpt() string {
	return Excerpt(p.Description)
}

// ThumbnailURL falls back to the first image embedded in the content.
func (p BlogPost) ThumbnailURL() string {
	if p.Thumbnail != "" {
		return p.Thumbnail
	}
	return FirstImageSrc(p.Content)
}

// Year accepts both numeric and textual YAML scalars.
type Year string

func (y *Year) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("year must be a scalar, got %s", node.Tag)
	}
	if node.ShortTag() == "!!null" {
		*y = ""
		return nil
	}
	*y = Year(strings.TrimSpace(node.Value))
	return nil
}

type Certification struct {
	Name      string `yaml:"name"`
	Issuer    string `yaml:"issuer"`
	Year      Year   `yaml:"year"`
	Status    string `yaml:"status"`
	Badge     string `yaml:"badge"`
	VerifyURL string `yaml:"verify_url"`
}

// StatusLabel is the upper-cased status. A missing status counts as ACTIVE.
func (c Certification) StatusLabel() string {
	status := strings.TrimSpace(c.Status)
	if status == "" {
		return "ACTIVE"
	}
	return cases.Upper(language.Und).String(status)
}

func (c Certification) StatusClass() string {
	if c.StatusLabel() == "ACTIVE" {
		return "active"
	}
	return "expired"
}

type ProjectLinks struct {
	GitHub string `yaml:"github"`
	Demo   string `yaml:"demo"`
}

type Project struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Category    string       `yaml:"category"`
	Status      string       `yaml:"status"`
	Tags        []string     `yaml:"tags"`
	Links       ProjectLinks `yaml:"links"`
}

func (p Project) CategoryLabel() string {
	if p.Category == "" {
		return "Project"
	}
	return p.Category
}

func (p Project) StatusLabel() string {
	if p.Status == "" {
		return "Active"
	}
	return p.Status
}

func (p Project) StatusClass() string {
	if cases.Lower(language.Und).String(strings.TrimSpace(p.Status)) == "completed" {
		return "completed"
	}
	return "active"
}
