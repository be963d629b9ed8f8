package site

type Profile struct {
	Name           string   `yaml:"name"`
	Initials       string   `yaml:"initials"`
	Tagline        string   `yaml:"tagline"`
	About          []string `yaml:"about"`
	Avatar         string   `yaml:"avatar"`
	Email          string   `yaml:"email"`
	MediumUsername string   `yaml:"medium_username"`
	Social         Social   `yaml:"social"`
}

type Social struct {
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Medium   string `yaml:"medium"`
}

func (p Profile) MediumFeedURL() string {
	return "https://medium.com/feed/@" + p.MediumUsername
}
