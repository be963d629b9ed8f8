package cfg

import "time"

type Cfg struct {
	// Server configuration
	Port         string
	APIAccessKey string

	// Site configuration
	SiteFile  string
	StaticDir string
	DataDir   string
	DBPath    string

	// Content sources
	MediumUsername    string
	FeedAPI           string
	BlogMode          string
	CertificationsURL string
	ProjectsURL       string
	FetchTimeout      time.Duration
	WorkerCount       int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
