package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the operator endpoints (optional)"`

	// Site configuration
	SiteFile  string `long:"site-file" env:"SITE_FILE" default:"./site.yml" description:"YAML file with the site profile"`
	StaticDir string `long:"static-dir" env:"STATIC_DIR" default:"./static" description:"Directory with static assets"`
	DataDir   string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory with local content files, served under /data"`
	DBPath    string `long:"db-path" env:"DB_PATH" default:"./portfolio.db" description:"SQLite database file for visitor preferences"`

	// Content sources
	MediumUsername    string `long:"medium-username" env:"MEDIUM_USERNAME" default:"vvilaysack" description:"Medium username (without @)"`
	FeedAPI           string `long:"feed-api" env:"FEED_API" default:"https://api.rss2json.com/v1/api.json" description:"RSS-to-JSON conversion endpoint"`
	BlogMode          string `long:"blog-mode" env:"BLOG_MODE" default:"rss2json" choice:"rss2json" choice:"rss" description:"How the blog feed is fetched"`
	CertificationsURL string `long:"certifications-url" env:"CERTIFICATIONS_URL" default:"./data/certifications.yml" description:"Certifications YAML location (URL or path)"`
	ProjectsURL       string `long:"projects-url" env:"PROJECTS_URL" default:"./data/projects.yml" description:"Projects YAML location (URL or path)"`
	FetchTimeout      int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"10" description:"Content fetch timeout in seconds"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for content loading"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Portfolio/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Vientiane)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses the given arguments instead of os.Args when args is non-nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.FetchTimeout <= 0 {
		return nil, fmt.Errorf("fetch timeout must be positive, got %d", raw.FetchTimeout)
	}
	if raw.WorkerCount <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", raw.WorkerCount)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		APIAccessKey:      raw.APIAccessKey,
		SiteFile:          raw.SiteFile,
		StaticDir:         raw.StaticDir,
		DataDir:           raw.DataDir,
		DBPath:            raw.DBPath,
		MediumUsername:    raw.MediumUsername,
		FeedAPI:           raw.FeedAPI,
		BlogMode:          raw.BlogMode,
		CertificationsURL: raw.CertificationsURL,
		ProjectsURL:       raw.ProjectsURL,
		FetchTimeout:      time.Duration(raw.FetchTimeout) * time.Second,
		WorkerCount:       raw.WorkerCount,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
