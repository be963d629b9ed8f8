package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/sync/errgroup"

	"github.com/vvilaysack/portfolio/app/api"
	"github.com/vvilaysack/portfolio/app/cfg"
	"github.com/vvilaysack/portfolio/app/content"
	"github.com/vvilaysack/portfolio/app/database"
	"github.com/vvilaysack/portfolio/app/site"
	"github.com/vvilaysack/portfolio/app/tasks"
	"github.com/vvilaysack/portfolio/app/theme"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	if err := run(appCfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(appCfg *cfg.Cfg) error {
	slog.Info("Starting portfolio server", "version", appCfg.Version, "port", appCfg.Port)

	profiles := site.NewProfileCache(appCfg.SiteFile, appCfg.MediumUsername)
	if err := profiles.Run(); err != nil {
		return fmt.Errorf("failed to load site profile: %w", err)
	}
	profile := profiles.Get()

	themes, prefRepo, closeDB := openThemeStore(appCfg.DBPath)
	defer closeDB()

	blogAdapter, err := content.NewBlogAdapter(appCfg.BlogMode, appCfg.FeedAPI, profile.MediumFeedURL())
	if err != nil {
		return fmt.Errorf("failed to configure blog: %w", err)
	}

	httpClient := &http.Client{Timeout: appCfg.FetchTimeout + 5*time.Second}
	fetcher := content.NewSourceFetcher(httpClient, appCfg.UserAgent, appCfg.FetchTimeout)

	blogSection := content.NewSection(site.SectionBlog)
	certSection := content.NewSection(site.SectionCertifications)
	projectSection := content.NewSection(site.SectionProjects)

	contents := map[string]api.SectionContent{
		site.SectionBlog: {
			Section: blogSection,
			Manager: content.NewEngine[content.BlogPost](blogAdapter, fetcher, blogSection, content.EngineOptions{CacheItems: true}),
		},
		site.SectionCertifications: {
			Section: certSection,
			Manager: content.NewEngine[content.Certification](content.NewCertificationsAdapter(appCfg.CertificationsURL), fetcher, certSection, content.EngineOptions{}),
		},
		site.SectionProjects: {
			Section: projectSection,
			Manager: content.NewEngine[content.Project](content.NewProjectsAdapter(appCfg.ProjectsURL), fetcher, projectSection, content.EngineOptions{}),
		},
	}

	managers := make([]content.Manager, 0, len(contents))
	for _, sc := range contents {
		managers = append(managers, sc.Manager)
	}

	scheduler := tasks.NewScheduler(managers, []string{site.SectionCertifications, site.SectionProjects}, appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(profiles, contents, scheduler, themes, prefRepo, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey, appCfg.StaticDir, appCfg.DataDir)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		slog.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}

// openThemeStore connects the preference database. When it is unavailable,
// themes are kept in memory only.
func openThemeStore(dbPath string) (*theme.Service, database.PreferenceRepository, func()) {
	db, err := database.NewConnection(dbPath)
	if err != nil {
		slog.Warn("Preference database unavailable, themes will not persist", "path", dbPath, "error", err)
		return theme.NewService(nil), nil, func() {}
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Warn("Preference migrations failed, themes will not persist", "error", err)
		db.Close()
		return theme.NewService(nil), nil, func() {}
	}
	slog.Debug("Database migrations applied", "version", version, "dirty", dirty)

	repo := database.NewPreferenceRepository(db)
	return theme.NewService(theme.NewPreferenceStore(repo)), repo, func() { db.Close() }
}
