package api

import (
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vvilaysack/portfolio/app/content"
	"github.com/vvilaysack/portfolio/app/database"
	"github.com/vvilaysack/portfolio/app/site"
	"github.com/vvilaysack/portfolio/app/tasks"
	"github.com/vvilaysack/portfolio/app/theme"
)

const pollInterval = 800 * time.Millisecond

func NewHandler(profiles *site.ProfileCache, contents map[string]SectionContent,
	scheduler tasks.TaskSchedulerInterface, themes *theme.Service,
	prefRepo database.PreferenceRepository, version string) *Handler {
	return &Handler{
		profiles:  profiles,
		contents:  contents,
		scheduler: scheduler,
		themes:    themes,
		prefRepo:  prefRepo,
		version:   version,
	}
}

type contentView struct {
	Name     string
	Title    string
	Subtitle string
	Error    string
	Cards    []template.HTML
	State    string
	PollURL  string
	PollMS   int64
	MoreURL  string
}

type stats struct {
	Certifications int
	Projects       int
}

func (h *Handler) GetIndex(c *gin.Context) {
	visitor := visitorID(c)
	c.Header("Accept-CH", colorSchemeHint)
	c.Header("Vary", colorSchemeHint)

	data := h.pageData(c, site.SectionHome)
	data["Theme"] = h.themes.Current(c.Request.Context(), visitor, prefersDark(c))
	data["Sections"] = site.Sections

	c.HTML(http.StatusOK, "index.html", data)
}

// GetSection renders one section fragment. Entering a content section that is
// neither loaded nor loading queues a load; poll requests only report state.
func (h *Handler) GetSection(c *gin.Context) {
	name := site.Resolve(c.Param("name"))

	if site.ContentSection(name) && c.Query("poll") == "" {
		h.triggerLoad(name)
	}

	c.HTML(http.StatusOK, "section", h.pageData(c, name))
}

func (h *Handler) triggerLoad(name string) {
	sc, ok := h.contents[name]
	if !ok {
		return
	}

	status := sc.Manager.Status()
	if status.Loaded || status.InFlight {
		return
	}

	sc.Section.ShowLoading()
	if err := h.scheduler.EnqueueTask(tasks.NewLoadSectionTask(sc.Manager)); err != nil {
		slog.Error("Failed to enqueue LoadSectionTask", "section", name, "error", err)
		sc.Section.ShowError()
	}
}

func (h *Handler) pageData(c *gin.Context, name string) gin.H {
	profile := h.profiles.Get()

	data := gin.H{
		"Profile": profile,
		"Section": name,
		"Year":    time.Now().In(time.Local).Year(),
		"Stats":   h.stats(),
	}

	if site.ContentSection(name) {
		data["Content"] = h.contentView(name, profile)
	}

	return data
}

func (h *Handler) contentView(name string, profile site.Profile) contentView {
	text := sectionCopies[name]
	view := contentView{
		Name:     name,
		Title:    text.Title,
		Subtitle: text.Subtitle,
		Error:    text.Error,
		State:    "loading",
		PollURL:  "/sections/" + name + "?poll=1",
		PollMS:   pollInterval.Milliseconds(),
	}

	if name == site.SectionBlog {
		view.MoreURL = profile.Social.Medium
	}

	sc, ok := h.contents[name]
	if !ok {
		view.State = "error"
		return view
	}

	snapshot := sc.Section.Snapshot()
	switch {
	case snapshot.Failed:
		view.State = "error"
	case len(snapshot.Cards) > 0:
		view.State = "ready"
		view.Cards = snapshot.Cards
	}

	return view
}

func (h *Handler) stats() stats {
	var s stats
	if sc, ok := h.contents[site.SectionCertifications]; ok {
		s.Certifications = sc.Section.Snapshot().Total
	}
	if sc, ok := h.contents[site.SectionProjects]; ok {
		s.Projects = sc.Section.Snapshot().Total
	}
	return s
}

func (h *Handler) PostThemeToggle(c *gin.Context) {
	visitor := visitorID(c)
	ctx := c.Request.Context()

	current := c.PostForm("current")
	if !theme.Valid(current) {
		current = h.themes.Current(ctx, visitor, prefersDark(c))
	}

	next := h.themes.Toggle(ctx, visitor, current)
	slog.Debug("Theme toggled", "visitor", visitor, "theme", next)

	c.JSON(http.StatusOK, gin.H{"theme": next})
}

func (h *Handler) GetHealth(c *gin.Context) {
	sections := make(map[string]bool, len(h.contents))
	for name, sc := range h.contents {
		sections[name] = sc.Manager.Loaded()
	}

	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
		"sections":  sections,
	}

	if h.prefRepo != nil {
		if count, err := h.prefRepo.CountPreferences(c.Request.Context(), theme.StorageKey); err == nil {
			health["saved_themes"] = count
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListSections(c *gin.Context) {
	names := make([]string, 0, len(h.contents))
	for name := range h.contents {
		names = append(names, name)
	}
	slices.Sort(names)

	sections := make([]content.Status, 0, len(names))
	for _, name := range names {
		sections = append(sections, h.contents[name].Manager.Status())
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"sections": sections,
		"total":    len(sections),
	})
}

func (h *Handler) APIRefreshSection(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing section name parameter"})
		return
	}

	sc, ok := h.contents[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}

	task := tasks.NewRefreshSectionTask(sc.Manager)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue RefreshSectionTask", "section", name, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to schedule refresh"})
		return
	}

	slog.Info("Section refresh requested", "section", name, "task_id", task.GetID())

	c.JSON(http.StatusAccepted, gin.H{
		"section": name,
		"task_id": task.GetID(),
		"status":  "scheduled",
	})
}
