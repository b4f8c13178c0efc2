package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/glean/internal/application/settings"
	"github.com/tesso57/glean/internal/application/usecase"
	"github.com/tesso57/glean/internal/domain/highlight"
	"github.com/tesso57/glean/internal/infrastructure/config"
	"github.com/tesso57/glean/internal/infrastructure/integrate"
	"github.com/tesso57/glean/internal/infrastructure/logging"
	"github.com/tesso57/glean/internal/infrastructure/readwise"
	"github.com/tesso57/glean/internal/infrastructure/search"
	"github.com/tesso57/glean/internal/infrastructure/storage"
	"github.com/tesso57/glean/internal/presentation/tui"
)

// app holds the wired services shared by every command.
type app struct {
	settings settings.Settings
	log      logging.Logger
	store    *storage.Store
	review   *usecase.ReviewService
}

func newApp(configPath string) (*app, error) {
	cfgStore, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := cfgStore.Settings

	log, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	store, err := storage.Open(cfg.DBFile)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}

	var provider usecase.HighlightProvider
	if cfg.HasProvider() {
		provider = readwise.NewClient(cfg.Readwise.Token, cfg.Readwise.BaseURL, seconds(cfg.Readwise.TimeoutSeconds))
	}
	var searcher usecase.Searcher
	if cfg.HasSearchBackend() {
		searcher = search.NewClient(cfg.Search.URL, cfg.Search.APIKey, seconds(cfg.Search.TimeoutSeconds))
	}
	var integrator usecase.Integrator
	sink := integrate.New(integrate.Config{
		Clipboard: cfg.Integrate.Clipboard,
		Command:   cfg.Integrate.Command,
		Args:      cfg.Integrate.Args,
		Timeout:   seconds(cfg.Integrate.TimeoutSeconds),
	})
	if sink.Enabled() {
		integrator = sink
	}

	svc := usecase.NewReviewService(provider, searcher, store, integrator, time.Now)
	if cfg.Review.PageSize > 0 {
		svc.PageSize = cfg.Review.PageSize
	}
	if cfg.Search.Limit > 0 {
		svc.SearchLimit = cfg.Search.Limit
	}

	log.Info("glean started",
		logging.String("config", cfgStore.Path()),
		logging.String("db", cfg.DBFile))

	return &app{settings: cfg, log: log, store: store, review: svc}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error("close database", logging.Error(err))
	}
	_ = a.log.Sync()
}

// ReviewCmd starts the interactive review session.
type ReviewCmd struct{}

// Run executes the command.
func (ReviewCmd) Run(cli *CLI) error {
	a, err := newApp(cli.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	m := tui.NewModel(a.settings, a.review, a.log.With(logging.String("component", "tui")))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// SyncCmd pulls highlights without opening the UI.
type SyncCmd struct{}

// Run executes the command.
func (SyncCmd) Run(cli *CLI) error {
	a, err := newApp(cli.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.review.Sync(context.Background())
	if err != nil {
		return err
	}
	printSync(os.Stdout, res)
	return nil
}

// StatsCmd prints how many highlights are in each status.
type StatsCmd struct{}

// Run executes the command.
func (StatsCmd) Run(cli *CLI) error {
	a, err := newApp(cli.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	stats, err := a.store.Stats(ctx)
	if err != nil {
		return err
	}
	last, err := a.store.LastSync(ctx)
	if err != nil {
		return err
	}
	printStats(os.Stdout, stats, last)
	return nil
}

func printSync(w io.Writer, res usecase.SyncResult) {
	since := "the beginning"
	if !res.Since.IsZero() {
		since = res.Since.Local().Format(time.DateTime)
	}
	fmt.Fprintf(w, "Synced since %s: %d fetched, %d new, %d deleted\n", since, res.Fetched, res.New, res.Deleted)
}

func printStats(w io.Writer, stats map[highlight.Status]int, lastSync time.Time) {
	statuses := []highlight.Status{highlight.StatusNew, highlight.StatusIntegrated, highlight.StatusArchived}
	var extra []highlight.Status
	for st := range stats {
		if !slices.Contains(statuses, st) {
			extra = append(extra, st)
		}
	}
	slices.Sort(extra)
	statuses = append(statuses, extra...)

	total := 0
	for _, st := range statuses {
		fmt.Fprintf(w, "%-11s %d\n", st, stats[st])
		total += stats[st]
	}
	fmt.Fprintf(w, "%-11s %d\n", "TOTAL", total)
	if lastSync.IsZero() {
		fmt.Fprintln(w, "Never synced")
		return
	}
	fmt.Fprintf(w, "Last sync   %s\n", lastSync.Local().Format(time.DateTime))
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 30 * time.Second
	}
	return time.Duration(n) * time.Second
}
