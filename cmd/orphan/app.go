// # cmd/orphan/app.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"orphan/internal/config"
	"orphan/internal/extract"
	"orphan/internal/graph"
	"orphan/internal/history"
	"orphan/internal/indexer"
	"orphan/internal/observability"
	"orphan/internal/report"
	"orphan/internal/resolver"
	"orphan/internal/watcher"
)

type App struct {
	Config       *config.Config
	Indexer      *indexer.Indexer
	Registry     *extract.Registry
	EntryMatcher *graph.EntryMatcher

	historyStore *history.Store
	teaProgram   *tea.Program

	mu      sync.RWMutex
	current *report.Report
}

func NewApp(cfg *config.Config) (*App, error) {
	idx, err := indexer.New(indexer.Options{
		ExcludeDirs:    cfg.Exclude.Dirs,
		ExcludeFiles:   cfg.Exclude.Files,
		IncludeTests:   cfg.IncludeTests,
		ReadsPerSecond: cfg.Limits.ReadsPerSecond,
		ReadBurst:      cfg.Limits.ReadBurst,
	})
	if err != nil {
		return nil, err
	}

	matcher, err := graph.NewEntryMatcher(cfg.EntryPoints.Patterns)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:       cfg,
		Indexer:      idx,
		Registry:     extract.NewRegistry(),
		EntryMatcher: matcher,
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		app.historyStore = store
	}

	return app, nil
}

func (a *App) Close() error {
	if a.historyStore != nil {
		return a.historyStore.Close()
	}
	return nil
}

// RunScan executes one full pipeline pass: index, extract, resolve,
// aggregate. The graph is built fresh every run and discarded once the
// report exists.
func (a *App) RunScan(ctx context.Context) (*report.Report, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.RunScan")
	defer span.End()

	start := time.Now()

	res, err := a.indexTree(ctx)
	if err != nil {
		return nil, err
	}

	g, warnings := a.buildGraph(ctx, res)

	part := g.Classify(a.EntryMatcher.Match)
	rep := report.Build(g, part, warnings, a.Config.ScanPaths, uuid.NewString(), time.Since(start))

	if len(a.Config.ScanPaths) == 1 {
		if base, err := filepath.Abs(a.Config.ScanPaths[0]); err == nil {
			rep.Relativize(base)
		}
	}

	observability.ScansTotal.Inc()
	observability.ScanDuration.Observe(time.Since(start).Seconds())
	observability.FilesScanned.Set(float64(rep.ScannedFileCount))
	observability.GraphEdges.Set(float64(rep.EdgesTotal))
	observability.OrphansFound.Set(float64(len(rep.Orphans)))
	observability.FilesSkipped.Set(float64(rep.SkippedFileCount))

	if a.historyStore != nil {
		snap := history.Snapshot{
			RunID:           rep.RunID,
			Timestamp:       rep.GeneratedAt,
			FileCount:       rep.ScannedFileCount,
			EdgeCount:       rep.EdgesTotal,
			OrphanCount:     len(rep.Orphans),
			EntryPointCount: len(rep.EntryPoints),
			ClusterCount:    len(rep.OrphanClusters),
			SkippedCount:    rep.SkippedFileCount,
			Duration:        rep.Duration,
		}
		if err := a.historyStore.SaveSnapshot(a.Config.History.Project, snap); err != nil {
			slog.Warn("failed to save history snapshot", "error", err)
		}
	}

	a.mu.Lock()
	a.current = rep
	a.mu.Unlock()

	return rep, nil
}

func (a *App) indexTree(ctx context.Context) (indexer.Result, error) {
	_, span := observability.Tracer.Start(ctx, "app.indexTree")
	defer span.End()
	return a.Indexer.Scan(a.Config.ScanPaths)
}

func (a *App) buildGraph(ctx context.Context, res indexer.Result) (*graph.Graph, []indexer.Warning) {
	ctx, span := observability.Tracer.Start(ctx, "app.buildGraph")
	defer span.End()

	g := graph.New()
	for _, f := range res.Files {
		language, _ := extract.LanguageForPath(f)
		g.AddNode(f, language)
	}

	r := resolver.New(res.Files)
	warnings := append([]indexer.Warning(nil), res.Warnings...)

	for _, f := range res.Files {
		extractor, ok := a.Registry.ForPath(f)
		if !ok {
			continue
		}

		content, err := a.Indexer.ReadFile(ctx, f)
		if err != nil {
			slog.Warn("skipping unreadable file", "path", f, "error", err)
			warnings = append(warnings, indexer.Warning{
				Path:   f,
				Reason: fmt.Sprintf("unreadable: %v", err),
			})
			continue
		}

		extractStart := time.Now()
		specifiers := extractor.Extract(content)
		observability.ExtractDuration.WithLabelValues(extractor.Language()).
			Observe(time.Since(extractStart).Seconds())

		for _, spec := range specifiers {
			if target, ok := r.Resolve(f, spec); ok {
				g.AddEdge(f, target)
			}
		}
	}

	return g, warnings
}

// Current implements serve.ReportSource.
func (a *App) Current() *report.Report {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// WriteOutputs persists the report to the configured file targets.
func (a *App) WriteOutputs(rep *report.Report) error {
	if a.Config.Output.Text != "" {
		if err := os.WriteFile(a.Config.Output.Text, []byte(rep.RenderText()), 0o644); err != nil {
			return err
		}
	}
	if a.Config.Output.JSON != "" {
		out, err := rep.RenderJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.JSON, []byte(out), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// HandleChanges is the watcher callback: any settled batch of changes
// triggers a fresh scan.
func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))

	rep, err := a.RunScan(context.Background())
	if err != nil {
		slog.Error("rescan failed", "error", err)
		return
	}
	if err := a.WriteOutputs(rep); err != nil {
		slog.Error("failed to write outputs", "error", err)
	}

	if a.teaProgram != nil {
		a.teaProgram.Send(updateMsg{report: rep})
	} else {
		fmt.Print(rep.RenderText())
	}
}

func (a *App) StartWatcher() (*watcher.Watcher, error) {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.Config.IncludeTests,
		a.HandleChanges,
	)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(a.Config.ScanPaths); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (a *App) RunUI() error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	go func() {
		if rep := a.Current(); rep != nil {
			p.Send(updateMsg{report: rep})
		}
	}()

	_, err := p.Run()
	return err
}
