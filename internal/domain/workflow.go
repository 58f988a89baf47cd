package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"preamble.dev/pkg/preamble/internal/adapter"
	"preamble.dev/pkg/preamble/internal/controller"
	m "preamble.dev/pkg/preamble/internal/model"
)

// RunArgs contains the arguments of a single apply or check run.
type RunArgs struct {
	Config m.RunConfig
	// Report, when set, receives a YAML document with every file's outcome.
	Report m.Path
}

// Workflow drives Enumerator → InclusionFilter → Resolver → Injector over
// every configured root.
type Workflow interface {
	// Apply inserts missing preambles. Per-file failures are counted in the
	// returned summary; only configuration and fixed-template failures are
	// returned as errors.
	Apply(ctx context.Context, args RunArgs) (m.Summary, error)
	// Check reports files lacking a preamble without modifying anything.
	Check(ctx context.Context, args RunArgs) (m.Summary, error)
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.TemplateStore
	adapter.IgnoreOracle
	adapter.ReportStore
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	templateStore adapter.TemplateStore,
	oracle adapter.IgnoreOracle,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		TemplateStore:   templateStore,
		IgnoreOracle:    oracle,
		ReportStore:     reportStore,
		UI:              ui,
	}
}

// pipeline holds the per-run components built from one RunConfig.
type pipeline struct {
	config     m.RunConfig
	enumerator Enumerator
	filter     InclusionFilter
	resolver   Resolver
	injector   Injector
	process    func(ctx context.Context, file m.File, tmpl m.Template) m.Report
}

func (w *workflow) Apply(ctx context.Context, args RunArgs) (m.Summary, error) {
	return w.run(ctx, args, controller.ModeApply)
}

func (w *workflow) Check(ctx context.Context, args RunArgs) (m.Summary, error) {
	return w.run(ctx, args, controller.ModeCheck)
}

func (w *workflow) run(ctx context.Context, args RunArgs, mode controller.StartMode) (m.Summary, error) {
	config := args.Config
	if config.Threads <= 0 {
		config.Threads = 1
	}

	if err := w.validateRoots(ctx, config.Roots); err != nil {
		return m.Summary{}, err
	}

	p, err := w.newPipeline(ctx, config, mode)
	if err != nil {
		return m.Summary{}, err
	}

	startOption := controller.WithApplyMode()
	if mode == controller.ModeCheck {
		startOption = controller.WithCheckMode()
	}

	if err := w.Start(ctx, startOption); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return m.Summary{}, fmt.Errorf("start ui: %w", err)
	}

	w.DisplayRunInfo(ctx, config)

	rec := newRecorder(w.UI)

	for _, root := range config.Roots {
		slog.Info("Processing root", "root", root, "mode", config.Mode, "threads", config.Threads)
		w.processRoot(ctx, p, root, rec)
	}

	reports, summary := rec.results()

	w.DisplaySummary(ctx, summary)
	w.Close(ctx)

	slog.Info("Run finished",
		"mutated", summary.Mutated, "skipped", summary.Skipped,
		"missing", summary.Missing, "errors", summary.Errors)

	if args.Report != "" {
		if err := w.SaveReports(args.Report, reports, summary); err != nil {
			slog.Error("Failed to save report", "path", args.Report, "error", err)
			return summary, fmt.Errorf("save report: %w", err)
		}
	}

	return summary, nil
}

func (w *workflow) validateRoots(ctx context.Context, roots []m.Path) error {
	if len(roots) == 0 {
		return fmt.Errorf("%w: no root paths given", ErrConfig)
	}

	for _, root := range roots {
		info, err := w.FileInfo(ctx, root)
		if err != nil {
			return fmt.Errorf("%w: root %s: %w", ErrConfig, root, err)
		}

		if !info.IsDir() {
			return fmt.Errorf("%w: root %s is not a directory", ErrConfig, root)
		}
	}

	return nil
}

func (w *workflow) newPipeline(ctx context.Context, config m.RunConfig, mode controller.StartMode) (*pipeline, error) {
	resolver, err := NewResolver(w.TemplateStore, config, DefaultResolverCacheSize)
	if err != nil {
		return nil, err
	}

	if err := resolver.Prepare(ctx); err != nil {
		slog.Error("Failed to load fixed template", "template", config.TemplatePath, "error", err)
		return nil, err
	}

	filter := NewInclusionFilter(config, w.IgnoreOracle)
	injector := NewInjector(w.SourceFSAdapter, config)

	p := &pipeline{
		config:     config,
		enumerator: NewEnumerator(w.SourceFSAdapter, config, filter.Denied),
		filter:     filter,
		resolver:   resolver,
		injector:   injector,
		process:    injector.Inject,
	}

	if mode == controller.ModeCheck {
		p.process = injector.Inspect
	}

	return p, nil
}

// processRoot enumerates root and fans files out to a bounded worker pool.
func (w *workflow) processRoot(ctx context.Context, p *pipeline, root m.Path, rec *recorder) {
	files, errs := p.enumerator.Enumerate(ctx, root)

	var group errgroup.Group
	group.SetLimit(p.config.Threads)

	for files != nil || errs != nil {
		select {
		case file, ok := <-files:
			if !ok {
				files = nil
				continue
			}

			group.Go(func() error {
				w.processFile(ctx, p, file, rec)
				return nil
			})
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}

			rec.record(ctx, enumerationReport(root, err))
		}
	}

	_ = group.Wait()
}

func (w *workflow) processFile(ctx context.Context, p *pipeline, file m.File, rec *recorder) {
	if !p.filter.Include(ctx, file) {
		return
	}

	rec.discover(ctx)

	tmpl, err := p.resolver.Resolve(ctx, file.FullPath)
	if err != nil {
		if errors.Is(err, ErrResolutionNotFound) {
			slog.Warn("No preamble template applies", "path", file.FullPath)
		} else {
			slog.Error("Failed to resolve preamble", "path", file.FullPath, "error", err)
		}

		rec.record(ctx, m.Report{File: file, Outcome: m.Error, Err: err})

		return
	}

	rec.record(ctx, p.process(ctx, file, tmpl))
}

func enumerationReport(root m.Path, err error) m.Report {
	path := root

	var fileErr *FileError
	if errors.As(err, &fileErr) {
		path = fileErr.Path
	}

	return m.Report{
		File:    m.File{FullPath: path, Root: root},
		Outcome: m.Error,
		Err:     err,
	}
}

// recorder serializes report delivery to the UI and accumulates the summary.
type recorder struct {
	ui controller.UI

	mu         sync.Mutex
	reports    []m.Report
	summary    m.Summary
	discovered int
}

func newRecorder(ui controller.UI) *recorder {
	return &recorder{ui: ui}
}

func (r *recorder) discover(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.discovered++
	r.ui.DisplayDiscovered(ctx, r.discovered)
}

func (r *recorder) record(ctx context.Context, report m.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = append(r.reports, report)
	r.summary.Add(report)
	r.ui.DisplayReport(ctx, report)
}

// results returns the reports sorted by path together with the summary.
func (r *recorder) results() ([]m.Report, m.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reports := make([]m.Report, len(r.reports))
	copy(reports, r.reports)

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].File.FullPath < reports[j].File.FullPath
	})

	return reports, r.summary
}
