// Package build renders the whole site into an output directory.
//
// A build loads docs and blog posts for every locale, renders each route,
// generates feeds and the sitemap, copies static files, checks internal links
// and then writes only the files whose content changed since the previous
// build. The previous build is recorded in a manifest under the cache dir.
package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/jigarkkarangiya/docs/internal/linkcheck"
	"github.com/jigarkkarangiya/docs/internal/report"
	"github.com/jigarkkarangiya/docs/internal/website"
	"github.com/jigarkkarangiya/docs/pkg/a11y"
	"github.com/jigarkkarangiya/docs/pkg/logging"
	"github.com/jigarkkarangiya/docs/pkg/metrics"
)

var (
	// ErrBrokenLinks is returned when broken links or anchors fail the build.
	ErrBrokenLinks = errors.New("broken links")
	// ErrAccessibility is returned when accessibility issues fail the build.
	ErrAccessibility = errors.New("accessibility issues")
)

// Options configures a Builder.
type Options struct {
	Site website.SiteConfig

	// SiteDir holds docs/, blog/, static/ and i18n/
	SiteDir string
	OutDir  string
	// CacheDir holds the manifest; empty uses .docsite next to OutDir
	CacheDir string
	// Ignore are doublestar globs of content and static files to skip
	Ignore []string

	PrettyHTML  bool
	Compress    bool
	Concurrency int

	// DryRun renders and checks without writing anything
	DryRun bool

	// OnA11yIssues is how accessibility issues in rendered pages are
	// reported; empty means report.Log
	OnA11yIssues report.Severity

	Logger  logging.Logger
	Metrics *metrics.Metrics
}

// Result summarizes a build.
type Result struct {
	BuildID string
	// Routes are the indexable routes, sorted
	Routes []string
	// Pages is the number of rendered HTML pages
	Pages int

	Written  int
	Skipped  int
	Removed  int
	Warnings int

	BrokenLinks   []linkcheck.Broken
	BrokenAnchors []linkcheck.Broken
	A11yIssues    []a11y.Issue

	Duration time.Duration
}

// Builder builds a site. Builds are serialized; a Builder may be shared by the
// dev server's watcher and HTTP handlers.
type Builder struct {
	opts    Options
	fsys    fs.FS
	logger  logging.Logger
	metrics *metrics.Metrics

	mu sync.Mutex
}

// New validates the options and returns a Builder.
func New(opts Options) (*Builder, error) {
	if err := opts.Site.Validate(); err != nil {
		return nil, fmt.Errorf("site config: %w", err)
	}
	if opts.SiteDir == "" {
		return nil, errors.New("site dir is required")
	}
	if opts.OutDir == "" && !opts.DryRun {
		return nil, errors.New("output dir is required")
	}
	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	if opts.OnA11yIssues == "" {
		opts.OnA11yIssues = report.Log
	}
	if !opts.OnA11yIssues.Valid() {
		return nil, fmt.Errorf("unknown accessibility severity %q", opts.OnA11yIssues)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}
	if opts.CacheDir == "" {
		opts.CacheDir = filepath.Join(filepath.Dir(opts.OutDir), ".docsite")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}

	return &Builder{
		opts:    opts,
		fsys:    os.DirFS(opts.SiteDir),
		logger:  logger.With(logging.String("component", "build")),
		metrics: opts.Metrics,
	}, nil
}

// Site returns the site configuration being built.
func (b *Builder) Site() website.SiteConfig {
	return b.opts.Site
}

// OutDir returns the output directory.
func (b *Builder) OutDir() string {
	return b.opts.OutDir
}

// Build renders the site and writes the changed files.
func (b *Builder) Build(ctx context.Context) (res Result, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	res.BuildID = uuid.NewString()
	logger := b.logger.With(logging.String("build_id", res.BuildID))
	reporter := report.NewReporter(logger)

	defer func() {
		res.Duration = time.Since(start)
		res.Warnings = reporter.Warnings()
		b.metrics.ObserveBuild(metrics.BuildStats{
			Pages:       res.Pages,
			Written:     res.Written,
			Skipped:     res.Skipped,
			Removed:     res.Removed,
			BrokenLinks: len(res.BrokenLinks) + len(res.BrokenAnchors),
			Warnings:    res.Warnings,
			Duration:    res.Duration,
		}, err)
		if err != nil {
			logger.Error("build failed", logging.Err(err), logging.Duration("duration", res.Duration))
			return
		}
		logger.Info("build finished",
			logging.Int("pages", res.Pages),
			logging.Int("written", res.Written),
			logging.Int("skipped", res.Skipped),
			logging.Int("removed", res.Removed),
			logging.Int("warnings", res.Warnings),
			logging.Duration("duration", res.Duration),
		)
	}()

	out, err := b.render(res.BuildID, reporter)
	if err != nil {
		return res, err
	}
	res.Pages = len(out.pages)
	res.Routes = out.sitemap

	if err := ctx.Err(); err != nil {
		return res, err
	}

	checkOpts := linkcheck.Options{
		Static:      out.isFile,
		Concurrency: b.opts.Concurrency,
	}
	var auditor *a11y.Auditor
	if b.opts.OnA11yIssues != report.Ignore {
		auditor = a11y.NewAuditor()
		checkOpts.Inspect = auditor.Inspect
	}

	checked, err := linkcheck.Check(out.pages, checkOpts)
	if err != nil {
		return res, fmt.Errorf("check links: %w", err)
	}
	res.BrokenLinks = checked.BrokenLinks
	res.BrokenAnchors = checked.BrokenAnchors
	logger.Debug("links checked", logging.Int("links", checked.Links))

	linkErr := reportBroken(reporter, b.opts.Site.OnBrokenLinks, "link", checked.BrokenLinks)
	anchorErr := reportBroken(reporter, b.opts.Site.OnBrokenAnchors, "anchor", checked.BrokenAnchors)
	var a11yErr error
	if auditor != nil {
		res.A11yIssues = auditor.Issues()
		a11yErr = reportA11y(reporter, b.opts.OnA11yIssues, res.A11yIssues)
	}
	if err := errors.Join(linkErr, anchorErr, a11yErr); err != nil {
		return res, err
	}

	if b.opts.DryRun {
		return res, nil
	}

	if b.opts.PrettyHTML {
		prettify(out.files)
	}

	stats, err := b.write(ctx, res.BuildID, out.files)
	res.Written, res.Skipped, res.Removed = stats.written, stats.skipped, stats.removed
	if err != nil {
		return res, err
	}
	return res, nil
}

// reportBroken reports each broken link at sev and wraps the thrown ones in
// ErrBrokenLinks.
func reportBroken(reporter *report.Reporter, sev report.Severity, kind string, broken []linkcheck.Broken) error {
	var errs []error
	for _, bl := range broken {
		msg := fmt.Sprintf("broken %s %s", kind, bl.Href)
		if err := reporter.Report(sev, msg, logging.Route(bl.Page)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d broken %ss: %w", ErrBrokenLinks, len(errs), kind, errors.Join(errs...))
}

func reportA11y(reporter *report.Reporter, sev report.Severity, issues []a11y.Issue) error {
	var errs []error
	for _, is := range issues {
		fields := []logging.Field{logging.Route(is.Page), logging.String("rule", string(is.Rule))}
		if is.Element != "" {
			fields = append(fields, logging.String("element", is.Element))
		}
		if err := reporter.Report(sev, is.Message, fields...); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d found: %w", ErrAccessibility, len(errs), errors.Join(errs...))
}

func ignored(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
