package build

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jigarkkarangiya/docs/internal/report"
	"github.com/jigarkkarangiya/docs/internal/website"
	"github.com/jigarkkarangiya/docs/pkg/a11y"
	"github.com/jigarkkarangiya/docs/pkg/metrics"
)

var fixture = map[string]string{
	"docs/intro.md":                  "---\nsidebar_position: 1\n---\n# Introduction\n\nStart with [setup](02-guides/01-setup.md#requirements).\n",
	"docs/02-guides/_category_.json": `{"label": "Guides", "position": 2}`,
	"docs/02-guides/01-setup.md":     "---\ntitle: Setup\n---\nInstall with composer.\n\n## Requirements\n",
	"blog/authors.yml":               "jigar:\n  name: Jigar Karangiya\n  url: https://jigarkarangiya.com/\n",
	"blog/2024-01-10-welcome.md":     "---\ntitle: Welcome\nauthors: [jigar]\ntags: [magento]\n---\nHello.\n\n<!-- truncate -->\n\nMore.\n",
	"static/img/logo.svg":            `<svg xmlns="http://www.w3.org/2000/svg"></svg>`,
	"static/drafts/notes.txt":        "ignored",
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, data := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	}
}

type env struct {
	siteDir, outDir, cacheDir string
}

func newEnv(t *testing.T) env {
	t.Helper()
	root := t.TempDir()
	e := env{
		siteDir:  filepath.Join(root, "site"),
		outDir:   filepath.Join(root, "build"),
		cacheDir: filepath.Join(root, ".docsite"),
	}
	writeTree(t, e.siteDir, fixture)
	return e
}

func (e env) options() Options {
	return Options{
		Site:     website.DefaultSiteConfig(),
		SiteDir:  e.siteDir,
		OutDir:   e.outDir,
		CacheDir: e.cacheDir,
		Ignore:   []string{"drafts/**"},
	}
}

func build(t *testing.T, opts Options) (Result, error) {
	t.Helper()
	b, err := New(opts)
	require.NoError(t, err)
	return b.Build(context.Background())
}

func TestBuild_WritesSite(t *testing.T) {
	e := newEnv(t)

	res, err := build(t, e.options())
	require.NoError(t, err)

	for _, rel := range []string{
		"index.html",
		"404.html",
		"docs/intro/index.html",
		"docs/guides/setup/index.html",
		"blog/index.html",
		"blog/2024/01/10/welcome/index.html",
		"blog/tags/index.html",
		"blog/tags/magento/index.html",
		"blog/archive/index.html",
		"blog/rss.xml",
		"blog/atom.xml",
		"blog/rss.xsl",
		"blog/atom.xsl",
		"sitemap.xml",
		"img/logo.svg",
	} {
		assert.FileExists(t, filepath.Join(e.outDir, rel))
	}
	assert.NoFileExists(t, filepath.Join(e.outDir, "drafts", "notes.txt"))

	assert.NotEmpty(t, res.BuildID)
	assert.Empty(t, res.BrokenLinks)
	assert.Empty(t, res.BrokenAnchors)
	assert.Equal(t, 9, res.Pages)
	assert.Contains(t, res.Routes, "/docs/docs/intro")
	assert.NotContains(t, res.Routes, "/docs/404.html")

	home, err := os.ReadFile(filepath.Join(e.outDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), res.BuildID)

	sitemap, err := os.ReadFile(filepath.Join(e.outDir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "https://jigarkkarangiya.github.io/docs/docs/guides/setup")
	assert.NotContains(t, string(sitemap), "404.html")
}

func TestBuild_Incremental(t *testing.T) {
	e := newEnv(t)

	first, err := build(t, e.options())
	require.NoError(t, err)
	require.Positive(t, first.Written)

	second, err := build(t, e.options())
	require.NoError(t, err)
	assert.Zero(t, second.Written, "only the stamped build id differs")
	assert.Equal(t, first.Written, second.Skipped)
	assert.Zero(t, second.Removed)

	writeTree(t, e.siteDir, map[string]string{
		"docs/02-guides/01-setup.md": "---\ntitle: Setup\n---\nInstall with composer 2.\n\n## Requirements\n",
	})
	changed, err := build(t, e.options())
	require.NoError(t, err)
	assert.Positive(t, changed.Written)
	assert.Less(t, changed.Written, first.Written)

	require.NoError(t, os.Remove(filepath.Join(e.siteDir, "static", "img", "logo.svg")))
	third, err := build(t, e.options())
	require.NoError(t, err)
	assert.Equal(t, 1, third.Removed)
	assert.NoFileExists(t, filepath.Join(e.outDir, "img", "logo.svg"))
}

func TestBuild_RewritesDeletedOutput(t *testing.T) {
	e := newEnv(t)

	_, err := build(t, e.options())
	require.NoError(t, err)

	logo := filepath.Join(e.outDir, "img", "logo.svg")
	require.NoError(t, os.Remove(logo))

	_, err = build(t, e.options())
	require.NoError(t, err)
	assert.FileExists(t, logo)
}

func TestBuild_BrokenLinkThrows(t *testing.T) {
	e := newEnv(t)
	writeTree(t, e.siteDir, map[string]string{
		"docs/broken.md": "# Broken\n\nSee [missing](/docs/docs/missing).\n",
	})

	res, err := build(t, e.options())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBrokenLinks))
	assert.True(t, errors.Is(err, report.ErrThrown))
	require.Len(t, res.BrokenLinks, 1)
	assert.Equal(t, "/docs/docs/broken", res.BrokenLinks[0].Page)
	assert.NoDirExists(t, e.outDir, "nothing is written when the build fails")
}

func TestBuild_BrokenLinkWarns(t *testing.T) {
	e := newEnv(t)
	writeTree(t, e.siteDir, map[string]string{
		"docs/broken.md": "# Broken\n\nSee [missing](/docs/docs/missing) and [nowhere](#nowhere).\n",
	})

	opts := e.options()
	opts.Site.OnBrokenLinks = report.Warn
	res, err := build(t, opts)
	require.NoError(t, err)
	assert.Len(t, res.BrokenLinks, 1)
	assert.Len(t, res.BrokenAnchors, 1)
	assert.GreaterOrEqual(t, res.Warnings, 2)
}

func TestBuild_Accessibility(t *testing.T) {
	e := newEnv(t)
	writeTree(t, e.siteDir, map[string]string{
		"docs/deep.md": "# Deep\n\n#### Too deep\n",
	})

	opts := e.options()
	opts.OnA11yIssues = report.Throw
	opts.DryRun = true
	res, err := build(t, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessibility))

	var found bool
	for _, is := range res.A11yIssues {
		if is.Page == "/docs/docs/deep" && is.Rule == a11y.RuleHeadingOrder {
			found = true
		}
	}
	assert.True(t, found, "heading-order issue on the deep page: %v", res.A11yIssues)

	opts.OnA11yIssues = report.Ignore
	res, err = build(t, opts)
	require.NoError(t, err)
	assert.Empty(t, res.A11yIssues)
}

func TestBuild_DryRun(t *testing.T) {
	e := newEnv(t)
	opts := e.options()
	opts.DryRun = true

	res, err := build(t, opts)
	require.NoError(t, err)
	assert.Positive(t, res.Pages)
	assert.Zero(t, res.Written)
	assert.NoDirExists(t, e.outDir)
	assert.NoDirExists(t, e.cacheDir)
}

func TestBuild_Compress(t *testing.T) {
	e := newEnv(t)
	opts := e.options()
	opts.Compress = true

	_, err := build(t, opts)
	require.NoError(t, err)

	plain, err := os.ReadFile(filepath.Join(e.outDir, "index.html"))
	require.NoError(t, err)
	compressed, err := os.ReadFile(filepath.Join(e.outDir, "index.html.br"))
	require.NoError(t, err)

	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(compressed)))
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)

	// Turning compression off drops the .br files.
	opts.Compress = false
	_, err = build(t, opts)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(e.outDir, "index.html.br"))
}

func TestBuild_PrettyHTML(t *testing.T) {
	e := newEnv(t)
	opts := e.options()
	opts.PrettyHTML = true

	_, err := build(t, opts)
	require.NoError(t, err)

	home, err := os.ReadFile(filepath.Join(e.outDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), "\n  ")
}

func TestBuild_Metrics(t *testing.T) {
	e := newEnv(t)
	opts := e.options()
	opts.Metrics = metrics.New("docsite_test")

	_, err := build(t, opts)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(opts.Metrics.BuildsTotal.WithLabelValues(metrics.StatusSuccess)))
	assert.Equal(t, 9.0, testutil.ToFloat64(opts.Metrics.PagesRendered))
}

func TestNew_Validates(t *testing.T) {
	e := newEnv(t)

	opts := e.options()
	opts.Site.BaseURL = "docs"
	_, err := New(opts)
	assert.Error(t, err)

	opts = e.options()
	opts.Ignore = []string{"[broken"}
	_, err = New(opts)
	assert.Error(t, err)

	opts = e.options()
	opts.OutDir = ""
	_, err = New(opts)
	assert.Error(t, err)

	opts = e.options()
	opts.OnA11yIssues = "explode"
	_, err = New(opts)
	assert.Error(t, err)
}

func TestContentSum(t *testing.T) {
	a := []byte(`<meta name="docsite:build" content="id-1"><p>same</p>`)
	b := []byte(`<meta name="docsite:build" content="id-2"><p>same</p>`)
	c := []byte(`<meta name="docsite:build" content="id-2"><p>other</p>`)

	assert.Equal(t, contentSum(a, "id-1"), contentSum(b, "id-2"))
	assert.NotEqual(t, contentSum(b, "id-2"), contentSum(c, "id-2"))
	assert.NotEqual(t, contentSum(a, ""), contentSum(b, ""))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/docs/", "index.html"},
		{"/docs", "index.html"},
		{"/docs/docs/intro", "docs/intro/index.html"},
		{"/docs/404.html", "404.html"},
		{"/docs/blog/rss.xml", "blog/rss.xml"},
		{"/docs/docs/v1.2", "docs/v1.2/index.html"},
		{"/docs/fr/", "fr/index.html"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outputPath("/docs/", tt.route), tt.route)
	}
}
