package content

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jigarkkarangiya/docs/internal/report"
	"github.com/jigarkkarangiya/docs/pkg/logging"
)

func docsFixture() fstest.MapFS {
	return fstest.MapFS{
		"docs/intro.md":                  {Data: []byte("---\nsidebar_position: 1\n---\n# Introduction\n\nRead the [setup guide](./02-guides/01-setup.md).\n")},
		"docs/02-guides/_category_.json": {Data: []byte(`{"label": "Guides", "position": 2}`)},
		"docs/02-guides/01-setup.md":     {Data: []byte("---\ntitle: Setup\n---\nInstall with composer.\n\n## Requirements\n")},
		"docs/02-guides/02-configure.md": {Data: []byte("---\nsidebar_label: Configure\n---\n# Configuration\n\nBack to [intro](../intro.md).\n")},
		"docs/02-guides/draft.md":        {Data: []byte("---\ndraft: true\n---\nNot ready.\n")},
		"docs/_partials/shared.md":       {Data: []byte("Shared partial.\n")},
		"docs/faq.md":                    {Data: []byte("Questions.\n")},
	}
}

func loadFixture(t *testing.T, fsys fstest.MapFS, sev report.Severity) *Docs {
	t.Helper()
	docs, err := LoadDocs(fsys, DocsOptions{
		Dir:                   "docs",
		RouteBase:             "/docs/docs",
		EditURL:               "https://github.com/jigarkkarangiya/docs/tree/main/",
		Markdown:              NewMarkdown("github"),
		OnBrokenMarkdownLinks: sev,
	})
	require.NoError(t, err)
	return docs
}

func TestLoadDocs_IDsAndPermalinks(t *testing.T) {
	docs := loadFixture(t, docsFixture(), report.Warn)

	setup, ok := docs.Get("guides/setup")
	require.True(t, ok, "number prefixes are stripped from ids")
	assert.Equal(t, "/docs/docs/guides/setup", setup.Permalink)
	assert.Equal(t, "Setup", setup.Title)
	assert.Equal(t, "https://github.com/jigarkkarangiya/docs/tree/main/docs/02-guides/01-setup.md", setup.EditURL)
	require.Len(t, setup.TOC, 1)

	cfg, ok := docs.Get("guides/configure")
	require.True(t, ok)
	assert.Equal(t, "Configuration", cfg.Title, "title falls back to the first h1")
	assert.Equal(t, "Configure", cfg.SidebarLabel)
	assert.True(t, cfg.HasH1)
	assert.Contains(t, cfg.HTML, `href="/docs/docs/intro"`)

	faq, ok := docs.Get("faq")
	require.True(t, ok)
	assert.Equal(t, "Faq", faq.Title, "title falls back to the file name")

	_, ok = docs.Get("guides/draft")
	assert.False(t, ok, "drafts are skipped")
	_, ok = docs.Get("_partials/shared")
	assert.False(t, ok, "underscore directories are skipped")

	intro, _ := docs.Get("intro")
	assert.Contains(t, intro.HTML, `href="/docs/docs/guides/setup"`)
}

func TestLoadDocs_SidebarOrder(t *testing.T) {
	docs := loadFixture(t, docsFixture(), report.Warn)

	require.Len(t, docs.Sidebar, 3)
	assert.Equal(t, "Introduction", docs.Sidebar[0].Label)
	assert.Equal(t, "category", docs.Sidebar[1].Type)
	assert.Equal(t, "Guides", docs.Sidebar[1].Label)
	assert.Equal(t, "Faq", docs.Sidebar[2].Label, "items without a position follow")

	guides := docs.Sidebar[1].Items
	require.Len(t, guides, 2)
	assert.Equal(t, "Setup", guides[0].Label)
	assert.Equal(t, "Configure", guides[1].Label)

	var order []string
	for _, d := range docs.Docs {
		order = append(order, d.ID)
	}
	assert.Equal(t, []string{"intro", "guides/setup", "guides/configure", "faq"}, order)
	assert.Equal(t, "intro", docs.First().ID)
}

func TestLoadDocs_PrevNextAndBreadcrumbs(t *testing.T) {
	docs := loadFixture(t, docsFixture(), report.Warn)

	setup, _ := docs.Get("guides/setup")
	require.NotNil(t, setup.Prev)
	require.NotNil(t, setup.Next)
	assert.Equal(t, "/docs/docs/intro", setup.Prev.URL)
	assert.Equal(t, "Configure", setup.Next.Title)
	assert.Equal(t, []NavRef{{Title: "Guides"}}, setup.Breadcrumbs)

	assert.Nil(t, docs.First().Prev)
	assert.True(t, docs.ActivePath("guides/setup")["Guides"])
}

func TestLoadDocs_BrokenMarkdownLinks(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/intro.md": {Data: []byte("See [gone](./gone.md).\n")},
	}

	reporter := report.NewReporter(logging.NopLogger{})
	_, err := LoadDocs(fsys, DocsOptions{
		Dir:                   "docs",
		RouteBase:             "/docs/docs",
		Markdown:              NewMarkdown("github"),
		Reporter:              reporter,
		OnBrokenMarkdownLinks: report.Warn,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, reporter.Warnings())

	_, err = LoadDocs(fsys, DocsOptions{
		Dir:                   "docs",
		RouteBase:             "/docs/docs",
		Markdown:              NewMarkdown("github"),
		OnBrokenMarkdownLinks: report.Throw,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrThrown)
}

func TestLoadDocs_IndexDocs(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/index.md":          {Data: []byte("# Home\n")},
		"docs/modules/README.md": {Data: []byte("# Modules\n")},
		"docs/modules/seo.md":    {Data: []byte("# SEO\n")},
	}
	docs := loadFixture(t, fsys, report.Warn)

	home, ok := docs.Get("index")
	require.True(t, ok)
	assert.Equal(t, "/docs/docs", home.Permalink)

	modules, ok := docs.Get("modules/README")
	require.True(t, ok)
	assert.Equal(t, "/docs/docs/modules", modules.Permalink)

	var cat SidebarItem
	for _, item := range docs.Sidebar {
		if item.Type == "category" {
			cat = item
		}
	}
	assert.Equal(t, "/docs/docs/modules", cat.URL, "index doc links the category")
	require.Len(t, cat.Items, 1)
	assert.Equal(t, "SEO", cat.Items[0].Label)
}

func TestLoadDocs_Ignore(t *testing.T) {
	fsys := docsFixture()
	docs, err := LoadDocs(fsys, DocsOptions{
		Dir:       "docs",
		RouteBase: "/docs/docs",
		Markdown:  NewMarkdown("github"),
		Ignore:    []string{"**/faq.md"},
	})
	require.NoError(t, err)

	_, ok := docs.Get("faq")
	assert.False(t, ok)
}
