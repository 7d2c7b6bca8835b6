package build

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/content"
	"github.com/jigarkkarangiya/docs/internal/feed"
	"github.com/jigarkkarangiya/docs/internal/linkcheck"
	"github.com/jigarkkarangiya/docs/internal/report"
	"github.com/jigarkkarangiya/docs/internal/website"
	"github.com/jigarkkarangiya/docs/internal/website/pages"
	"github.com/jigarkkarangiya/docs/pkg/i18n"
	"github.com/jigarkkarangiya/docs/pkg/logging"
)

// Directories under the site dir.
const (
	staticDir = "static"
	i18nDir   = "i18n"
)

// fileExts are route suffixes written as-is instead of as <route>/index.html.
var fileExts = map[string]bool{".html": true, ".xml": true, ".xsl": true, ".txt": true}

// output is everything a build produces, in memory.
type output struct {
	base string
	// pages maps routes to HTML for the link checker
	pages map[string][]byte
	// files maps output paths to content
	files map[string][]byte
	// sitemap lists the indexable routes
	sitemap []string
	// known holds the normalized URL of every non-page file
	known map[string]bool
}

func newOutput(base string) *output {
	return &output{
		base:  base,
		pages: make(map[string][]byte),
		files: make(map[string][]byte),
		known: make(map[string]bool),
	}
}

// outputPath maps a route under base to a path relative to the output dir.
func outputPath(base, route string) string {
	rel := strings.TrimPrefix(route, base)
	if route == strings.TrimSuffix(base, "/") {
		rel = ""
	}
	rel = strings.Trim(rel, "/")
	if fileExts[path.Ext(rel)] {
		return rel
	}
	return path.Join(rel, "index.html")
}

func (o *output) addPage(route, html string, indexed bool) {
	data := []byte(html)
	o.pages[route] = data
	o.files[outputPath(o.base, route)] = data
	if indexed {
		o.sitemap = append(o.sitemap, route)
	}
}

func (o *output) addFile(route string, data []byte) {
	o.files[outputPath(o.base, route)] = data
	o.known[linkcheck.Normalize(route)] = true
}

func (o *output) isFile(urlPath string) bool {
	return o.known[linkcheck.Normalize(urlPath)]
}

// render loads the content and renders every route of every locale.
func (b *Builder) render(buildID string, reporter *report.Reporter) (*output, error) {
	site := b.opts.Site
	out := newOutput(site.BaseURL)

	tr := i18n.NewTranslator(site.I18n.DefaultLocale)
	if err := tr.LoadDir(b.fsys, i18nDir, site.I18n.Locales); err != nil {
		return nil, err
	}

	md := content.NewMarkdown(site.Prism.Theme)
	highlight, err := website.HighlightCSS(site.Prism.Theme, site.Prism.DarkTheme)
	if err != nil {
		return nil, err
	}
	css := website.RenderStyles(website.WithHighlightCSS(highlight))

	for _, locale := range site.I18n.Locales {
		ctx := pages.NewContext(site, locale, tr)
		ctx.BuildID = buildID
		ctx.CSS = css

		// Only the default locale reports content problems; the other
		// locales render the same sources.
		var rep *report.Reporter
		if locale == site.I18n.DefaultLocale {
			rep = reporter
		}

		docs, err := content.LoadDocs(b.fsys, content.DocsOptions{
			Dir:                   site.Docs.Path,
			RouteBase:             ctx.DocsBase(),
			EditURL:               site.Docs.EditURL,
			Ignore:                b.opts.Ignore,
			Markdown:              md,
			Reporter:              rep,
			OnBrokenMarkdownLinks: site.OnBrokenMarkdownLinks,
		})
		if err != nil {
			return nil, fmt.Errorf("load docs (%s): %w", locale, err)
		}

		blog, err := content.LoadBlog(b.fsys, content.BlogOptions{
			Dir:                    site.Blog.Path,
			RouteBase:              ctx.BlogBase(),
			EditURL:                site.Blog.EditURL,
			PostsPerPage:           site.Blog.PostsPerPage,
			Ignore:                 b.opts.Ignore,
			Markdown:               md,
			Reporter:               rep,
			OnInlineTags:           site.Blog.OnInlineTags,
			OnInlineAuthors:        site.Blog.OnInlineAuthors,
			OnUntruncatedBlogPosts: site.Blog.OnUntruncatedBlogPosts,
			OnBrokenMarkdownLinks:  site.OnBrokenMarkdownLinks,
		})
		if err != nil {
			return nil, fmt.Errorf("load blog (%s): %w", locale, err)
		}

		ctx.Docs = docs
		ctx.Blog = blog

		if err := renderLocale(out, ctx); err != nil {
			return nil, err
		}
	}

	sitemap, err := feed.Sitemap(site, out.sitemap)
	if err != nil {
		return nil, err
	}
	out.addFile(site.BaseURL+"sitemap.xml", sitemap)

	if err := b.collectStatic(out); err != nil {
		return nil, err
	}

	sort.Strings(out.sitemap)
	return out, nil
}

func renderLocale(out *output, ctx *pages.Context) error {
	out.addPage(ctx.BaseURL, pages.RenderHome(ctx), true)
	out.addPage(ctx.BaseURL+"404.html", pages.RenderNotFound(ctx), false)

	for _, doc := range ctx.Docs.Docs {
		out.addPage(doc.Permalink, pages.RenderDoc(ctx, doc), true)
	}

	blog := ctx.Blog
	for _, page := range blog.Pages {
		out.addPage(page.Permalink, pages.RenderBlogList(ctx, page), true)
	}
	for _, post := range blog.Posts {
		out.addPage(post.Permalink, pages.RenderBlogPost(ctx, post), true)
	}
	out.addPage(blog.TagsURL(), pages.RenderTagsIndex(ctx), true)
	for _, group := range blog.Tags {
		out.addPage(group.Tag.Permalink, pages.RenderTagPage(ctx, group), true)
	}
	out.addPage(blog.ArchiveURL(), pages.RenderArchive(ctx), true)

	return renderFeeds(out, ctx)
}

func renderFeeds(out *output, ctx *pages.Context) error {
	cfg := ctx.Site.Blog
	opts := feed.Options{
		Site:     ctx.Site,
		BlogURL:  ctx.BlogBase(),
		Language: ctx.Locale,
		XSLT:     cfg.FeedXSLT,
	}

	for _, ft := range cfg.FeedTypes {
		var (
			data []byte
			err  error
		)
		switch ft {
		case "rss":
			data, err = feed.RSS(opts, ctx.Blog.Posts)
		case "atom":
			data, err = feed.Atom(opts, ctx.Blog.Posts)
		default:
			return fmt.Errorf("unknown feed type %q", ft)
		}
		if err != nil {
			return fmt.Errorf("%s feed (%s): %w", ft, ctx.Locale, err)
		}
		out.addFile(ctx.FeedURL(ft), data)

		if cfg.FeedXSLT {
			xsl, err := feed.Stylesheet(ft + ".xsl")
			if err != nil {
				return err
			}
			out.addFile(ctx.BlogBase()+"/"+ft+".xsl", xsl)
		}
	}
	return nil
}

// collectStatic adds the files under static/ to the output. Generated files
// win over static files with the same path.
func (b *Builder) collectStatic(out *output) error {
	err := fs.WalkDir(b.fsys, staticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, staticDir+"/")
		if ignored(b.opts.Ignore, rel) {
			return nil
		}
		if _, exists := out.files[rel]; exists {
			b.logger.Warn("static file shadowed by generated output", logging.Path(rel))
			return nil
		}

		data, err := fs.ReadFile(b.fsys, p)
		if err != nil {
			return fmt.Errorf("read static %s: %w", rel, err)
		}
		out.files[rel] = data
		out.known[linkcheck.Normalize(out.base+rel)] = true
		return nil
	})
	if err != nil && !isNotExist(err) {
		return err
	}
	return nil
}
