// Package pages composes complete HTML documents for every route of the
// site from the loaded content and the section components.
package pages

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/content"
	"github.com/jigarkkarangiya/docs/internal/website"
	"github.com/jigarkkarangiya/docs/internal/website/components"
	"github.com/jigarkkarangiya/docs/pkg/i18n"
)

// Context carries everything a page needs besides its own content. One
// Context is built per locale.
type Context struct {
	// Site is the site configuration
	Site website.SiteConfig
	// Locale is the locale pages are rendered for
	Locale string
	// BaseURL is the locale base URL (Site.BaseURL for the default locale)
	BaseURL string
	// Translator resolves UI strings; nil uses the English defaults
	Translator *i18n.Translator
	// Docs is the documentation tree of the locale
	Docs *content.Docs
	// Blog is the blog of the locale; nil hides the blog
	Blog *content.Blog
	// BuildID is written into every page head
	BuildID string
	// CSS is the page stylesheet; empty uses the default styles
	CSS string
}

// NewContext creates a Context for a locale.
func NewContext(site website.SiteConfig, locale string, t *i18n.Translator) *Context {
	if locale == "" {
		locale = site.I18n.DefaultLocale
	}
	return &Context{
		Site:       site,
		Locale:     locale,
		BaseURL:    site.LocaleBaseURL(locale),
		Translator: t,
	}
}

var englishOnly = i18n.NewTranslator("en")

func (c *Context) translator() *i18n.Translator {
	if c.Translator == nil {
		return englishOnly
	}
	return c.Translator
}

func (c *Context) t(id string) string {
	return c.translator().T(c.Locale, id, nil)
}

func (c *Context) plural(id string, count int, vars map[string]any) string {
	return c.translator().Plural(c.Locale, id, count, vars)
}

// DocsBase is the URL the docs are served under.
func (c *Context) DocsBase() string {
	return strings.TrimSuffix(website.JoinURL(c.BaseURL, c.Site.Docs.RouteBasePath), "/")
}

// BlogBase is the URL the blog list is served under.
func (c *Context) BlogBase() string {
	return strings.TrimSuffix(website.JoinURL(c.BaseURL, c.Site.Blog.RouteBasePath), "/")
}

// FirstDocURL is the permalink of the first doc, or the docs base when there
// are no docs.
func (c *Context) FirstDocURL() string {
	if d := c.Docs.First(); d != nil {
		return d.Permalink
	}
	return c.DocsBase()
}

// FeedURL returns the URL of a blog feed ("rss" or "atom").
func (c *Context) FeedURL(feedType string) string {
	return c.BlogBase() + "/" + feedType + ".xml"
}

func (c *Context) pageConfig(title, description, route string) website.PageConfig {
	full := c.Site.Title
	if title != "" && title != c.Site.Title {
		full = title + " | " + c.Site.Title
	}
	if description == "" {
		description = c.Site.Tagline
	}

	cfg := website.PageConfig{
		Title:       full,
		Description: description,
		URL:         c.Site.AbsoluteURL(route),
		OGType:      "website",
		Language:    c.Locale,
		BuildID:     c.BuildID,
		CSS:         c.CSS,
	}
	if c.Site.Image != "" {
		cfg.OGImage = c.Site.AbsoluteURL(website.JoinURL(c.Site.BaseURL, c.Site.Image))
	}
	if c.Site.Favicon != "" {
		cfg.Favicon = website.JoinURL(c.Site.BaseURL, c.Site.Favicon)
	}

	if c.Blog != nil {
		for _, ft := range c.Site.Blog.FeedTypes {
			switch ft {
			case "rss":
				cfg.Feeds = append(cfg.Feeds, website.FeedLink{
					Type: "application/rss+xml", Title: c.Site.Title + " RSS Feed", Href: c.FeedURL(ft),
				})
			case "atom":
				cfg.Feeds = append(cfg.Feeds, website.FeedLink{
					Type: "application/atom+xml", Title: c.Site.Title + " Atom Feed", Href: c.FeedURL(ft),
				})
			}
		}
	}

	return cfg
}

// layout wraps page content with the navbar and footer. section is the URL
// the active navbar item is matched against.
func (c *Context) layout(cfg website.PageConfig, section, inner string) string {
	var body strings.Builder

	navbar := components.NavbarFromConfig(c.Site.Navbar, c.BaseURL, section, func(string) string {
		return c.FirstDocURL()
	})
	navbar.SkipLabel = c.t("theme.common.skipToMainContent")
	body.WriteString(components.RenderNavbar(navbar))

	body.WriteString(`<div id="__main" class="main-wrapper">`)
	body.WriteString("\n")
	body.WriteString(inner)
	body.WriteString(`</div>`)
	body.WriteString("\n")

	body.WriteString(components.RenderFooter(components.FooterOptions{
		Config:  c.Site.Footer,
		BaseURL: c.BaseURL,
	}))

	return website.RenderDocument(cfg, body.String())
}

func navLink(ref *content.NavRef) *website.NavLink {
	if ref == nil {
		return nil
	}
	return &website.NavLink{Label: ref.Title, URL: ref.URL}
}

func tocEntries(headings []content.Heading) []components.TOCEntry {
	entries := make([]components.TOCEntry, 0, len(headings))
	for _, h := range headings {
		entries = append(entries, components.TOCEntry{Level: h.Level, ID: h.ID, Text: h.Text})
	}
	return entries
}

func titleHeading(title string) string {
	return fmt.Sprintf("<header><h1>%s</h1></header>\n", html.EscapeString(title))
}
