// Package feed builds the blog RSS and Atom feeds and the sitemap.
package feed

import (
	"embed"
	"fmt"
	"sort"
	"time"

	"github.com/beevik/etree"

	"github.com/jigarkkarangiya/docs/internal/content"
	"github.com/jigarkkarangiya/docs/internal/website"
)

//go:embed xsl/*.xsl
var stylesheets embed.FS

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	atomNS    = "http://www.w3.org/2005/Atom"
	contentNS = "http://purl.org/rss/1.0/modules/content/"
)

// Options describes the feed channel.
type Options struct {
	Site website.SiteConfig
	// BlogURL is the path of the blog list, used as the channel link
	BlogURL string
	// Language is the channel language (e.g. "en")
	Language string
	// XSLT adds an xml-stylesheet instruction pointing at rss.xsl or atom.xsl
	XSLT bool
	// Limit caps the number of entries; zero means all posts
	Limit int
}

func (o Options) title() string {
	if o.Site.Blog.Title != "" {
		return o.Site.Title + " " + o.Site.Blog.Title
	}
	return o.Site.Title
}

func (o Options) description() string {
	if o.Site.Blog.Description != "" {
		return o.Site.Blog.Description
	}
	return o.Site.Tagline
}

func (o Options) posts(posts []*content.Post) []*content.Post {
	if o.Limit > 0 && len(posts) > o.Limit {
		return posts[:o.Limit]
	}
	return posts
}

func newDocument(stylesheet string, xslt bool) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	if xslt {
		doc.CreateProcInst("xml-stylesheet", fmt.Sprintf(`type="text/xsl" href="%s"`, stylesheet))
	}
	return doc
}

func render(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("write xml: %w", err)
	}
	return out, nil
}

// RSS builds an RSS 2.0 feed of posts, which are expected newest first.
func RSS(opts Options, posts []*content.Post) ([]byte, error) {
	doc := newDocument("rss.xsl", opts.XSLT)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:content", contentNS)

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(opts.title())
	channel.CreateElement("link").SetText(opts.Site.AbsoluteURL(opts.BlogURL))
	channel.CreateElement("description").SetText(opts.description())
	if opts.Language != "" {
		channel.CreateElement("language").SetText(opts.Language)
	}
	channel.CreateElement("generator").SetText("docsite")

	posts = opts.posts(posts)
	if len(posts) > 0 {
		channel.CreateElement("lastBuildDate").SetText(posts[0].Date.UTC().Format(time.RFC1123Z))
	}

	for _, post := range posts {
		link := opts.Site.AbsoluteURL(post.Permalink)

		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(post.Title)
		item.CreateElement("link").SetText(link)
		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "true")
		guid.SetText(link)
		item.CreateElement("pubDate").SetText(post.Date.UTC().Format(time.RFC1123Z))
		if post.Description != "" {
			item.CreateElement("description").SetText(post.Description)
		}
		item.CreateElement("content:encoded").CreateCData(post.HTML)
		for _, tag := range post.Tags {
			item.CreateElement("category").SetText(tag.Label)
		}
	}

	return render(doc)
}

// Atom builds an Atom 1.0 feed of posts, which are expected newest first.
func Atom(opts Options, posts []*content.Post) ([]byte, error) {
	doc := newDocument("atom.xsl", opts.XSLT)

	blogURL := opts.Site.AbsoluteURL(opts.BlogURL)

	feed := doc.CreateElement("feed")
	feed.CreateAttr("xmlns", atomNS)
	feed.CreateElement("id").SetText(blogURL)
	feed.CreateElement("title").SetText(opts.title())
	feed.CreateElement("subtitle").SetText(opts.description())
	alt := feed.CreateElement("link")
	alt.CreateAttr("rel", "alternate")
	alt.CreateAttr("href", blogURL)
	self := feed.CreateElement("link")
	self.CreateAttr("rel", "self")
	self.CreateAttr("href", blogURL+"/atom.xml")
	feed.CreateElement("generator").SetText("docsite")

	posts = opts.posts(posts)
	updated := time.Unix(0, 0).UTC()
	if len(posts) > 0 {
		updated = posts[0].Date.UTC()
	}
	feed.CreateElement("updated").SetText(updated.Format(time.RFC3339))

	for _, post := range posts {
		link := opts.Site.AbsoluteURL(post.Permalink)

		entry := feed.CreateElement("entry")
		title := entry.CreateElement("title")
		title.CreateAttr("type", "html")
		title.SetText(post.Title)
		entry.CreateElement("id").SetText(link)
		l := entry.CreateElement("link")
		l.CreateAttr("href", link)
		entry.CreateElement("updated").SetText(post.Date.UTC().Format(time.RFC3339))
		if post.Description != "" {
			summary := entry.CreateElement("summary")
			summary.CreateAttr("type", "html")
			summary.SetText(post.Description)
		}
		body := entry.CreateElement("content")
		body.CreateAttr("type", "html")
		body.SetText(post.HTML)

		for _, a := range post.Authors {
			author := entry.CreateElement("author")
			author.CreateElement("name").SetText(a.Name)
			if a.URL != "" {
				author.CreateElement("uri").SetText(a.URL)
			}
		}
		for _, tag := range post.Tags {
			cat := entry.CreateElement("category")
			cat.CreateAttr("term", tag.Label)
			cat.CreateAttr("label", tag.Label)
		}
	}

	return render(doc)
}

// Sitemap builds a sitemap listing one absolute URL per route, sorted.
func Sitemap(site website.SiteConfig, routes []string) ([]byte, error) {
	sorted := append([]string(nil), routes...)
	sort.Strings(sorted)

	doc := newDocument("", false)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNS)

	for _, route := range sorted {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(site.AbsoluteURL(route))
		u.CreateElement("changefreq").SetText("weekly")
		u.CreateElement("priority").SetText("0.5")
	}

	return render(doc)
}

// Stylesheet returns the XSL stylesheet with the given name ("rss.xsl" or
// "atom.xsl").
func Stylesheet(name string) ([]byte, error) {
	data, err := stylesheets.ReadFile("xsl/" + name)
	if err != nil {
		return nil, fmt.Errorf("stylesheet %s: %w", name, err)
	}
	return data, nil
}
