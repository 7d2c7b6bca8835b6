package pages

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/content"
	"github.com/jigarkkarangiya/docs/internal/website"
	"github.com/jigarkkarangiya/docs/internal/website/components"
)

// RenderBlogList generates one page of the post list.
func RenderBlogList(c *Context, page content.ListPage) string {
	var sb strings.Builder

	sb.WriteString(`<main class="container blogPostList">`)
	sb.WriteString("\n")

	for _, post := range page.Posts {
		sb.WriteString(renderSummary(c, post))
	}

	sb.WriteString(components.RenderBlogPaginator(components.BlogPaginatorOptions{
		AriaLabel:  "Blog list page navigation",
		NewerLabel: c.t("theme.blog.paginator.newerEntries"),
		OlderLabel: c.t("theme.blog.paginator.olderEntries"),
		NewerURL:   page.NewerURL,
		OlderURL:   page.OlderURL,
	}))

	sb.WriteString(`</main>`)
	sb.WriteString("\n")

	title := c.Site.Blog.Title
	if title == "" {
		title = c.t("theme.blog.title")
	}
	if page.Number > 1 {
		title = fmt.Sprintf("%s - Page %d", title, page.Number)
	}

	cfg := c.pageConfig(title, c.Site.Blog.Description, page.Permalink)
	return c.layout(cfg, c.BlogBase(), sb.String())
}

func renderSummary(c *Context, post *content.Post) string {
	readMore := ""
	if post.Truncated {
		readMore = post.Permalink
	}
	return components.RenderBlogPostSummary(components.BlogPostSummaryOptions{
		Header:        postHeader(c, post, false),
		SummaryHTML:   post.SummaryHTML,
		ReadMoreURL:   readMore,
		ReadMoreLabel: c.t("theme.blog.post.readMore"),
		Tags:          postTags(c, post),
	})
}

// RenderBlogPost generates a full post page.
func RenderBlogPost(c *Context, post *content.Post) string {
	var sb strings.Builder

	sb.WriteString(`<main class="container blogPostList">`)
	sb.WriteString("\n")
	sb.WriteString(`<article class="blogPost">`)
	sb.WriteString("\n")
	sb.WriteString(components.RenderBlogPostHeader(postHeader(c, post, true)))

	sb.WriteString(`<div class="markdown">`)
	sb.WriteString("\n")
	sb.WriteString(post.HTML)
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<footer>`)
	sb.WriteString(components.RenderTagList(postTags(c, post)))
	sb.WriteString(components.RenderEditLink(post.EditURL, c.t("theme.common.editThisPage")))
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")
	sb.WriteString(`</article>`)
	sb.WriteString("\n")

	sb.WriteString(components.RenderPaginator(components.PaginatorOptions{
		AriaLabel: "Blog post page navigation",
		PrevLabel: c.t("theme.blog.paginator.newerEntries"),
		NextLabel: c.t("theme.blog.paginator.olderEntries"),
		Prev:      navLink(post.Newer),
		Next:      navLink(post.Older),
	}))

	sb.WriteString(`</main>`)
	sb.WriteString("\n")

	cfg := c.pageConfig(post.Title, post.Description, post.Permalink)
	cfg.OGType = "article"
	for _, t := range post.Tags {
		cfg.Keywords = append(cfg.Keywords, t.Label)
	}
	return c.layout(cfg, c.BlogBase(), sb.String())
}

func postHeader(c *Context, post *content.Post, asPage bool) components.BlogPostHeaderOptions {
	opts := components.BlogPostHeaderOptions{
		Title:  post.Title,
		Date:   post.Date,
		AsPage: asPage,
	}
	if !asPage {
		opts.URL = post.Permalink
	}
	if c.Site.Blog.ShowReadingTime {
		opts.ReadingTime = c.plural("theme.blog.post.readingTime", post.ReadingTime, nil)
	}
	for _, a := range post.Authors {
		opts.Authors = append(opts.Authors, components.BlogAuthor{
			Name:     a.Name,
			Title:    a.Title,
			URL:      a.URL,
			ImageURL: a.ImageURL,
		})
	}
	return opts
}

func postTags(c *Context, post *content.Post) components.TagListOptions {
	opts := components.TagListOptions{Label: c.t("theme.tags.tagsListLabel")}
	for _, t := range post.Tags {
		opts.Tags = append(opts.Tags, website.NavLink{Label: t.Label, URL: t.Permalink})
	}
	return opts
}

// RenderTagsIndex generates the list of all tags with their post counts.
func RenderTagsIndex(c *Context) string {
	var sb strings.Builder

	title := c.t("theme.tags.tagsPageTitle")

	sb.WriteString(`<main class="container blogPostList">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h1>%s</h1>`, html.EscapeString(title)))
	sb.WriteString("\n")

	tags := components.TagListOptions{}
	if c.Blog != nil {
		for _, g := range c.Blog.Tags {
			tags.Tags = append(tags.Tags, website.NavLink{Label: g.Tag.Label, URL: g.Tag.Permalink})
			tags.Counts = append(tags.Counts, len(g.Posts))
		}
	}
	sb.WriteString(components.RenderTagList(tags))

	sb.WriteString(`</main>`)
	sb.WriteString("\n")

	cfg := c.pageConfig(title, "", c.BlogBase()+"/tags")
	return c.layout(cfg, c.BlogBase(), sb.String())
}

// RenderTagPage generates the post list of one tag.
func RenderTagPage(c *Context, group content.TagGroup) string {
	var sb strings.Builder

	heading := c.plural("theme.blog.tagTitle", len(group.Posts), map[string]any{"tagName": group.Tag.Label})

	sb.WriteString(`<main class="container blogPostList">`)
	sb.WriteString("\n")
	sb.WriteString(`<header>`)
	sb.WriteString(fmt.Sprintf(`<h1>%s</h1>`, html.EscapeString(heading)))
	if group.Tag.Description != "" {
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(group.Tag.Description)))
	}
	sb.WriteString(fmt.Sprintf(`<a href="%s">%s</a>`,
		html.EscapeString(c.BlogBase()+"/tags"), html.EscapeString(c.t("theme.tags.tagsPageLink"))))
	sb.WriteString(`</header>`)
	sb.WriteString("\n")

	for _, post := range group.Posts {
		sb.WriteString(renderSummary(c, post))
	}

	sb.WriteString(`</main>`)
	sb.WriteString("\n")

	cfg := c.pageConfig(heading, group.Tag.Description, group.Tag.Permalink)
	return c.layout(cfg, c.BlogBase(), sb.String())
}

// RenderArchive generates the list of all posts grouped by year.
func RenderArchive(c *Context) string {
	var sb strings.Builder

	title := c.t("theme.blog.archive.title")

	sb.WriteString(`<main class="container blogPostList">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h1>%s</h1>`, html.EscapeString(title)))
	sb.WriteString("\n")

	var posts []*content.Post
	if c.Blog != nil {
		posts = c.Blog.Posts
	}

	year := -1
	for _, post := range posts {
		if y := post.Date.Year(); y != year {
			if year != -1 {
				sb.WriteString(`</ul></section>`)
				sb.WriteString("\n")
			}
			year = y
			sb.WriteString(fmt.Sprintf(`<section class="archiveYear"><h2>%d</h2><ul class="archiveList">`, y))
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf(`<li><time datetime="%s">%s</time> <a href="%s">%s</a></li>`,
			post.Date.Format("2006-01-02"), post.Date.Format("January 2"),
			html.EscapeString(post.Permalink), html.EscapeString(post.Title)))
		sb.WriteString("\n")
	}
	if year != -1 {
		sb.WriteString(`</ul></section>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</main>`)
	sb.WriteString("\n")

	cfg := c.pageConfig(title, c.t("theme.blog.archive.description"), c.BlogBase()+"/archive")
	return c.layout(cfg, c.BlogBase(), sb.String())
}
