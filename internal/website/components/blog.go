package components

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jigarkkarangiya/docs/internal/website"
)

// BlogAuthor is an author shown in a post header.
type BlogAuthor struct {
	Name     string
	Title    string
	URL      string
	ImageURL string
}

// BlogPostHeaderOptions configures a post header.
type BlogPostHeaderOptions struct {
	Title string
	// URL links the title; set in post lists
	URL  string
	Date time.Time
	// ReadingTime is the translated reading time; empty hides it
	ReadingTime string
	Authors     []BlogAuthor
	// AsPage renders the title as h1 instead of h2
	AsPage bool
}

// RenderBlogPostHeader generates the title, date, reading time and authors
// of a post.
func RenderBlogPostHeader(opts BlogPostHeaderOptions) string {
	var sb strings.Builder

	sb.WriteString(`<header>`)
	sb.WriteString("\n")

	// Title
	tag := "h2"
	if opts.AsPage {
		tag = "h1"
	}
	title := html.EscapeString(opts.Title)
	if opts.URL != "" {
		title = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(opts.URL), title)
	}
	sb.WriteString(fmt.Sprintf(`<%s class="blogPostTitle">%s</%s>`, tag, title, tag))
	sb.WriteString("\n")

	// Date and reading time
	sb.WriteString(`<div class="blogPostMeta">`)
	sb.WriteString(fmt.Sprintf(`<time datetime="%s">%s</time>`,
		opts.Date.Format(time.RFC3339), opts.Date.Format("January 2, 2006")))
	if opts.ReadingTime != "" {
		sb.WriteString(" · ")
		sb.WriteString(html.EscapeString(opts.ReadingTime))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	// Authors
	if len(opts.Authors) > 0 {
		sb.WriteString(`<div class="authorList">`)
		sb.WriteString("\n")
		for _, a := range opts.Authors {
			sb.WriteString(renderAuthor(a))
		}
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</header>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderAuthor(a BlogAuthor) string {
	var sb strings.Builder

	sb.WriteString(`<div class="author">`)
	if a.ImageURL != "" {
		sb.WriteString(fmt.Sprintf(`<img class="avatar" src="%s" alt="%s">`,
			html.EscapeString(a.ImageURL), html.EscapeString(a.Name)))
	}
	sb.WriteString(`<div>`)
	name := html.EscapeString(a.Name)
	if a.URL != "" {
		name = fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, html.EscapeString(a.URL), name)
	}
	sb.WriteString(fmt.Sprintf(`<span class="author__name">%s</span>`, name))
	if a.Title != "" {
		sb.WriteString(fmt.Sprintf(`<small class="author__title">%s</small>`, html.EscapeString(a.Title)))
	}
	sb.WriteString(`</div></div>`)
	sb.WriteString("\n")

	return sb.String()
}

// TagListOptions configures a tag list.
type TagListOptions struct {
	// Label is the visually hidden list caption (e.g. "Tags:")
	Label string
	Tags  []website.NavLink
	// Counts is parallel to Tags; nil hides counts
	Counts []int
}

// RenderTagList generates a list of tag links.
func RenderTagList(opts TagListOptions) string {
	if len(opts.Tags) == 0 {
		return ""
	}

	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf(`<b class="sr-only">%s</b>`, html.EscapeString(opts.Label)))
	}
	sb.WriteString(`<ul class="tagList">`)
	for i, t := range opts.Tags {
		sb.WriteString(fmt.Sprintf(`<li><a class="tag" href="%s">%s`, html.EscapeString(t.URL), html.EscapeString(t.Label)))
		if i < len(opts.Counts) {
			sb.WriteString(fmt.Sprintf(`<span class="tag__count">%d</span>`, opts.Counts[i]))
		}
		sb.WriteString(`</a></li>`)
	}
	sb.WriteString(`</ul>`)
	sb.WriteString("\n")

	return sb.String()
}

// BlogPostSummaryOptions configures a post in the blog list.
type BlogPostSummaryOptions struct {
	Header      BlogPostHeaderOptions
	SummaryHTML string
	// ReadMoreURL adds a "Read more" link when the post is truncated
	ReadMoreURL   string
	ReadMoreLabel string
	Tags          TagListOptions
}

// RenderBlogPostSummary generates one entry of the post list. SummaryHTML is
// trusted rendered Markdown and is written unescaped.
func RenderBlogPostSummary(opts BlogPostSummaryOptions) string {
	var sb strings.Builder

	sb.WriteString(`<article class="blogPost">`)
	sb.WriteString("\n")
	sb.WriteString(RenderBlogPostHeader(opts.Header))
	sb.WriteString(`<div class="markdown">`)
	sb.WriteString("\n")
	sb.WriteString(opts.SummaryHTML)
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<footer>`)
	sb.WriteString(RenderTagList(opts.Tags))
	if opts.ReadMoreURL != "" {
		label := opts.ReadMoreLabel
		if label == "" {
			label = "Read more"
		}
		sb.WriteString(fmt.Sprintf(`<a href="%s" aria-label="%s: %s"><b>%s</b></a>`,
			html.EscapeString(opts.ReadMoreURL), html.EscapeString(label),
			html.EscapeString(opts.Header.Title), html.EscapeString(label)))
	}
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")

	sb.WriteString(`</article>`)
	sb.WriteString("\n")

	return sb.String()
}

// BlogPaginatorOptions configures the newer/older links of the post list.
type BlogPaginatorOptions struct {
	AriaLabel  string
	NewerLabel string
	OlderLabel string
	NewerURL   string
	OlderURL   string
}

// RenderBlogPaginator generates the newer/older entries links below a post
// list page. The first page has no newer link and the last no older link.
func RenderBlogPaginator(opts BlogPaginatorOptions) string {
	p := PaginatorOptions{AriaLabel: opts.AriaLabel}
	if opts.NewerURL != "" {
		p.Prev = &website.NavLink{Label: opts.NewerLabel, URL: opts.NewerURL}
	}
	if opts.OlderURL != "" {
		p.Next = &website.NavLink{Label: opts.OlderLabel, URL: opts.OlderURL}
	}
	return RenderPaginator(p)
}
