package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/website"
)

// SidebarLink is one sidebar entry. Categories carry Items.
type SidebarLink struct {
	Label string
	// URL is empty for categories without an index page
	URL       string
	Active    bool
	Category  bool
	Collapsed bool
	Items     []SidebarLink
}

// SidebarOptions configures the docs sidebar.
type SidebarOptions struct {
	// AriaLabel names the navigation landmark
	AriaLabel string
	Items     []SidebarLink
}

// RenderSidebar generates the docs navigation tree.
func RenderSidebar(opts SidebarOptions) string {
	var sb strings.Builder

	label := opts.AriaLabel
	if label == "" {
		label = "Docs sidebar"
	}

	sb.WriteString(fmt.Sprintf(`<aside class="sidebar"><nav aria-label="%s">`, html.EscapeString(label)))
	sb.WriteString("\n")
	renderSidebarList(&sb, opts.Items)
	sb.WriteString(`</nav></aside>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderSidebarList(sb *strings.Builder, items []SidebarLink) {
	sb.WriteString(`<ul class="menu__list">`)
	sb.WriteString("\n")

	for _, item := range items {
		sb.WriteString(`<li class="menu__list-item">`)

		switch {
		case item.URL != "":
			class := "menu__link"
			current := ""
			if item.Active {
				class += " menu__link--active"
				current = ` aria-current="page"`
			}
			sb.WriteString(fmt.Sprintf(`<a class="%s" href="%s"%s>%s</a>`,
				class, html.EscapeString(item.URL), current, html.EscapeString(item.Label)))
		default:
			sb.WriteString(fmt.Sprintf(`<span class="menu__caption">%s</span>`, html.EscapeString(item.Label)))
		}

		// Collapsed categories only show their children while active.
		if item.Category && len(item.Items) > 0 && (!item.Collapsed || item.Active) {
			sb.WriteString("\n")
			renderSidebarList(sb, item.Items)
		}

		sb.WriteString(`</li>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</ul>`)
	sb.WriteString("\n")
}

// TOCEntry is a heading listed in the table of contents.
type TOCEntry struct {
	Level int
	ID    string
	Text  string
}

// TOCOptions configures the table of contents.
type TOCOptions struct {
	// Title is shown above the list (e.g. "On this page")
	Title   string
	Entries []TOCEntry
}

// RenderTOC generates the on-page table of contents. Deeper headings nest
// under the preceding shallower one. Empty input renders nothing.
func RenderTOC(opts TOCOptions) string {
	if len(opts.Entries) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(`<div class="toc">`)
	sb.WriteString("\n")
	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`<div class="toc__title">%s</div>`, html.EscapeString(opts.Title)))
		sb.WriteString("\n")
	}

	minLevel := opts.Entries[0].Level
	for _, e := range opts.Entries {
		minLevel = min(minLevel, e.Level)
	}

	sb.WriteString(`<ul class="table-of-contents">`)
	depth := 0
	for i, e := range opts.Entries {
		level := e.Level - minLevel
		switch {
		case i == 0:
		case level > depth:
			sb.WriteString(`<ul>`)
			depth++
		default:
			sb.WriteString(`</li>`)
			for ; depth > level; depth-- {
				sb.WriteString(`</ul></li>`)
			}
		}
		sb.WriteString(fmt.Sprintf(`<li><a class="table-of-contents__link" href="#%s">%s</a>`,
			html.EscapeString(e.ID), html.EscapeString(e.Text)))
	}
	sb.WriteString(`</li>`)
	for ; depth > 0; depth-- {
		sb.WriteString(`</ul></li>`)
	}
	sb.WriteString(`</ul>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}

// PaginatorOptions configures a previous/next navigation block.
type PaginatorOptions struct {
	AriaLabel string
	// PrevLabel and NextLabel are the small captions (e.g. "Previous")
	PrevLabel string
	NextLabel string
	Prev      *website.NavLink
	Next      *website.NavLink
}

// RenderPaginator generates previous/next links. Missing sides are omitted;
// with neither side nothing is rendered.
func RenderPaginator(opts PaginatorOptions) string {
	if opts.Prev == nil && opts.Next == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<nav class="pagination-nav" aria-label="%s">`, html.EscapeString(opts.AriaLabel)))
	sb.WriteString("\n")

	if opts.Prev != nil {
		sb.WriteString(renderPaginatorLink("pagination-nav__link pagination-nav__link--prev", opts.PrevLabel, *opts.Prev))
	}
	if opts.Next != nil {
		sb.WriteString(renderPaginatorLink("pagination-nav__link pagination-nav__link--next", opts.NextLabel, *opts.Next))
	}

	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderPaginatorLink(class, caption string, link website.NavLink) string {
	return fmt.Sprintf(`<a class="%s" href="%s"><span class="pagination-nav__sublabel">%s</span><span class="pagination-nav__label">%s</span></a>`+"\n",
		class, html.EscapeString(link.URL), html.EscapeString(caption), html.EscapeString(link.Label))
}

// RenderEditLink generates the "Edit this page" link. An empty url renders
// nothing.
func RenderEditLink(url, label string) string {
	if url == "" {
		return ""
	}
	return fmt.Sprintf(`<a class="theme-edit-this-page" href="%s" target="_blank" rel="noopener noreferrer">%s</a>`+"\n",
		html.EscapeString(url), html.EscapeString(label))
}

// RenderBreadcrumbs generates the category trail above a doc. Crumbs without
// a URL render as plain text.
func RenderBreadcrumbs(crumbs []website.NavLink) string {
	if len(crumbs) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(`<nav aria-label="Breadcrumbs"><ul class="breadcrumbs">`)
	for _, c := range crumbs {
		sb.WriteString(`<li class="breadcrumbs__item">`)
		if c.URL != "" {
			sb.WriteString(fmt.Sprintf(`<a class="breadcrumbs__link" href="%s">%s</a>`,
				html.EscapeString(c.URL), html.EscapeString(c.Label)))
		} else {
			sb.WriteString(fmt.Sprintf(`<span class="breadcrumbs__link">%s</span>`, html.EscapeString(c.Label)))
		}
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul></nav>`)
	sb.WriteString("\n")

	return sb.String()
}
