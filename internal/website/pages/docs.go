package pages

import (
	"strings"

	"github.com/jigarkkarangiya/docs/internal/content"
	"github.com/jigarkkarangiya/docs/internal/website"
	"github.com/jigarkkarangiya/docs/internal/website/components"
)

// RenderDoc generates a documentation page: sidebar, breadcrumbs, content,
// edit link, previous/next links and the table of contents.
func RenderDoc(c *Context, doc *content.Doc) string {
	var sb strings.Builder

	sb.WriteString(`<div class="docsWrapper">`)
	sb.WriteString("\n")

	if c.Docs != nil {
		sb.WriteString(components.RenderSidebar(components.SidebarOptions{
			AriaLabel: c.t("theme.docs.sidebar.navAriaLabel"),
			Items:     sidebarLinks(c.Docs.Sidebar, doc.ID, c.Docs.ActivePath(doc.ID)),
		}))
	}

	sb.WriteString(`<main class="docMainContainer">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="row">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="col docItemCol">`)
	sb.WriteString("\n")

	crumbs := make([]website.NavLink, 0, len(doc.Breadcrumbs))
	for _, b := range doc.Breadcrumbs {
		crumbs = append(crumbs, website.NavLink{Label: b.Title, URL: b.URL})
	}
	sb.WriteString(components.RenderBreadcrumbs(crumbs))

	sb.WriteString(`<article>`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="markdown">`)
	sb.WriteString("\n")
	if !doc.HasH1 {
		sb.WriteString(titleHeading(doc.Title))
	}
	sb.WriteString(doc.HTML)
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</article>`)
	sb.WriteString("\n")

	sb.WriteString(components.RenderEditLink(doc.EditURL, c.t("theme.common.editThisPage")))

	sb.WriteString(components.RenderPaginator(components.PaginatorOptions{
		AriaLabel: "Docs pages",
		PrevLabel: c.t("theme.docs.paginator.previous"),
		NextLabel: c.t("theme.docs.paginator.next"),
		Prev:      navLink(doc.Prev),
		Next:      navLink(doc.Next),
	}))

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	if len(doc.TOC) > 0 {
		sb.WriteString(`<div class="col col--3">`)
		sb.WriteString("\n")
		sb.WriteString(components.RenderTOC(components.TOCOptions{
			Title:   c.t("theme.TOCCollapsible.toggleButton"),
			Entries: tocEntries(doc.TOC),
		}))
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</main>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	cfg := c.pageConfig(doc.Title, doc.Description, doc.Permalink)
	cfg.Keywords = doc.Keywords
	return c.layout(cfg, c.DocsBase(), sb.String())
}

// sidebarLinks maps the content sidebar onto render links. Categories on the
// path to the active doc are expanded.
func sidebarLinks(items []content.SidebarItem, activeID string, activePath map[string]bool) []components.SidebarLink {
	links := make([]components.SidebarLink, 0, len(items))
	for _, item := range items {
		link := components.SidebarLink{
			Label:     item.Label,
			URL:       item.URL,
			Collapsed: item.Collapsed,
			Active:    item.DocID != "" && item.DocID == activeID,
		}
		if item.Type == "category" {
			link.Category = true
			link.Active = link.Active || activePath[item.Label]
			link.Items = sidebarLinks(item.Items, activeID, activePath)
		}
		links = append(links, link)
	}
	return links
}
