// Package components provides the reusable page sections of the site.
package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/website"
)

// NavbarOptions configures the navbar component.
type NavbarOptions struct {
	// Title is the brand text next to the logo
	Title string
	// LogoSrc is the resolved logo URL; empty hides the logo
	LogoSrc string
	// LogoAlt is the logo alt text
	LogoAlt string
	// HomeURL is the brand link target
	HomeURL string
	// Left are the links after the brand
	Left []website.NavLink
	// Right are the links aligned to the end of the bar
	Right []website.NavLink
	// SkipLabel is the skip link text (default: "Skip to main content")
	SkipLabel string
}

// RenderNavbar generates a sticky navigation bar.
func RenderNavbar(opts NavbarOptions) string {
	var sb strings.Builder

	skip := opts.SkipLabel
	if skip == "" {
		skip = "Skip to main content"
	}
	sb.WriteString(fmt.Sprintf(`<a href="#__main" class="skipToContent">%s</a>`, html.EscapeString(skip)))
	sb.WriteString("\n")

	sb.WriteString(`<nav class="navbar" aria-label="Main">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="navbar__inner">`)
	sb.WriteString("\n")

	// Brand and left items
	sb.WriteString(`<div class="navbar__items">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<a class="navbar__brand" href="%s">`, html.EscapeString(opts.HomeURL)))
	if opts.LogoSrc != "" {
		sb.WriteString(fmt.Sprintf(`<img class="navbar__logo" src="%s" alt="%s">`,
			html.EscapeString(opts.LogoSrc), html.EscapeString(opts.LogoAlt)))
	}
	sb.WriteString(fmt.Sprintf(`<b class="navbar__title">%s</b>`, html.EscapeString(opts.Title)))
	sb.WriteString(`</a>`)
	sb.WriteString("\n")
	for _, link := range opts.Left {
		sb.WriteString(renderNavLink(link))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	// Right items
	sb.WriteString(`<div class="navbar__items navbar__items--right">`)
	sb.WriteString("\n")
	for _, link := range opts.Right {
		sb.WriteString(renderNavLink(link))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderNavLink(link website.NavLink) string {
	class := "navbar__item navbar__link"
	extra := ""
	if link.Active {
		class += " navbar__link--active"
		extra = ` aria-current="page"`
	}
	if link.External {
		extra += ` target="_blank" rel="noopener noreferrer"`
	}
	return fmt.Sprintf(`<a href="%s" class="%s"%s>%s</a>`+"\n",
		html.EscapeString(link.URL), class, extra, html.EscapeString(link.Label))
}

// NavbarFromConfig resolves the configured navbar items into options.
// section is the route prefix of the current page (docs or blog root); links
// under it are marked active.
func NavbarFromConfig(cfg website.NavbarConfig, baseURL, section string, firstDoc func(string) string) NavbarOptions {
	opts := NavbarOptions{
		Title:   cfg.Title,
		LogoAlt: cfg.Logo.Alt,
		HomeURL: baseURL,
	}
	if cfg.Logo.Src != "" {
		opts.LogoSrc = website.JoinURL(baseURL, cfg.Logo.Src)
	}

	for _, item := range cfg.Items {
		link := website.ResolveNavItem(baseURL, item, firstDoc)
		if !link.External && section != "" {
			s, u := strings.TrimSuffix(section, "/"), strings.TrimSuffix(link.URL, "/")
			link.Active = u == s || strings.HasPrefix(u, s+"/")
		}
		if item.Position == "right" {
			opts.Right = append(opts.Right, link)
		} else {
			opts.Left = append(opts.Left, link)
		}
	}

	return opts
}
