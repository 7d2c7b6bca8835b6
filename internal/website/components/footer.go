package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/website"
)

// FooterOptions configures the footer component.
type FooterOptions struct {
	// Config is the footer configuration
	Config website.FooterConfig
	// BaseURL resolves internal link targets
	BaseURL string
}

// RenderFooter generates the page footer: one column per link group, in
// configuration order, followed by the copyright line.
func RenderFooter(opts FooterOptions) string {
	var sb strings.Builder

	class := "footer"
	if opts.Config.Style == "dark" {
		class += " footer--dark"
	}

	sb.WriteString(fmt.Sprintf(`<footer class="%s">`, class))
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	// Link groups
	if len(opts.Config.Links) > 0 {
		sb.WriteString(`<div class="row footer__links">`)
		sb.WriteString("\n")
		for _, group := range opts.Config.Links {
			sb.WriteString(renderFooterGroup(opts.BaseURL, group))
		}
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	// Copyright
	if opts.Config.Copyright != "" {
		sb.WriteString(fmt.Sprintf(`<div class="footer__copyright">%s</div>`, html.EscapeString(opts.Config.Copyright)))
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderFooterGroup(baseURL string, group website.FooterGroup) string {
	var sb strings.Builder

	sb.WriteString(`<div class="col footer__col">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<div class="footer__title">%s</div>`, html.EscapeString(group.Title)))
	sb.WriteString("\n")
	sb.WriteString(`<ul class="footer__items">`)
	sb.WriteString("\n")

	for _, item := range group.Items {
		link := website.ResolveFooterLink(baseURL, item)
		extra := ""
		if link.External {
			extra = ` target="_blank" rel="noopener noreferrer"`
		}
		sb.WriteString(fmt.Sprintf(`<li class="footer__item"><a class="footer__link-item" href="%s"%s>%s</a></li>`,
			html.EscapeString(link.URL), extra, html.EscapeString(link.Label)))
		sb.WriteString("\n")
	}

	sb.WriteString(`</ul>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}
