package pages

import (
	"fmt"
	"html"
	"strings"
)

// RenderNotFound generates the 404 page. It is not indexed by search engines.
func RenderNotFound(c *Context) string {
	var sb strings.Builder

	title := c.t("theme.NotFound.title")

	sb.WriteString(`<main class="container notFound">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="row"><div class="col col--12">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h1>%s</h1>`, html.EscapeString(title)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(c.t("theme.NotFound.p1"))))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(c.t("theme.NotFound.p2"))))
	sb.WriteString("\n")
	sb.WriteString(`</div></div>`)
	sb.WriteString("\n")
	sb.WriteString(`</main>`)
	sb.WriteString("\n")

	cfg := c.pageConfig(title, "", c.BaseURL+"404.html")
	cfg.NoIndex = true
	return c.layout(cfg, "", sb.String())
}
