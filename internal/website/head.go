package website

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// RenderHead generates a complete <head> section with SEO, Open Graph, feeds and JSON-LD.
func RenderHead(cfg PageConfig) string {
	var sb strings.Builder

	sb.WriteString("<head>\n")

	// Essential meta tags
	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	sb.WriteString(`<meta name="generator" content="docsite">` + "\n")
	if cfg.BuildID != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="docsite:build" content="%s">`+"\n", html.EscapeString(cfg.BuildID)))
	}

	// Title
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(cfg.Title)))

	// SEO meta tags
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if len(cfg.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf(`<meta name="keywords" content="%s">`+"\n", html.EscapeString(strings.Join(cfg.Keywords, ", "))))
	}

	// Canonical URL
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="canonical" href="%s">`+"\n", html.EscapeString(cfg.URL)))
	}

	// Robots
	if cfg.NoIndex {
		sb.WriteString(`<meta name="robots" content="noindex, nofollow">` + "\n")
	} else {
		sb.WriteString(`<meta name="robots" content="index, follow">` + "\n")
	}

	sb.WriteString(renderOpenGraph(cfg))
	sb.WriteString(renderTwitterCard(cfg))

	if !cfg.NoIndex {
		sb.WriteString(renderJSONLD(cfg))
	}

	if cfg.Favicon != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="icon" href="%s">`+"\n", html.EscapeString(cfg.Favicon)))
	}

	// Feed discovery
	for _, f := range cfg.Feeds {
		sb.WriteString(fmt.Sprintf(`<link rel="alternate" type="%s" title="%s" href="%s">`+"\n",
			html.EscapeString(f.Type), html.EscapeString(f.Title), html.EscapeString(f.Href)))
	}

	// Inline CSS
	css := cfg.CSS
	if css == "" {
		css = RenderStyles()
	}
	sb.WriteString("<style>\n")
	sb.WriteString(css)
	sb.WriteString("\n</style>\n")

	sb.WriteString("</head>\n")

	return sb.String()
}

func renderOpenGraph(cfg PageConfig) string {
	var sb strings.Builder

	ogType := cfg.OGType
	if ogType == "" {
		ogType = "website"
	}
	sb.WriteString(fmt.Sprintf(`<meta property="og:type" content="%s">`+"\n", html.EscapeString(ogType)))

	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:title" content="%s">`+"\n", html.EscapeString(cfg.Title)))
	}
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:url" content="%s">`+"\n", html.EscapeString(cfg.URL)))
	}
	if cfg.OGImage != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:image" content="%s">`+"\n", html.EscapeString(cfg.OGImage)))
	}

	sb.WriteString(fmt.Sprintf(`<meta property="og:locale" content="%s">`+"\n", html.EscapeString(pageLang(cfg))))

	return sb.String()
}

func renderTwitterCard(cfg PageConfig) string {
	var sb strings.Builder

	sb.WriteString(`<meta name="twitter:card" content="summary_large_image">` + "\n")

	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:title" content="%s">`+"\n", html.EscapeString(cfg.Title)))
	}
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if cfg.OGImage != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:image" content="%s">`+"\n", html.EscapeString(cfg.OGImage)))
	}

	return sb.String()
}

func renderJSONLD(cfg PageConfig) string {
	schemaType := "WebPage"
	if cfg.OGType == "article" {
		schemaType = "BlogPosting"
	}

	data, err := json.Marshal(map[string]string{
		"@context":    "https://schema.org",
		"@type":       schemaType,
		"name":        cfg.Title,
		"description": cfg.Description,
		"url":         cfg.URL,
		"inLanguage":  pageLang(cfg),
	})
	if err != nil {
		return ""
	}
	// Keep "</script>" inside values from closing the tag.
	safe := strings.ReplaceAll(string(data), "</", `<\/`)

	return fmt.Sprintf(`<script type="application/ld+json">%s</script>`+"\n", safe)
}

func pageLang(cfg PageConfig) string {
	if cfg.Language == "" {
		return "en"
	}
	return cfg.Language
}

// RenderDocument wraps content in a complete HTML document.
func RenderDocument(cfg PageConfig, bodyContent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="%s">
%s<body>
%s
</body>
</html>
`, html.EscapeString(pageLang(cfg)), RenderHead(cfg), bodyContent)
}
