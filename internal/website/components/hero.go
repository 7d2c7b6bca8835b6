package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/website"
)

// HeroOptions configures the hero banner.
type HeroOptions struct {
	// Title is the main headline
	Title string
	// Subtitle is the description below the title
	Subtitle string
	// Buttons are the hero calls to action
	Buttons []website.CTAButton
	// BaseURL resolves button targets
	BaseURL string
}

// RenderHero generates the hero banner with title, subtitle and CTAs.
func RenderHero(opts HeroOptions) string {
	var sb strings.Builder

	sb.WriteString(`<header class="hero hero--primary">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	// Title
	sb.WriteString(fmt.Sprintf(`<h1 class="hero__title">%s</h1>`, html.EscapeString(opts.Title)))
	sb.WriteString("\n")

	// Subtitle
	if opts.Subtitle != "" {
		sb.WriteString(fmt.Sprintf(`<p class="hero__subtitle">%s</p>`, html.EscapeString(opts.Subtitle)))
		sb.WriteString("\n")
	}

	// Buttons
	if len(opts.Buttons) > 0 {
		sb.WriteString(`<div class="heroButtons">`)
		sb.WriteString("\n")
		for _, btn := range opts.Buttons {
			sb.WriteString(renderButton(opts.BaseURL, btn))
		}
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</header>`)
	sb.WriteString("\n")

	return sb.String()
}
