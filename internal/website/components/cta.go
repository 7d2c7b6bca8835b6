package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/website"
)

// CTAOptions configures the call-to-action section.
type CTAOptions struct {
	// Title is the section heading
	Title string
	// Description is the text under the heading
	Description string
	// Buttons are rendered in order
	Buttons []website.CTAButton
	// BaseURL resolves button targets
	BaseURL string
}

// RenderCTA generates the closing call-to-action section.
func RenderCTA(opts CTAOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="ctaSection" aria-labelledby="cta-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="row">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="col col--12 text--center">`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<h2 id="cta-title">%s</h2>`, html.EscapeString(opts.Title)))
	sb.WriteString("\n")

	if opts.Description != "" {
		sb.WriteString(fmt.Sprintf(`<p class="ctaDescription">%s</p>`, html.EscapeString(opts.Description)))
		sb.WriteString("\n")
	}

	if len(opts.Buttons) > 0 {
		sb.WriteString(`<div class="ctaButtons">`)
		sb.WriteString("\n")
		for _, btn := range opts.Buttons {
			sb.WriteString(renderButton(opts.BaseURL, btn))
		}
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderButton(baseURL string, btn website.CTAButton) string {
	variant := "button--secondary"
	if btn.Primary {
		variant = "button--primary"
	}

	href := website.JoinURL(baseURL, btn.To)
	target := ""
	if website.HasScheme(href) {
		target = ` target="_blank" rel="noopener noreferrer"`
	}

	return fmt.Sprintf(`<a href="%s" class="button %s button--lg"%s>%s</a>`+"\n",
		html.EscapeString(href), variant, target, html.EscapeString(btn.Label))
}

// DefaultCTA returns the homepage call-to-action. Button targets are relative
// to the base URL so they resolve under any deployment path.
func DefaultCTA() CTAOptions {
	return CTAOptions{
		Title: "Ready to Transform Your Magento 2 Store?",
		Description: "Explore our comprehensive collection of professional Magento 2 modules " +
			"and take your e-commerce business to the next level.",
		Buttons: []website.CTAButton{
			{Label: "Browse Documentation", To: "docs/intro", Primary: true},
			{Label: "Read Latest Updates", To: "blog"},
		},
	}
}
