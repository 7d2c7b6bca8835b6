package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/website"
)

// FeaturesOptions configures the features section.
type FeaturesOptions struct {
	// Title is the section title
	Title string
	// Subtitle is optional description
	Subtitle string
	// Features is the list of features to display
	Features []website.Feature
	// BaseURL resolves graphics and links
	BaseURL string
	// LearnMoreLabel is the text of the optional card button (default: "Learn More")
	LearnMoreLabel string
}

// RenderFeatures generates the feature card section. A card gets a button if
// and only if its Link is set.
func RenderFeatures(opts FeaturesOptions) string {
	var sb strings.Builder

	learnMore := opts.LearnMoreLabel
	if learnMore == "" {
		learnMore = "Learn More"
	}

	sb.WriteString(`<section class="features" aria-labelledby="features-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	// Title
	if opts.Title != "" {
		sb.WriteString(renderSectionHeading("features-title", opts.Title, opts.Subtitle))
	}

	// Cards
	sb.WriteString(`<div class="row">`)
	sb.WriteString("\n")

	for _, feature := range opts.Features {
		sb.WriteString(renderFeatureCard(feature, opts.BaseURL, learnMore))
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderFeatureCard(f website.Feature, baseURL, learnMore string) string {
	var sb strings.Builder

	sb.WriteString(`<div class="col col--4 feature">`)
	sb.WriteString("\n")

	if f.Graphic != "" {
		sb.WriteString(`<div class="text--center">`)
		sb.WriteString(fmt.Sprintf(`<img class="featureSvg" role="img" src="%s" alt="">`,
			html.EscapeString(website.JoinURL(baseURL, f.Graphic))))
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`<div class="text--center padding-horiz--md">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, html.EscapeString(f.Title)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(f.Description)))
	sb.WriteString("\n")

	if f.Link != "" {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="button button--primary button--lg">%s</a>`,
			html.EscapeString(website.JoinURL(baseURL, f.Link)), html.EscapeString(learnMore)))
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}

// renderSectionHeading writes the centered h2 and description row used by
// the homepage sections.
func renderSectionHeading(id, title, subtitle string) string {
	var sb strings.Builder

	sb.WriteString(`<div class="row">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="col col--12 text--center">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h2 id="%s">%s</h2>`, id, html.EscapeString(title)))
	sb.WriteString("\n")
	if subtitle != "" {
		sb.WriteString(fmt.Sprintf(`<p class="sectionDescription">%s</p>`, html.EscapeString(subtitle)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}

// DefaultHeroFeatures returns the three homepage highlight cards.
func DefaultHeroFeatures() []website.Feature {
	return []website.Feature{
		{
			Title:   "Premium Magento 2 Modules",
			Graphic: "img/undraw_docusaurus_mountain.svg",
			Description: "Professional-grade Magento 2 extensions designed to enhance your e-commerce store's functionality, " +
				"performance, and user experience. Built with best practices and extensive testing.",
		},
		{
			Title:   "Comprehensive Documentation",
			Graphic: "img/undraw_docusaurus_tree.svg",
			Description: "Detailed installation guides, configuration tutorials, and API documentation for every module. " +
				"Step-by-step instructions to get you up and running quickly.",
		},
		{
			Title:   "Expert Support",
			Graphic: "img/undraw_docusaurus_react.svg",
			Description: "Get professional support from Magento 2 experts. Technical assistance, customization help, " +
				"and ongoing maintenance for all your module needs.",
		},
	}
}
