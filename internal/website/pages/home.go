package pages

import (
	"strings"

	"github.com/jigarkkarangiya/docs/internal/website"
	"github.com/jigarkkarangiya/docs/internal/website/components"
)

// HomeSections holds the homepage section content.
type HomeSections struct {
	Features           []website.Feature
	FeaturesTitle      string
	FeaturesSubtitle   string
	Stats              []website.Stat
	Categories         []website.ModuleCategory
	CategoriesTitle    string
	CategoriesSubtitle string
	CTA                components.CTAOptions
}

// DefaultHomeSections returns the Magento 2 modules homepage content.
func DefaultHomeSections() HomeSections {
	return HomeSections{
		Features:           components.DefaultHeroFeatures(),
		FeaturesTitle:      "Why Choose Our Magento 2 Modules?",
		FeaturesSubtitle:   "Professional, reliable, and feature-rich extensions designed to enhance your e-commerce success",
		Stats:              components.DefaultStats(),
		Categories:         components.DefaultModuleCategories(),
		CategoriesTitle:    "Module Categories",
		CategoriesSubtitle: "Explore our comprehensive range of Magento 2 modules organized by functionality",
		CTA:                components.DefaultCTA(),
	}
}

// RenderHome generates the homepage: hero, features, stats, module
// categories and the call to action, in that order.
func RenderHome(c *Context) string {
	return RenderHomeWith(c, DefaultHomeSections())
}

// RenderHomeWith generates the homepage from the given sections.
func RenderHomeWith(c *Context, s HomeSections) string {
	var sb strings.Builder

	sb.WriteString(components.RenderHero(components.HeroOptions{
		Title:    c.Site.Title,
		Subtitle: c.Site.Tagline,
		Buttons: []website.CTAButton{
			{Label: c.t("homepage.hero.cta"), To: c.FirstDocURL(), Primary: true},
		},
		BaseURL: c.BaseURL,
	}))

	sb.WriteString(`<main>`)
	sb.WriteString("\n")

	sb.WriteString(components.RenderFeatures(components.FeaturesOptions{
		Title:          s.FeaturesTitle,
		Subtitle:       s.FeaturesSubtitle,
		Features:       s.Features,
		BaseURL:        c.BaseURL,
		LearnMoreLabel: c.t("homepage.feature.learnMore"),
	}))

	sb.WriteString(components.RenderStats(components.StatsOptions{Stats: s.Stats}))

	sb.WriteString(components.RenderCategories(components.CategoriesOptions{
		Title:      s.CategoriesTitle,
		Subtitle:   s.CategoriesSubtitle,
		Categories: s.Categories,
	}))

	cta := s.CTA
	cta.BaseURL = c.BaseURL
	sb.WriteString(components.RenderCTA(cta))

	sb.WriteString(`</main>`)
	sb.WriteString("\n")

	cfg := c.pageConfig("", c.Site.Tagline, c.BaseURL)
	// The homepage matches no navbar section.
	return c.layout(cfg, "", sb.String())
}
