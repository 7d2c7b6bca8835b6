package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/website"
)

// CategoriesOptions configures the module category section.
type CategoriesOptions struct {
	// Title is the section title
	Title string
	// Subtitle is optional description
	Subtitle string
	// Categories is the list of categories to display
	Categories []website.ModuleCategory
}

// RenderCategories generates the module category grid. Each category lists
// its modules in input order.
func RenderCategories(opts CategoriesOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="moduleCategories" aria-labelledby="categories-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	if opts.Title != "" {
		sb.WriteString(renderSectionHeading("categories-title", opts.Title, opts.Subtitle))
	}

	sb.WriteString(`<div class="row">`)
	sb.WriteString("\n")

	for _, cat := range opts.Categories {
		sb.WriteString(renderCategory(cat))
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderCategory(cat website.ModuleCategory) string {
	var sb strings.Builder

	sb.WriteString(`<div class="col col--4 category">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="text--center">`)
	sb.WriteString(fmt.Sprintf(`<div class="categoryIcon" aria-hidden="true">%s</div>`, html.EscapeString(cat.Icon)))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="text--center padding-horiz--md">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, html.EscapeString(cat.Title)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(cat.Description)))
	sb.WriteString("\n")

	sb.WriteString(`<ul class="moduleList">`)
	sb.WriteString("\n")
	for _, module := range cat.Modules {
		sb.WriteString(fmt.Sprintf(`<li>%s</li>`, html.EscapeString(module)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</ul>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}

// DefaultModuleCategories returns the six product categories.
func DefaultModuleCategories() []website.ModuleCategory {
	return []website.ModuleCategory{
		{
			Title:       "Payment & Checkout",
			Description: "Streamline your checkout process with advanced payment solutions",
			Icon:        "💳",
			Modules:     []string{"Advanced Payment Gateway", "One-Click Checkout", "Payment Security Suite"},
		},
		{
			Title:       "Customer Experience",
			Description: "Enhance customer satisfaction with personalized features",
			Icon:        "👥",
			Modules:     []string{"Customer Loyalty Program", "Advanced Reviews", "Personalized Recommendations"},
		},
		{
			Title:       "Inventory & Shipping",
			Description: "Optimize your inventory management and shipping operations",
			Icon:        "📦",
			Modules:     []string{"Smart Inventory Manager", "Multi-Warehouse Support", "Advanced Shipping Rules"},
		},
		{
			Title:       "Marketing & SEO",
			Description: "Boost your store's visibility and marketing effectiveness",
			Icon:        "📈",
			Modules:     []string{"SEO Optimizer Pro", "Email Marketing Suite", "Social Media Integration"},
		},
		{
			Title:       "Analytics & Reporting",
			Description: "Gain insights into your store's performance and customer behavior",
			Icon:        "📊",
			Modules:     []string{"Advanced Analytics Dashboard", "Customer Behavior Tracker", "Sales Performance Reports"},
		},
		{
			Title:       "Security & Compliance",
			Description: "Protect your store and ensure regulatory compliance",
			Icon:        "🔒",
			Modules:     []string{"Security Scanner Pro", "GDPR Compliance Suite", "Fraud Detection System"},
		},
	}
}
