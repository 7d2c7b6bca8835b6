package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/jigarkkarangiya/docs/internal/website"
)

// StatsOptions configures the stats section.
type StatsOptions struct {
	// Title is an optional section title
	Title string
	// Stats contains the statistics to display, one column each
	Stats []website.Stat
}

// RenderStats generates a statistics band.
func RenderStats(opts StatsOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="statsSection">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	if opts.Title != "" {
		sb.WriteString(renderSectionHeading("stats-title", opts.Title, ""))
	}

	sb.WriteString(`<div class="row" role="list">`)
	sb.WriteString("\n")

	for _, stat := range opts.Stats {
		sb.WriteString(`<div class="col col--3 text--center" role="listitem">`)
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(`<div class="statNumber">%s</div>`, html.EscapeString(stat.Value)))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(`<div class="statLabel">%s</div>`, html.EscapeString(stat.Label)))
		sb.WriteString("\n")
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

// DefaultStats returns the four homepage headline numbers.
func DefaultStats() []website.Stat {
	return []website.Stat{
		{Value: "50+", Label: "Premium Modules"},
		{Value: "1000+", Label: "Happy Customers"},
		{Value: "24/7", Label: "Expert Support"},
		{Value: "99.9%", Label: "Uptime Guarantee"},
	}
}
