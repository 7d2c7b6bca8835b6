// Package website provides the site data model, the literal site
// configuration and the document shell (head, CSS) shared by every page.
// Rendering of individual sections lives in the components subpackage and
// page composition in the pages subpackage.
package website

import "github.com/jigarkkarangiya/docs/internal/report"

// SiteConfig is the site configuration record. It is defined once by
// DefaultSiteConfig and read-only afterwards.
type SiteConfig struct {
	// Title is the site title (browser tab suffix, hero heading)
	Title string
	// Tagline is shown under the title and used as the default description
	Tagline string
	// Favicon is the favicon path relative to the base URL
	Favicon string
	// URL is the production origin, without a path
	URL string
	// BaseURL is the path prefix the site is served under; starts and ends with "/"
	BaseURL string

	// OrganizationName is the GitHub user or org that owns the repository
	OrganizationName string
	// ProjectName is the GitHub repository name
	ProjectName string
	// DeploymentBranch is the branch static output is published to
	DeploymentBranch string

	// OnBrokenLinks applies to links between rendered pages
	OnBrokenLinks report.Severity
	// OnBrokenMarkdownLinks applies to *.md links that resolve to no doc
	OnBrokenMarkdownLinks report.Severity
	// OnBrokenAnchors applies to #fragments missing on the target page
	OnBrokenAnchors report.Severity

	I18n   I18nConfig
	Docs   DocsConfig
	Blog   BlogConfig
	Navbar NavbarConfig
	Footer FooterConfig
	Prism  PrismConfig

	// Image is the social card image path relative to the base URL
	Image string
}

// I18nConfig lists the locales the site is built for.
type I18nConfig struct {
	DefaultLocale string
	Locales       []string
}

// DocsConfig configures the documentation tree.
type DocsConfig struct {
	// Path is the content directory under the site dir
	Path string
	// RouteBasePath is the URL segment under the base URL
	RouteBasePath string
	// SidebarID names the autogenerated sidebar
	SidebarID string
	// EditURL is the repository prefix for "Edit this page" links; empty hides them
	EditURL string
}

// BlogConfig configures the blog.
type BlogConfig struct {
	Path          string
	RouteBasePath string
	Title         string
	Description   string
	// ShowReadingTime renders "N min read" on posts
	ShowReadingTime bool
	// FeedTypes is any of "rss" and "atom"
	FeedTypes []string
	// FeedXSLT writes browser stylesheets next to the feeds
	FeedXSLT bool
	EditURL  string
	// PostsPerPage paginates the blog list
	PostsPerPage int

	OnInlineTags           report.Severity
	OnInlineAuthors        report.Severity
	OnUntruncatedBlogPosts report.Severity
}

// PrismConfig names the code highlighting themes.
type PrismConfig struct {
	Theme     string
	DarkTheme string
}

// Logo is the navbar logo.
type Logo struct {
	Alt string
	Src string
}

// NavbarConfig configures the top navigation bar.
type NavbarConfig struct {
	Title string
	Logo  Logo
	Items []NavItem
}

// Navbar item types.
const (
	NavItemDefault    = ""
	NavItemDocSidebar = "docSidebar"
)

// NavItem is one navbar entry. Exactly one of To, Href or SidebarID is set.
type NavItem struct {
	// Type is NavItemDefault or NavItemDocSidebar
	Type string
	// SidebarID links to the first doc of that sidebar
	SidebarID string
	// To is an internal path, resolved against the base URL
	To string
	// Href is an external URL, used verbatim
	Href string
	// Label is the link text
	Label string
	// Position is "left" or "right"
	Position string
}

// FooterConfig configures the page footer.
type FooterConfig struct {
	// Style is "dark" or "light"
	Style     string
	Links     []FooterGroup
	Copyright string
}

// FooterGroup is one titled column of footer links.
type FooterGroup struct {
	Title string
	Items []FooterLink
}

// FooterLink is a footer entry; To is internal, Href external.
type FooterLink struct {
	Label string
	To    string
	Href  string
}

// NavLink is a resolved link ready for rendering.
type NavLink struct {
	// Label is the link text
	Label string
	// URL is the final href
	URL string
	// External indicates if the link opens in a new tab
	External bool
	// Active marks the link matching the current page
	Active bool
}

// Feature is a homepage highlight card.
type Feature struct {
	// Title is the card heading
	Title string
	// Graphic is the illustration path relative to the base URL
	Graphic string
	// Description is the card body text
	Description string
	// Link is an optional call-to-action target; empty hides the button
	Link string
}

// ModuleCategory groups products under a label and icon.
type ModuleCategory struct {
	// Title is the category name
	Title string
	// Description is a one-line summary
	Description string
	// Icon is an emoji glyph
	Icon string
	// Modules are product names in display order
	Modules []string
}

// Stat is a headline number on the homepage.
type Stat struct {
	// Value is the number as displayed (e.g. "50+")
	Value string
	// Label describes the number
	Label string
}

// CTAButton is a call-to-action button.
type CTAButton struct {
	Label string
	// To is an internal path resolved against the base URL
	To      string
	Primary bool
}

// PageConfig defines the <head> metadata of a single page.
type PageConfig struct {
	// Title is the full page title (shown in browser tab and search results)
	Title string
	// Description is the meta description
	Description string
	// URL is the absolute canonical URL of the page
	URL string
	// Keywords are SEO keywords for the page
	Keywords []string
	// OGImage is the absolute Open Graph image URL
	OGImage string
	// OGType is "website" or "article"
	OGType string
	// Language is the html lang attribute (default: "en")
	Language string
	// Favicon is the resolved favicon href
	Favicon string
	// Feeds are alternate links for the blog feeds
	Feeds []FeedLink
	// BuildID is emitted as a generator hint for cache busting
	BuildID string
	// NoIndex adds robots noindex (404 page)
	NoIndex bool
	// CSS is the page stylesheet
	CSS string
}

// FeedLink is a <link rel="alternate"> to a feed.
type FeedLink struct {
	Type  string
	Title string
	Href  string
}
