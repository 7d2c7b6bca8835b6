package website

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/jigarkkarangiya/docs/internal/report"
)

const (
	organizationName = "jigarkkarangiya"
	projectName      = "docs"
)

// DefaultSiteConfig returns the site configuration.
func DefaultSiteConfig() SiteConfig {
	editURL := fmt.Sprintf("https://github.com/%s/%s/tree/main/", organizationName, projectName)

	return SiteConfig{
		Title:   "Jigar Karangiya - Magento 2 Modules Documentation",
		Tagline: "Documentation for Magento 2 Modules by Jigar Karangiya",
		Favicon: "img/favicon.ico",

		URL:     fmt.Sprintf("https://%s.github.io", organizationName),
		BaseURL: fmt.Sprintf("/%s/", projectName),

		OrganizationName: organizationName,
		ProjectName:      projectName,
		DeploymentBranch: "gh-pages",

		OnBrokenLinks:         report.Throw,
		OnBrokenMarkdownLinks: report.Warn,
		OnBrokenAnchors:       report.Warn,

		I18n: I18nConfig{
			DefaultLocale: "en",
			Locales:       []string{"en"},
		},

		Docs: DocsConfig{
			Path:          "docs",
			RouteBasePath: "docs",
			SidebarID:     "tutorialSidebar",
			EditURL:       editURL,
		},

		Blog: BlogConfig{
			Path:                   "blog",
			RouteBasePath:          "blog",
			Title:                  "Blog",
			Description:            "Blog",
			ShowReadingTime:        true,
			FeedTypes:              []string{"rss", "atom"},
			FeedXSLT:               true,
			EditURL:                editURL,
			PostsPerPage:           10,
			OnInlineTags:           report.Warn,
			OnInlineAuthors:        report.Warn,
			OnUntruncatedBlogPosts: report.Warn,
		},

		Image: "img/docusaurus-social-card.jpg",

		Navbar: NavbarConfig{
			Title: "Jigar Karangiya",
			Logo: Logo{
				Alt: "My Site Logo",
				Src: "img/logo.svg",
			},
			Items: []NavItem{
				{
					Type:      NavItemDocSidebar,
					SidebarID: "tutorialSidebar",
					Position:  "left",
					Label:     "Tutorial",
				},
				{To: "/blog", Label: "Blog", Position: "left"},
			},
		},

		Footer: FooterConfig{
			Style: "dark",
			Links: []FooterGroup{
				{
					Title: "Docs",
					Items: []FooterLink{
						{Label: "Tutorial", To: "docs/intro"},
					},
				},
				{
					Title: "Community",
					Items: []FooterLink{
						{Label: "Magento Stack Exchange", Href: "https://magento.stackexchange.com/users/95447/jigar-karangiya"},
						{Label: "LinkedIn", Href: "https://www.linkedin.com/in/jigar-ahir/"},
					},
				},
				{
					Title: "More",
					Items: []FooterLink{
						{Label: "Blog", To: "/blog"},
						{Label: "Development Tutorials", Href: "https://jigarkarangiya.com/"},
						{Label: "Contact", Href: "https://jigarkarangiya.com/newsletter/"},
						{Label: "GitHub", Href: fmt.Sprintf("https://github.com/%s/%s", organizationName, projectName)},
						{Label: "Newsletter", Href: "https://jigarkarangiya.com/newsletter/"},
					},
				},
			},
			Copyright: fmt.Sprintf("Copyright © %d Jigar Karangiya. All rights reserved.", time.Now().Year()),
		},

		Prism: PrismConfig{
			Theme:     "github",
			DarkTheme: "dracula",
		},
	}
}

// Validate checks the config for values the build cannot work with.
func (c SiteConfig) Validate() error {
	var errs []error

	if c.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}

	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("url %q must be an absolute http(s) URL", c.URL))
	} else if u.Path != "" && u.Path != "/" {
		errs = append(errs, fmt.Errorf("url %q must not contain a path; use baseUrl", c.URL))
	}

	if !strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/") {
		errs = append(errs, fmt.Errorf("baseUrl %q must start and end with /", c.BaseURL))
	}

	if c.I18n.DefaultLocale == "" {
		errs = append(errs, errors.New("i18n default locale is required"))
	} else if !slices.Contains(c.I18n.Locales, c.I18n.DefaultLocale) {
		errs = append(errs, fmt.Errorf("i18n default locale %q is not in locales %v", c.I18n.DefaultLocale, c.I18n.Locales))
	}

	for name, sev := range map[string]report.Severity{
		"onBrokenLinks":          c.OnBrokenLinks,
		"onBrokenMarkdownLinks":  c.OnBrokenMarkdownLinks,
		"onBrokenAnchors":        c.OnBrokenAnchors,
		"onInlineTags":           c.Blog.OnInlineTags,
		"onInlineAuthors":        c.Blog.OnInlineAuthors,
		"onUntruncatedBlogPosts": c.Blog.OnUntruncatedBlogPosts,
	} {
		if !sev.Valid() {
			errs = append(errs, fmt.Errorf("%s: unknown severity %q", name, sev))
		}
	}

	for _, ft := range c.Blog.FeedTypes {
		if ft != "rss" && ft != "atom" {
			errs = append(errs, fmt.Errorf("unknown blog feed type %q", ft))
		}
	}

	if c.Blog.PostsPerPage < 1 {
		errs = append(errs, errors.New("blog posts per page must be positive"))
	}

	return errors.Join(errs...)
}

// LocaleBaseURL returns the base URL pages of a locale are served under.
func (c SiteConfig) LocaleBaseURL(locale string) string {
	if locale == "" || locale == c.I18n.DefaultLocale {
		return c.BaseURL
	}
	return c.BaseURL + locale + "/"
}

// AbsoluteURL prefixes a site path with the production origin.
func (c SiteConfig) AbsoluteURL(path string) string {
	return strings.TrimSuffix(c.URL, "/") + path
}

// JoinURL resolves an internal link target against a base URL. Empty
// targets, fragments and URLs with a scheme are returned as-is; a target that
// already carries the base is not prefixed twice.
func JoinURL(base, to string) string {
	if to == "" || strings.HasPrefix(to, "#") || HasScheme(to) {
		return to
	}
	if to == strings.TrimSuffix(base, "/") {
		return base
	}
	if strings.HasPrefix(to, base) {
		return to
	}
	return base + strings.TrimPrefix(to, "/")
}

// HasScheme reports whether s is an absolute or protocol-relative URL.
func HasScheme(s string) bool {
	if strings.HasPrefix(s, "//") {
		return true
	}
	i := strings.Index(s, ":")
	if i <= 0 {
		return false
	}
	for _, r := range s[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// ResolveFooterLink turns a footer entry into a rendered link.
func ResolveFooterLink(base string, l FooterLink) NavLink {
	if l.Href != "" {
		return NavLink{Label: l.Label, URL: l.Href, External: true}
	}
	return NavLink{Label: l.Label, URL: JoinURL(base, l.To)}
}

// ResolveNavItem turns a navbar entry into a rendered link. firstDoc maps a
// sidebar id to the URL of its first doc.
func ResolveNavItem(base string, item NavItem, firstDoc func(sidebarID string) string) NavLink {
	switch {
	case item.Type == NavItemDocSidebar:
		to := ""
		if firstDoc != nil {
			to = firstDoc(item.SidebarID)
		}
		return NavLink{Label: item.Label, URL: to}
	case item.Href != "":
		return NavLink{Label: item.Label, URL: item.Href, External: true}
	default:
		return NavLink{Label: item.Label, URL: JoinURL(base, item.To)}
	}
}
