package website

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jigarkkarangiya/docs/internal/report"
)

func TestDefaultSiteConfig_Literals(t *testing.T) {
	cfg := DefaultSiteConfig()

	assert.Equal(t, "Jigar Karangiya - Magento 2 Modules Documentation", cfg.Title)
	assert.Equal(t, "Documentation for Magento 2 Modules by Jigar Karangiya", cfg.Tagline)
	assert.Equal(t, "https://jigarkkarangiya.github.io", cfg.URL)
	assert.Equal(t, "/docs/", cfg.BaseURL)
	assert.Equal(t, "img/favicon.ico", cfg.Favicon)
	assert.Equal(t, "en", cfg.I18n.DefaultLocale)
	assert.Equal(t, []string{"en"}, cfg.I18n.Locales)
	assert.Equal(t, report.Throw, cfg.OnBrokenLinks)
	assert.Equal(t, report.Warn, cfg.OnBrokenMarkdownLinks)
	assert.Equal(t, "gh-pages", cfg.DeploymentBranch)
	assert.Equal(t, "https://github.com/jigarkkarangiya/docs/tree/main/", cfg.Docs.EditURL)
	assert.Equal(t, []string{"rss", "atom"}, cfg.Blog.FeedTypes)
	require.NoError(t, cfg.Validate())
}

func TestDefaultSiteConfig_Navbar(t *testing.T) {
	cfg := DefaultSiteConfig()

	require.Len(t, cfg.Navbar.Items, 2)
	assert.Equal(t, "Jigar Karangiya", cfg.Navbar.Title)
	assert.Equal(t, "Tutorial", cfg.Navbar.Items[0].Label)
	assert.Equal(t, NavItemDocSidebar, cfg.Navbar.Items[0].Type)
	assert.Equal(t, "Blog", cfg.Navbar.Items[1].Label)
	assert.Equal(t, "/blog", cfg.Navbar.Items[1].To)
}

func TestDefaultSiteConfig_Footer(t *testing.T) {
	cfg := DefaultSiteConfig()

	type pair struct{ label, target string }
	want := []struct {
		title string
		links []pair
	}{
		{"Docs", []pair{{"Tutorial", "docs/intro"}}},
		{"Community", []pair{
			{"Magento Stack Exchange", "https://magento.stackexchange.com/users/95447/jigar-karangiya"},
			{"LinkedIn", "https://www.linkedin.com/in/jigar-ahir/"},
		}},
		{"More", []pair{
			{"Blog", "/blog"},
			{"Development Tutorials", "https://jigarkarangiya.com/"},
			{"Contact", "https://jigarkarangiya.com/newsletter/"},
			{"GitHub", "https://github.com/jigarkkarangiya/docs"},
			{"Newsletter", "https://jigarkarangiya.com/newsletter/"},
		}},
	}

	assert.Equal(t, "dark", cfg.Footer.Style)
	require.Len(t, cfg.Footer.Links, len(want))
	for i, group := range cfg.Footer.Links {
		assert.Equal(t, want[i].title, group.Title)
		require.Len(t, group.Items, len(want[i].links), group.Title)
		for j, item := range group.Items {
			target := item.Href
			if target == "" {
				target = item.To
			}
			assert.Equal(t, want[i].links[j], pair{item.Label, target})
		}
	}
	assert.Contains(t, cfg.Footer.Copyright, "Jigar Karangiya. All rights reserved.")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SiteConfig)
	}{
		{"relative url", func(c *SiteConfig) { c.URL = "example.com" }},
		{"url with path", func(c *SiteConfig) { c.URL = "https://example.com/docs" }},
		{"base without slash", func(c *SiteConfig) { c.BaseURL = "/docs" }},
		{"unknown default locale", func(c *SiteConfig) { c.I18n.DefaultLocale = "fr" }},
		{"bad severity", func(c *SiteConfig) { c.OnBrokenLinks = "explode" }},
		{"bad feed", func(c *SiteConfig) { c.Blog.FeedTypes = []string{"json"} }},
		{"zero page size", func(c *SiteConfig) { c.Blog.PostsPerPage = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSiteConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, to, want string
	}{
		{"/docs/", "docs/intro", "/docs/docs/intro"},
		{"/docs/", "/blog", "/docs/blog"},
		{"/docs/", "/docs/intro", "/docs/intro"},
		{"/docs/", "/docs", "/docs/"},
		{"/docs/", "", ""},
		{"/docs/", "#top", "#top"},
		{"/docs/", "https://example.com/x", "https://example.com/x"},
		{"/docs/", "mailto:me@example.com", "mailto:me@example.com"},
		{"/", "blog", "/blog"},
		{"/", "/", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinURL(tt.base, tt.to), "JoinURL(%q, %q)", tt.base, tt.to)
	}
}

func TestLocaleBaseURL(t *testing.T) {
	cfg := DefaultSiteConfig()
	cfg.I18n.Locales = []string{"en", "fr"}

	assert.Equal(t, "/docs/", cfg.LocaleBaseURL("en"))
	assert.Equal(t, "/docs/fr/", cfg.LocaleBaseURL("fr"))
	assert.Equal(t, "https://jigarkkarangiya.github.io/docs/blog", cfg.AbsoluteURL("/docs/blog"))
}

func TestResolveLinks(t *testing.T) {
	first := func(id string) string { return "/docs/docs/intro" }

	nav := ResolveNavItem("/docs/", NavItem{Type: NavItemDocSidebar, SidebarID: "tutorialSidebar", Label: "Tutorial"}, first)
	assert.Equal(t, NavLink{Label: "Tutorial", URL: "/docs/docs/intro"}, nav)

	ext := ResolveFooterLink("/docs/", FooterLink{Label: "LinkedIn", Href: "https://www.linkedin.com/in/jigar-ahir/"})
	assert.True(t, ext.External)
	assert.Equal(t, "https://www.linkedin.com/in/jigar-ahir/", ext.URL)

	internal := ResolveFooterLink("/docs/", FooterLink{Label: "Blog", To: "/blog"})
	assert.False(t, internal.External)
	assert.Equal(t, "/docs/blog", internal.URL)
}
