package website

import (
	"fmt"
	"slices"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Colors is the light palette. Names map to --ifm-* custom properties.
var Colors = map[string]string{
	// Brand
	"primary":        "#2e8555",
	"primary-dark":   "#29784c",
	"primary-darker": "#277148",
	"primary-light":  "#33925d",
	"secondary":      "#ebedf0",

	// Surfaces
	"background":  "#ffffff",
	"surface":     "#f6f8fa",
	"footer-dark": "#303846",
	"border":      "#dadde1",

	// Text
	"font":       "#1c1e21",
	"font-muted": "#525860",
	"link":       "#2e8555",
}

// DarkColors override Colors when the reader prefers a dark color scheme.
var DarkColors = map[string]string{
	"primary":        "#25c2a0",
	"primary-dark":   "#21af90",
	"primary-darker": "#1fa588",
	"primary-light":  "#29d5b0",
	"secondary":      "#444950",
	"background":     "#1b1b1d",
	"surface":        "#242526",
	"border":         "#444950",
	"font":           "#e3e3e3",
	"font-muted":     "#b4b4b4",
	"link":           "#25c2a0",
}

// Typography uses system font stack for instant loading
var FontFamily = `system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Ubuntu, Cantarell, 'Noto Sans', sans-serif`
var FontMono = `SFMono-Regular, Menlo, Monaco, Consolas, 'Liberation Mono', 'Courier New', monospace`

// StyleOption allows customizing the generated CSS
type StyleOption func(*styleConfig)

type styleConfig struct {
	customColors    map[string]string
	includeReset    bool
	includeDarkMode bool
	highlightCSS    string
}

// WithCustomColors overrides default colors
func WithCustomColors(colors map[string]string) StyleOption {
	return func(cfg *styleConfig) {
		for k, v := range colors {
			cfg.customColors[k] = v
		}
	}
}

// WithReset includes a CSS reset
func WithReset(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeReset = include
	}
}

// WithDarkMode includes the prefers-color-scheme: dark palette
func WithDarkMode(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeDarkMode = include
	}
}

// WithHighlightCSS appends code highlighting rules, see HighlightCSS.
func WithHighlightCSS(css string) StyleOption {
	return func(cfg *styleConfig) {
		cfg.highlightCSS = css
	}
}

// RenderStyles generates the complete CSS shared by every page.
func RenderStyles(opts ...StyleOption) string {
	cfg := &styleConfig{
		customColors:    make(map[string]string),
		includeReset:    true,
		includeDarkMode: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Merge custom colors
	colors := make(map[string]string)
	for k, v := range Colors {
		colors[k] = v
	}
	for k, v := range cfg.customColors {
		colors[k] = v
	}

	var sb strings.Builder

	if cfg.includeReset {
		sb.WriteString(cssReset())
	}

	sb.WriteString(cssVariables(":root", colors))
	if cfg.includeDarkMode {
		sb.WriteString("@media (prefers-color-scheme: dark){")
		sb.WriteString(cssVariables(":root", DarkColors))
		sb.WriteString("}\n")
	}

	sb.WriteString(cssBase())
	sb.WriteString(cssGrid())
	sb.WriteString(cssButtons())
	sb.WriteString(cssNavbar())
	sb.WriteString(cssFooter())
	sb.WriteString(cssHomepage())
	sb.WriteString(cssDocs())
	sb.WriteString(cssBlog())
	sb.WriteString(cssMarkdown())
	sb.WriteString(cssAccessibility())
	sb.WriteString(cssResponsive())

	if cfg.highlightCSS != "" {
		sb.WriteString(cfg.highlightCSS)
	}

	return sb.String()
}

// HighlightCSS returns the chroma class rules for the light theme and, wrapped
// in a dark color scheme media query, the dark theme. Unknown theme names fall
// back to chroma's default style.
func HighlightCSS(theme, darkTheme string) (string, error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var sb strings.Builder
	if err := formatter.WriteCSS(&sb, styles.Get(theme)); err != nil {
		return "", fmt.Errorf("write %s highlight css: %w", theme, err)
	}

	if darkTheme != "" && darkTheme != theme {
		sb.WriteString("\n@media (prefers-color-scheme: dark){\n")
		if err := formatter.WriteCSS(&sb, styles.Get(darkTheme)); err != nil {
			return "", fmt.Errorf("write %s highlight css: %w", darkTheme, err)
		}
		sb.WriteString("}\n")
	}

	return sb.String(), nil
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box}
html{-webkit-text-size-adjust:100%;tab-size:4;scroll-behavior:smooth}
body{margin:0;line-height:1.65;-webkit-font-smoothing:antialiased}
img,svg{max-width:100%}
`
}

func cssVariables(selector string, colors map[string]string) string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	// Stable output keeps rebuilt pages byte-identical.
	slices.Sort(names)

	vars := make([]string, 0, len(names))
	for _, name := range names {
		vars = append(vars, fmt.Sprintf("--ifm-color-%s:%s", name, colors[name]))
	}
	return fmt.Sprintf("%s{%s;--ifm-font-family-base:%s;--ifm-font-family-monospace:%s}\n",
		selector, strings.Join(vars, ";"), FontFamily, FontMono)
}

func cssBase() string {
	return `
body{font-family:var(--ifm-font-family-base);background:var(--ifm-color-background);color:var(--ifm-color-font)}
a{color:var(--ifm-color-link);text-decoration:none}
a:hover{text-decoration:underline}
h1,h2,h3,h4{line-height:1.25;margin:0 0 1rem}
h1{font-size:2.5rem}
h2{font-size:2rem}
h3{font-size:1.5rem}
p{margin:0 0 1.25rem}
code{font-family:var(--ifm-font-family-monospace);font-size:90%;background:var(--ifm-color-surface);border:1px solid var(--ifm-color-border);border-radius:.4rem;padding:.1rem .25rem}
pre code{border:none;padding:0;background:none}
.main-wrapper{flex:1 0 auto;display:flex;flex-direction:column}
body{display:flex;flex-direction:column;min-height:100vh}
`
}

func cssGrid() string {
	// Mobile-first: columns stack until the desktop breakpoint
	return `
.container{width:100%;max-width:1140px;margin:0 auto;padding:0 1rem}
.row{display:flex;flex-wrap:wrap;margin:0 -1rem}
.col{flex:1 0 100%;max-width:100%;padding:0 1rem}
.text--center{text-align:center}
.padding-horiz--md{padding-left:1rem;padding-right:1rem}
.padding-vert--lg{padding-top:2rem;padding-bottom:2rem}
.margin-bottom--lg{margin-bottom:2rem}
`
}

func cssButtons() string {
	return `
.button{display:inline-block;border:1px solid transparent;border-radius:.4rem;cursor:pointer;font-weight:700;line-height:1.5;padding:.375rem 1.5rem;text-align:center;user-select:none;white-space:nowrap;transition:background .2s ease}
.button:hover{text-decoration:none}
.button--lg{font-size:1.2rem;padding:.5rem 2rem}
.button--primary{background:var(--ifm-color-primary);border-color:var(--ifm-color-primary);color:#fff}
.button--primary:hover{background:var(--ifm-color-primary-dark)}
.button--secondary{background:var(--ifm-color-secondary);border-color:var(--ifm-color-secondary);color:#1c1e21}
.button--secondary:hover{filter:brightness(.95)}
.button--outline{background:transparent;color:var(--ifm-color-primary);border-color:var(--ifm-color-primary)}
`
}

func cssNavbar() string {
	return `
.navbar{position:sticky;top:0;z-index:100;display:flex;align-items:center;height:3.75rem;padding:.5rem 1rem;background:var(--ifm-color-background);box-shadow:0 1px 2px 0 rgba(0,0,0,.1)}
.navbar__inner{display:flex;flex-wrap:wrap;justify-content:space-between;width:100%}
.navbar__items{display:flex;align-items:center;flex:1;min-width:0}
.navbar__items--right{justify-content:flex-end;flex:0 0 auto}
.navbar__brand{display:flex;align-items:center;margin-right:1rem;color:var(--ifm-color-font)}
.navbar__logo{height:2rem;margin-right:.5rem}
.navbar__title{font-weight:700}
.navbar__link{display:none;padding:.25rem .75rem;font-weight:500;color:var(--ifm-color-font)}
.navbar__link:hover,.navbar__link--active{color:var(--ifm-color-primary);text-decoration:none}
`
}

func cssFooter() string {
	return `
.footer{padding:2rem 1rem;background:var(--ifm-color-surface);color:var(--ifm-color-font)}
.footer--dark{background:var(--ifm-color-footer-dark);color:#ebedf0}
.footer__links{margin-bottom:1rem}
.footer__title{font-weight:700;font-size:1rem;margin-bottom:.5rem}
.footer__items{list-style:none;margin:0;padding:0}
.footer__item{margin:.25rem 0}
.footer__link-item{color:inherit;line-height:2}
.footer--dark .footer__link-item:hover{color:var(--ifm-color-primary-light)}
.footer__copyright{text-align:center;margin-top:1rem}
`
}

func cssHomepage() string {
	return `
.hero{padding:4rem 0;text-align:center}
.hero--primary{background:var(--ifm-color-primary);color:#fff}
.hero__title{font-size:3rem}
.hero__subtitle{font-size:1.5rem}
.heroButtons{display:flex;align-items:center;justify-content:center}
.features,.moduleCategories{display:flex;align-items:center;padding:2rem 0;width:100%}
.sectionDescription{font-size:1.2rem;color:var(--ifm-color-font-muted);margin-bottom:2rem}
.featureSvg{height:200px;width:200px}
.categoryIcon{font-size:3rem;margin-bottom:1rem}
.moduleList{list-style:none;padding:0;margin:0 0 2rem}
.moduleList li{padding:.25rem 0;color:var(--ifm-color-font-muted)}
.statsSection{padding:3rem 0;background:var(--ifm-color-surface)}
.statNumber{font-size:2.5rem;font-weight:800;color:var(--ifm-color-primary)}
.statLabel{font-size:1rem;color:var(--ifm-color-font-muted);margin-bottom:1rem}
.ctaSection{padding:4rem 0;background:var(--ifm-color-surface)}
.ctaDescription{font-size:1.2rem;max-width:640px;margin:0 auto 2rem}
.ctaButtons{display:flex;gap:1rem;justify-content:center;flex-wrap:wrap}
`
}

func cssDocs() string {
	return `
.docsWrapper{display:flex;flex:1 0 auto}
.sidebar{display:none;width:300px;flex-shrink:0;padding:1rem .5rem;border-right:1px solid var(--ifm-color-border);font-size:.95rem}
.menu__list{list-style:none;margin:0;padding-left:0}
.menu__list .menu__list{padding-left:1rem}
.menu__link{display:block;padding:.375rem .75rem;border-radius:.25rem;color:var(--ifm-color-font)}
.menu__link:hover{background:var(--ifm-color-surface);text-decoration:none}
.menu__link--active{color:var(--ifm-color-primary);background:var(--ifm-color-surface);font-weight:600}
.menu__caption{display:block;padding:.375rem .75rem;font-weight:700}
.docMainContainer{flex-grow:1;max-width:100%;padding:2rem 1rem}
.docItemCol{max-width:100%}
.toc{display:none;position:sticky;top:4.5rem;max-height:calc(100vh - 5rem);overflow-y:auto;font-size:.85rem;border-left:1px solid var(--ifm-color-border);padding-left:.75rem}
.toc__title{font-weight:700;margin-bottom:.5rem}
.table-of-contents{list-style:none;margin:0;padding:0}
.table-of-contents ul{list-style:none;padding-left:1rem}
.table-of-contents__link{display:block;padding:.15rem 0;color:var(--ifm-color-font-muted)}
.breadcrumbs{list-style:none;display:flex;gap:.5rem;padding:0;margin:0 0 1rem;font-size:.85rem}
.breadcrumbs__item:not(:last-child)::after{content:"›";margin-left:.5rem;color:var(--ifm-color-font-muted)}
.theme-edit-this-page{display:inline-block;margin-top:2rem}
.pagination-nav{display:grid;grid-template-columns:1fr 1fr;gap:1rem;margin-top:2rem}
.pagination-nav__link{display:block;border:1px solid var(--ifm-color-border);border-radius:.4rem;padding:1rem;line-height:1.25}
.pagination-nav__link:hover{border-color:var(--ifm-color-primary);text-decoration:none}
.pagination-nav__link--next{grid-column:2;text-align:right}
.pagination-nav__sublabel{display:block;font-size:.8rem;color:var(--ifm-color-font-muted);margin-bottom:.25rem}
.pagination-nav__label{font-weight:700;word-break:break-word}
`
}

func cssBlog() string {
	return `
.blogPostList{padding:2rem 0}
.blogPost{margin-bottom:3rem}
.blogPostTitle a{color:var(--ifm-color-font)}
.blogPostMeta{font-size:.9rem;color:var(--ifm-color-font-muted);margin-bottom:1rem}
.authorList{display:flex;flex-wrap:wrap;gap:1rem;margin-bottom:1rem}
.author{display:flex;align-items:center;gap:.5rem}
.avatar{width:2.5rem;height:2.5rem;border-radius:50%}
.author__name{font-weight:600}
.author__title{display:block;font-size:.8rem;color:var(--ifm-color-font-muted)}
.tagList{list-style:none;display:flex;flex-wrap:wrap;gap:.5rem;padding:0;margin:1rem 0}
.tag{display:inline-block;border:1px solid var(--ifm-color-border);border-radius:.4rem;padding:.1rem .5rem;font-size:.85rem}
.tag__count{margin-left:.25rem;color:var(--ifm-color-font-muted)}
.archiveYear{margin-top:2rem}
.archiveList{list-style:none;padding:0}
.archiveList time{display:inline-block;min-width:7rem;color:var(--ifm-color-font-muted)}
.notFound{padding:4rem 0}
`
}

func cssMarkdown() string {
	return `
.markdown h2,.markdown h3{margin-top:2rem}
.markdown blockquote{margin:0 0 1.25rem;padding:0 1rem;border-left:.25rem solid var(--ifm-color-border);color:var(--ifm-color-font-muted)}
.markdown table{border-collapse:collapse;margin-bottom:1.25rem;display:block;overflow:auto}
.markdown th,.markdown td{border:1px solid var(--ifm-color-border);padding:.5rem .75rem}
.markdown pre{overflow:auto;padding:1rem;border-radius:.4rem;margin:0 0 1.25rem;font-size:.9rem}
.markdown img{height:auto}
.hash-link{opacity:0;padding-left:.5rem}
.markdown h2:hover .hash-link,.markdown h3:hover .hash-link{opacity:1}
`
}

func cssAccessibility() string {
	return `
.sr-only{position:absolute;width:1px;height:1px;padding:0;margin:-1px;overflow:hidden;clip:rect(0,0,0,0);white-space:nowrap;border:0}
.skipToContent{position:absolute;top:-40px;left:0;background:var(--ifm-color-primary);color:#fff;padding:.5rem 1rem;z-index:1000;font-weight:600}
.skipToContent:focus{top:0}
:focus-visible{outline:2px solid var(--ifm-color-primary);outline-offset:2px}
@media(prefers-reduced-motion:reduce){*{transition-duration:.01ms!important;scroll-behavior:auto!important}}
`
}

func cssResponsive() string {
	// Mobile-first: breakpoints use min-width
	return `
@media(min-width:997px){
.col--3{flex:0 0 25%;max-width:25%}
.col--4{flex:0 0 33.333%;max-width:33.333%}
.col--12{flex:0 0 100%;max-width:100%}
.navbar__link{display:block}
.sidebar{display:block}
.docMainContainer{max-width:calc(100% - 300px);padding:2rem}
.docItemCol{max-width:75%}
.toc{display:block}
.footer__links .col{flex:1 0 0}
}
@media(max-width:996px){
.hero{padding:2rem}
.hero__title{font-size:2rem}
}
`
}
