// Package i18n provides UI string catalogs for the generated site.
//
// Catalog files follow the Docusaurus code.json shape: a map from message id
// to {"message": "..."}. Because JSON is valid YAML they are decoded with
// yaml.v3, so code.yml files work as well.
package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Translator resolves message ids per locale with a fallback locale.
type Translator struct {
	translations map[string]map[string]string // locale -> id -> message
	fallback     string
	mu           sync.RWMutex
}

// NewTranslator creates a translator whose fallback locale already carries
// the English UI strings.
func NewTranslator(fallback string) *Translator {
	t := &Translator{
		translations: make(map[string]map[string]string),
		fallback:     fallback,
	}
	t.Load(fallback, DefaultMessages())
	return t
}

// Load merges translations for a locale.
func (t *Translator) Load(locale string, translations map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.translations[locale] == nil {
		t.translations[locale] = make(map[string]string)
	}
	for id, msg := range translations {
		t.translations[locale][id] = msg
	}
}

// T translates an id for a locale. Placeholders of the form {name} are
// replaced from vars. Unknown ids come back verbatim.
func (t *Translator) T(locale, id string, vars map[string]any) string {
	msg := t.get(locale, id)
	if msg == "" && locale != t.fallback {
		msg = t.get(t.fallback, id)
	}
	if msg == "" {
		msg = id
	}
	return interpolate(msg, vars)
}

// Plural picks "<id>.one" or "<id>.other" by count and sets {count}.
func (t *Translator) Plural(locale, id string, count int, vars map[string]any) string {
	form := "other"
	if count == 1 {
		form = "one"
	}
	merged := map[string]any{"count": count}
	for k, v := range vars {
		merged[k] = v
	}
	return t.T(locale, id+"."+form, merged)
}

// Locales returns the locales with loaded catalogs, sorted.
func (t *Translator) Locales() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	locales := make([]string, 0, len(t.translations))
	for locale := range t.translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

func (t *Translator) get(locale, id string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if m, ok := t.translations[locale]; ok {
		return m[id]
	}
	return ""
}

func interpolate(msg string, vars map[string]any) string {
	if len(vars) == 0 {
		return msg
	}
	for key, value := range vars {
		msg = strings.ReplaceAll(msg, "{"+key+"}", fmt.Sprint(value))
	}
	return msg
}

type catalogEntry struct {
	Message     string `yaml:"message"`
	Description string `yaml:"description"`
}

// LoadDir loads <dir>/<locale>/code.json (or code.yml) for every locale that
// has one. Missing catalogs are not an error.
func (t *Translator) LoadDir(fsys fs.FS, dir string, locales []string) error {
	for _, locale := range locales {
		for _, name := range []string{"code.json", "code.yml", "code.yaml"} {
			data, err := fs.ReadFile(fsys, path.Join(dir, locale, name))
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("read catalog %s/%s: %w", locale, name, err)
			}

			var entries map[string]catalogEntry
			if err := yaml.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("parse catalog %s/%s: %w", locale, name, err)
			}

			messages := make(map[string]string, len(entries))
			for id, e := range entries {
				messages[id] = e.Message
			}
			t.Load(locale, messages)
			break
		}
	}
	return nil
}

// DefaultMessages returns the English UI strings.
func DefaultMessages() map[string]string {
	return map[string]string{
		"homepage.feature.learnMore":         "Learn More",
		"homepage.hero.cta":                  "Get Started",
		"theme.common.skipToMainContent":     "Skip to main content",
		"theme.docs.paginator.previous":      "Previous",
		"theme.docs.paginator.next":          "Next",
		"theme.docs.sidebar.navAriaLabel":    "Docs sidebar",
		"theme.TOCCollapsible.toggleButton":  "On this page",
		"theme.common.editThisPage":          "Edit this page",
		"theme.blog.post.readMore":           "Read more",
		"theme.blog.post.readingTime.one":    "{count} min read",
		"theme.blog.post.readingTime.other":  "{count} min read",
		"theme.blog.paginator.newerEntries":  "Newer entries",
		"theme.blog.paginator.olderEntries":  "Older entries",
		"theme.blog.archive.title":           "Archive",
		"theme.blog.archive.description":     "Archive",
		"theme.blog.title":                   "Blog",
		"theme.tags.tagsPageTitle":           "Tags",
		"theme.tags.tagsListLabel":           "Tags:",
		"theme.blog.tagTitle.one":            "{count} post tagged with \"{tagName}\"",
		"theme.blog.tagTitle.other":          "{count} posts tagged with \"{tagName}\"",
		"theme.tags.tagsPageLink":            "View All Tags",
		"theme.NotFound.title":               "Page Not Found",
		"theme.NotFound.p1":                  "We could not find what you were looking for.",
		"theme.NotFound.p2":                  "Please contact the owner of the site that linked you to the original URL and let them know their link is broken.",
		"theme.blog.post.authorsLabel":       "Authors",
	}
}
