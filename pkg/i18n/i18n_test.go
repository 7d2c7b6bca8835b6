package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestT_FallbackAndVerbatim(t *testing.T) {
	tr := NewTranslator("en")
	tr.Load("fr", map[string]string{"theme.NotFound.title": "Page introuvable"})

	assert.Equal(t, "Page introuvable", tr.T("fr", "theme.NotFound.title", nil))
	assert.Equal(t, "Edit this page", tr.T("fr", "theme.common.editThisPage", nil), "falls back to en")
	assert.Equal(t, "no.such.id", tr.T("fr", "no.such.id", nil))
	assert.Equal(t, "Skip to main content", tr.T("de", "theme.common.skipToMainContent", nil))
}

func TestT_Interpolates(t *testing.T) {
	tr := NewTranslator("en")
	tr.Load("en", map[string]string{"greeting": "Hello {name}, {name}!"})

	assert.Equal(t, "Hello Jigar, Jigar!", tr.T("en", "greeting", map[string]any{"name": "Jigar"}))
	assert.Equal(t, "Hello {name}, {name}!", tr.T("en", "greeting", nil))
}

func TestPlural(t *testing.T) {
	tr := NewTranslator("en")

	tests := []struct {
		count int
		want  string
	}{
		{0, `0 posts tagged with "SEO"`},
		{1, `1 post tagged with "SEO"`},
		{5, `5 posts tagged with "SEO"`},
	}
	for _, tt := range tests {
		got := tr.Plural("en", "theme.blog.tagTitle", tt.count, map[string]any{"tagName": "SEO"})
		assert.Equal(t, tt.want, got)
	}
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"i18n/fr/code.json": {Data: []byte(`{
  "theme.NotFound.title": {"message": "Page introuvable", "description": "404 title"},
  "homepage.hero.cta": {"message": "Commencer"}
}`)},
		"i18n/de/code.yml": {Data: []byte("homepage.hero.cta:\n  message: Loslegen\n")},
	}

	tr := NewTranslator("en")
	require.NoError(t, tr.LoadDir(fsys, "i18n", []string{"en", "fr", "de", "es"}))

	assert.Equal(t, "Page introuvable", tr.T("fr", "theme.NotFound.title", nil))
	assert.Equal(t, "Commencer", tr.T("fr", "homepage.hero.cta", nil))
	assert.Equal(t, "Loslegen", tr.T("de", "homepage.hero.cta", nil))
	assert.Equal(t, "Get Started", tr.T("es", "homepage.hero.cta", nil))
	assert.Equal(t, []string{"de", "en", "fr"}, tr.Locales())
}

func TestLoadDir_Invalid(t *testing.T) {
	fsys := fstest.MapFS{
		"i18n/fr/code.json": {Data: []byte(`{"broken": [`)},
	}
	err := NewTranslator("en").LoadDir(fsys, "i18n", []string{"fr"})
	assert.Error(t, err)
}

func TestDefaultMessages_CoverUI(t *testing.T) {
	msgs := DefaultMessages()
	for _, id := range []string{
		"theme.common.skipToMainContent",
		"theme.docs.paginator.previous",
		"theme.docs.paginator.next",
		"theme.blog.paginator.newerEntries",
		"theme.blog.paginator.olderEntries",
		"theme.NotFound.title",
	} {
		assert.NotEmpty(t, msgs[id], id)
	}
}
