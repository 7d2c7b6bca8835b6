package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_TitleAndTOC(t *testing.T) {
	md := NewMarkdown("github")

	src := []byte("# Getting Started\n\nSome intro text here.\n\n## Install the module\n\n### Via Composer\n\n#### Deep\n")
	out, err := md.Convert(src, nil)
	require.NoError(t, err)

	assert.Equal(t, "Getting Started", out.Title)
	require.Len(t, out.TOC, 2)
	assert.Equal(t, Heading{Level: 2, ID: "install-the-module", Text: "Install the module"}, out.TOC[0])
	assert.Equal(t, 3, out.TOC[1].Level)
	assert.Equal(t, "via-composer", out.TOC[1].ID)
	assert.Contains(t, out.HTML, `<h2 id="install-the-module">`)
}

func TestConvert_RewritesMarkdownLinks(t *testing.T) {
	md := NewMarkdown("github")

	resolve := func(dest string) (string, bool) {
		if dest == "./setup.md#composer" {
			return "/docs/docs/setup#composer", true
		}
		return "", false
	}

	src := []byte("See [setup](./setup.md#composer), [missing](./nope.md) and [site](https://example.com/a.md).\n")
	out, err := md.Convert(src, resolve)
	require.NoError(t, err)

	assert.Contains(t, out.HTML, `href="/docs/docs/setup#composer"`)
	assert.Contains(t, out.HTML, `href="./nope.md"`)
	assert.Contains(t, out.HTML, `href="https://example.com/a.md"`)
	assert.Equal(t, []string{"./nope.md"}, out.BrokenLinks)
}

func TestConvert_HighlightsCode(t *testing.T) {
	md := NewMarkdown("github")

	out, err := md.Convert([]byte("```php\n<?php echo 'hi';\n```\n"), nil)
	require.NoError(t, err)
	assert.Contains(t, out.HTML, `class="chroma"`)
}

func TestIsMarkdownLink(t *testing.T) {
	tests := map[string]bool{
		"intro.md":               true,
		"../a/b.mdx#x":           true,
		"/docs/intro.md":         true,
		"intro":                  false,
		"#anchor":                false,
		"https://x.io/a.md":      false,
		"mailto:someone@x.io":    false,
		"//cdn.example.com/a.md": false,
	}
	for dest, want := range tests {
		assert.Equal(t, want, IsMarkdownLink(dest), dest)
	}
}

func TestParseFrontMatter(t *testing.T) {
	var fm struct {
		Title string `yaml:"title"`
	}
	body, err := ParseFrontMatter([]byte("---\ntitle: Hello\n---\nBody\n"), &fm)
	require.NoError(t, err)
	assert.Equal(t, "Hello", fm.Title)
	assert.Equal(t, "Body\n", string(body))

	body, err = ParseFrontMatter([]byte("No front matter\n"), &fm)
	require.NoError(t, err)
	assert.Equal(t, "No front matter\n", string(body))
}

func TestSplitTruncate(t *testing.T) {
	summary, ok := SplitTruncate([]byte("Intro\n\n<!-- truncate -->\n\nRest\n"))
	assert.True(t, ok)
	assert.Equal(t, "Intro\n\n", string(summary))

	_, ok = SplitTruncate([]byte("No marker\n"))
	assert.False(t, ok)
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(0))
	assert.Equal(t, 1, ReadingTime(300))
	assert.Equal(t, 2, ReadingTime(301))
	assert.Equal(t, 4, ReadingTime(1000))
}

func TestTitleAndSlug(t *testing.T) {
	assert.Equal(t, "Tutorial Basics", TitleFromName("tutorial-basics"))
	assert.Equal(t, "Create A Page", TitleFromName("create_a_page.md"))
	assert.Equal(t, "magento-2-seo", Slugify("  Magento 2 SEO "))
	assert.Equal(t, "payment-checkout", Slugify("Payment & Checkout"))
}
