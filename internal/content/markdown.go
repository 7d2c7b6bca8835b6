// Package content loads the Markdown sources of the site: the documentation
// tree with its autogenerated sidebar and the blog with its posts, tags and
// authors.
package content

import (
	"bytes"
	"fmt"
	"math"
	"path"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordsPerMinute is the reading speed used for blog reading times.
const WordsPerMinute = 300

// truncateMarker splits a post summary from the rest of its content.
var truncateMarker = regexp.MustCompile(`(?m)^\s*(<!--\s*truncate\s*-->|\{/\*\s*truncate\s*\*/\})\s*$`)

// Heading is a table-of-contents entry.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Rendered is the result of converting one Markdown body.
type Rendered struct {
	HTML string
	// Title is the text of the first h1, if any
	Title string
	// TOC lists the h2 and h3 headings in document order
	TOC []Heading
	// Words is the number of words in prose text
	Words int
	// BrokenLinks are Markdown file links the resolver did not know
	BrokenLinks []string
}

// LinkResolver maps a link to a Markdown file to a page URL. It reports false
// when the target does not exist.
type LinkResolver func(dest string) (string, bool)

// Markdown converts Markdown to HTML. It is safe for concurrent use.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a converter. Code blocks are highlighted with chroma
// CSS classes; theme only matters for inline styles and is kept for parity
// with the configured light theme.
func NewMarkdown(theme string) *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				highlighting.NewHighlighting(
					highlighting.WithStyle(theme),
					highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// Convert renders src. Links whose destination is a local .md or .mdx file are
// rewritten through resolve; unresolved ones are left as-is and listed in
// BrokenLinks.
func (m *Markdown) Convert(src []byte, resolve LinkResolver) (Rendered, error) {
	var out Rendered

	doc := m.md.Parser().Parse(text.NewReader(src))

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			title := plainText(node, src)
			if node.Level == 1 && out.Title == "" {
				out.Title = title
			}
			if node.Level == 2 || node.Level == 3 {
				id := ""
				if v, ok := node.AttributeString("id"); ok {
					if b, ok := v.([]byte); ok {
						id = string(b)
					}
				}
				out.TOC = append(out.TOC, Heading{Level: node.Level, ID: id, Text: title})
			}
		case *ast.Link:
			dest := string(node.Destination)
			if resolve == nil || !IsMarkdownLink(dest) {
				return ast.WalkContinue, nil
			}
			if url, ok := resolve(dest); ok {
				node.Destination = []byte(url)
			} else {
				out.BrokenLinks = append(out.BrokenLinks, dest)
			}
		case *ast.Text:
			out.Words += len(strings.Fields(string(node.Segment.Value(src))))
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return Rendered{}, fmt.Errorf("walk markdown: %w", err)
	}

	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, src, doc); err != nil {
		return Rendered{}, fmt.Errorf("render markdown: %w", err)
	}
	out.HTML = buf.String()

	return out, nil
}

// plainText concatenates the text of n's descendants.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// IsMarkdownLink reports whether dest points at a local Markdown file.
func IsMarkdownLink(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.Contains(dest, "://") || strings.HasPrefix(dest, "//") {
		return false
	}
	if i := strings.Index(dest, ":"); i > 0 && !strings.ContainsAny(dest[:i], "/.") {
		return false
	}
	p, _ := splitFragment(dest)
	ext := strings.ToLower(path.Ext(p))
	return ext == ".md" || ext == ".mdx"
}

// splitFragment separates "file.md#anchor" into its path and "#anchor".
func splitFragment(dest string) (string, string) {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		return dest[:i], dest[i:]
	}
	return dest, ""
}

// ParseFrontMatter decodes YAML, TOML or JSON front matter into v and
// returns the remaining body. Input without front matter is returned whole.
func ParseFrontMatter(src []byte, v any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(src), v)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	return body, nil
}

// SplitTruncate splits a body at the truncate marker. ok is false when the
// body has no marker.
func SplitTruncate(body []byte) (summary []byte, ok bool) {
	loc := truncateMarker.FindIndex(body)
	if loc == nil {
		return body, false
	}
	return body[:loc[0]], true
}

// ReadingTime returns whole minutes to read words, never less than one.
func ReadingTime(words int) int {
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// TitleFromName turns a file or directory name into a title:
// "tutorial-basics" becomes "Tutorial Basics".
func TitleFromName(name string) string {
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}

// Slugify lowercases s and joins its words with dashes.
func Slugify(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(r)
		default:
			dash = true
		}
	}
	return sb.String()
}
