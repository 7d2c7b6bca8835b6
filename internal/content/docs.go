package content

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/jigarkkarangiya/docs/internal/report"
	"github.com/jigarkkarangiya/docs/pkg/logging"
)

// numberPrefix matches ordering prefixes such as "01-intro" or "2_setup".
var numberPrefix = regexp.MustCompile(`^(\d+)\s*[-_.]+\s*([^-_.\s].*)$`)

var categoryFiles = []string{"_category_.json", "_category_.yml", "_category_.yaml"}

// NavRef points at another page.
type NavRef struct {
	Title string
	URL   string
}

// Doc is one documentation page.
type Doc struct {
	// ID is the slash-separated id without number prefixes
	ID string
	// Source is the file path relative to the docs directory
	Source string
	// Permalink is the page URL including the base URL
	Permalink string

	Title        string
	SidebarLabel string
	Description  string
	Keywords     []string
	Tags         []string

	HTML string
	// HasH1 is set when the content renders its own h1
	HasH1 bool
	TOC   []Heading

	EditURL     string
	Prev, Next  *NavRef
	Breadcrumbs []NavRef

	position    float64
	hasPosition bool
	body        []byte
}

// SidebarItem is a node of the autogenerated sidebar.
type SidebarItem struct {
	// Type is "doc" or "category"
	Type  string
	Label string
	// URL links the item; empty for categories without an index doc
	URL string
	// DocID is set for doc items and categories with an index doc
	DocID     string
	Collapsed bool
	Items     []SidebarItem

	position    float64
	hasPosition bool
	sortKey     string
}

// Docs is the loaded documentation tree.
type Docs struct {
	// Docs are in sidebar order
	Docs    []*Doc
	Sidebar []SidebarItem

	byID     map[string]*Doc
	bySource map[string]*Doc
}

// Get returns the doc with the given id.
func (d *Docs) Get(id string) (*Doc, bool) {
	doc, ok := d.byID[id]
	return doc, ok
}

// First returns the first doc in sidebar order, or nil.
func (d *Docs) First() *Doc {
	if d == nil || len(d.Docs) == 0 {
		return nil
	}
	return d.Docs[0]
}

// DocsOptions configures LoadDocs.
type DocsOptions struct {
	// Dir is the docs directory within the file system
	Dir string
	// RouteBase is the URL prefix of doc pages, e.g. "/docs/docs"
	RouteBase string
	// EditURL prefixes edit links; empty disables them
	EditURL string
	// Ignore are doublestar globs matched against paths relative to Dir
	Ignore []string
	// IncludeDrafts keeps docs marked draft
	IncludeDrafts bool

	Markdown              *Markdown
	Reporter              *report.Reporter
	OnBrokenMarkdownLinks report.Severity
}

type docFrontMatter struct {
	ID              string   `yaml:"id" toml:"id" json:"id"`
	Title           string   `yaml:"title" toml:"title" json:"title"`
	SidebarLabel    string   `yaml:"sidebar_label" toml:"sidebar_label" json:"sidebar_label"`
	SidebarPosition *float64 `yaml:"sidebar_position" toml:"sidebar_position" json:"sidebar_position"`
	Slug            string   `yaml:"slug" toml:"slug" json:"slug"`
	Description     string   `yaml:"description" toml:"description" json:"description"`
	Keywords        []string `yaml:"keywords" toml:"keywords" json:"keywords"`
	Tags            []string `yaml:"tags" toml:"tags" json:"tags"`
	Draft           bool     `yaml:"draft" toml:"draft" json:"draft"`
}

type categoryMeta struct {
	Label       string   `yaml:"label"`
	Position    *float64 `yaml:"position"`
	Collapsed   *bool    `yaml:"collapsed"`
	Description string   `yaml:"description"`
}

// LoadDocs reads every .md and .mdx file under opts.Dir, renders it and
// builds the sidebar. Files and directories starting with "_" are skipped.
func LoadDocs(fsys fs.FS, opts DocsOptions) (*Docs, error) {
	if opts.Markdown == nil {
		return nil, errors.New("docs: markdown converter is required")
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = report.NewReporter(logging.NopLogger{})
	}

	docs := &Docs{
		byID:     make(map[string]*Doc),
		bySource: make(map[string]*Doc),
	}
	categories := make(map[string]categoryMeta)

	err := fs.WalkDir(fsys, opts.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := relTo(opts.Dir, p)
		if rel == "" {
			return nil
		}
		if ignored(opts.Ignore, rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") {
				return fs.SkipDir
			}
			meta, ok, err := readCategory(fsys, p)
			if err != nil {
				return err
			}
			if ok {
				categories[rel] = meta
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), "_") || !isMarkdownFile(d.Name()) {
			return nil
		}

		doc, err := readDoc(fsys, p, rel, opts)
		if err != nil {
			return err
		}
		if doc == nil {
			return nil
		}
		if prev, dup := docs.byID[doc.ID]; dup {
			return fmt.Errorf("docs: duplicate id %q in %s and %s", doc.ID, prev.Source, doc.Source)
		}
		docs.byID[doc.ID] = doc
		docs.bySource[doc.Source] = doc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load docs from %s: %w", opts.Dir, err)
	}

	sources := make([]string, 0, len(docs.bySource))
	for src := range docs.bySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	// Render once every permalink is known so Markdown links resolve.
	for _, src := range sources {
		doc := docs.bySource[src]
		rendered, err := opts.Markdown.Convert(doc.body, docs.resolver(doc))
		if err != nil {
			return nil, fmt.Errorf("docs: %s: %w", doc.Source, err)
		}
		doc.HTML = rendered.HTML
		doc.TOC = rendered.TOC
		doc.HasH1 = rendered.Title != ""
		if doc.Title == "" {
			doc.Title = rendered.Title
		}
		if doc.Title == "" {
			doc.Title = TitleFromName(stripNumberPrefix(path.Base(doc.ID)))
		}
		if doc.SidebarLabel == "" {
			doc.SidebarLabel = doc.Title
		}
		doc.body = nil

		for _, dest := range rendered.BrokenLinks {
			msg := fmt.Sprintf("docs: %s links to missing file %s", doc.Source, dest)
			if err := reporter.Report(opts.OnBrokenMarkdownLinks, msg, logging.Path(doc.Source)); err != nil {
				return nil, err
			}
		}
	}

	docs.Sidebar = buildSidebar(docs.bySource, categories)
	docs.link()

	return docs, nil
}

func readDoc(fsys fs.FS, p, rel string, opts DocsOptions) (*Doc, error) {
	src, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}

	var fm docFrontMatter
	body, err := ParseFrontMatter(src, &fm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}
	if fm.Draft && !opts.IncludeDrafts {
		return nil, nil
	}

	dir, file := path.Split(rel)
	dir = strings.TrimSuffix(dir, "/")
	name := strings.TrimSuffix(file, path.Ext(file))

	position, hasPosition := prefixPosition(name)
	if fm.SidebarPosition != nil {
		position, hasPosition = *fm.SidebarPosition, true
	}

	name = stripNumberPrefix(name)
	cleanDir := stripDirPrefixes(dir)

	id := name
	if fm.ID != "" {
		id = fm.ID
	}
	if cleanDir != "" {
		id = cleanDir + "/" + id
	}

	slug := id
	if isIndexName(name) && fm.ID == "" {
		slug = cleanDir
	}
	switch {
	case strings.HasPrefix(fm.Slug, "/"):
		slug = strings.Trim(fm.Slug, "/")
	case fm.Slug != "":
		slug = strings.Trim(path.Join(cleanDir, fm.Slug), "/")
	}

	permalink := opts.RouteBase
	if slug != "" {
		permalink = strings.TrimSuffix(opts.RouteBase, "/") + "/" + slug
	}

	doc := &Doc{
		ID:           id,
		Source:       rel,
		Permalink:    permalink,
		Title:        fm.Title,
		SidebarLabel: fm.SidebarLabel,
		Description:  fm.Description,
		Keywords:     fm.Keywords,
		Tags:         fm.Tags,
		position:     position,
		hasPosition:  hasPosition,
		body:         body,
	}
	if opts.EditURL != "" {
		doc.EditURL = strings.TrimSuffix(opts.EditURL, "/") + "/" + path.Join(opts.Dir, rel)
	}

	return doc, nil
}

func readCategory(fsys fs.FS, dir string) (categoryMeta, bool, error) {
	for _, name := range categoryFiles {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return categoryMeta{}, false, err
		}
		var meta categoryMeta
		// JSON is a subset of YAML, so one decoder covers both formats.
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return categoryMeta{}, false, fmt.Errorf("%s: %w", path.Join(dir, name), err)
		}
		return meta, true, nil
	}
	return categoryMeta{}, false, nil
}

// resolver resolves links relative to from's source file.
func (d *Docs) resolver(from *Doc) LinkResolver {
	return func(dest string) (string, bool) {
		p, frag := splitFragment(dest)
		var target string
		if strings.HasPrefix(p, "/") {
			target = strings.TrimPrefix(path.Clean(p), "/")
		} else {
			target = path.Join(path.Dir(from.Source), p)
		}
		doc, ok := d.bySource[target]
		if !ok {
			return "", false
		}
		return doc.Permalink + frag, true
	}
}

// buildSidebar arranges docs by directory. A directory becomes a category;
// its index or README doc becomes the category link.
func buildSidebar(bySource map[string]*Doc, categories map[string]categoryMeta) []SidebarItem {
	type node struct {
		item     SidebarItem
		children map[string]*node
	}
	root := &node{children: make(map[string]*node)}

	for _, doc := range bySource {
		dir := path.Dir(doc.Source)
		parent := root
		if dir != "." {
			walked := ""
			for _, seg := range strings.Split(dir, "/") {
				walked = path.Join(walked, seg)
				child, ok := parent.children[seg]
				if !ok {
					pos, hasPos := prefixPosition(seg)
					child = &node{
						item: SidebarItem{
							Type:        "category",
							Label:       TitleFromName(stripNumberPrefix(seg)),
							position:    pos,
							hasPosition: hasPos,
							sortKey:     seg,
						},
						children: make(map[string]*node),
					}
					if meta, ok := categories[walked]; ok {
						if meta.Label != "" {
							child.item.Label = meta.Label
						}
						if meta.Position != nil {
							child.item.position, child.item.hasPosition = *meta.Position, true
						}
						if meta.Collapsed != nil {
							child.item.Collapsed = *meta.Collapsed
						}
					}
					parent.children[seg] = child
				}
				parent = child
			}
		}

		base := stripNumberPrefix(strings.TrimSuffix(path.Base(doc.Source), path.Ext(doc.Source)))
		if parent != root && isIndexName(base) {
			parent.item.URL = doc.Permalink
			parent.item.DocID = doc.ID
			continue
		}
		parent.children["\x00"+doc.Source] = &node{item: SidebarItem{
			Type:        "doc",
			Label:       doc.SidebarLabel,
			URL:         doc.Permalink,
			DocID:       doc.ID,
			position:    doc.position,
			hasPosition: doc.hasPosition,
			sortKey:     path.Base(doc.Source),
		}}
	}

	var collect func(n *node) []SidebarItem
	collect = func(n *node) []SidebarItem {
		items := make([]SidebarItem, 0, len(n.children))
		for _, child := range n.children {
			item := child.item
			if item.Type == "category" {
				item.Items = collect(child)
			}
			items = append(items, item)
		}
		sortItems(items)
		return items
	}

	return collect(root)
}

// sortItems orders by position; items without one follow, by file name.
func sortItems(items []SidebarItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		pa, pb := math.Inf(1), math.Inf(1)
		if a.hasPosition {
			pa = a.position
		}
		if b.hasPosition {
			pb = b.position
		}
		if pa != pb {
			return pa < pb
		}
		return a.sortKey < b.sortKey
	})
}

// link fills sidebar order, previous/next and breadcrumbs.
func (d *Docs) link() {
	d.Docs = d.Docs[:0]

	var walk func(items []SidebarItem, trail []NavRef)
	walk = func(items []SidebarItem, trail []NavRef) {
		for _, item := range items {
			if item.DocID != "" {
				if doc, ok := d.byID[item.DocID]; ok {
					doc.Breadcrumbs = append([]NavRef(nil), trail...)
					d.Docs = append(d.Docs, doc)
				}
			}
			if item.Type == "category" {
				walk(item.Items, append(trail, NavRef{Title: item.Label, URL: item.URL}))
			}
		}
	}
	walk(d.Sidebar, nil)

	for i, doc := range d.Docs {
		doc.Prev, doc.Next = nil, nil
		if i > 0 {
			prev := d.Docs[i-1]
			doc.Prev = &NavRef{Title: prev.SidebarLabel, URL: prev.Permalink}
		}
		if i < len(d.Docs)-1 {
			next := d.Docs[i+1]
			doc.Next = &NavRef{Title: next.SidebarLabel, URL: next.Permalink}
		}
	}
}

// ActivePath returns the labels of the categories that contain docID.
func (d *Docs) ActivePath(docID string) map[string]bool {
	open := make(map[string]bool)
	var walk func(items []SidebarItem) bool
	walk = func(items []SidebarItem) bool {
		found := false
		for _, item := range items {
			hit := item.DocID == docID
			if item.Type == "category" && walk(item.Items) {
				open[item.Label] = true
				hit = true
			}
			found = found || hit
		}
		return found
	}
	walk(d.Sidebar)
	return open
}

func prefixPosition(name string) (float64, bool) {
	m := numberPrefix.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func stripNumberPrefix(name string) string {
	if m := numberPrefix.FindStringSubmatch(name); m != nil {
		return m[2]
	}
	return name
}

func stripDirPrefixes(dir string) string {
	if dir == "" {
		return ""
	}
	segs := strings.Split(dir, "/")
	for i, s := range segs {
		segs[i] = stripNumberPrefix(s)
	}
	return strings.Join(segs, "/")
}

func isIndexName(name string) bool {
	n := strings.ToLower(name)
	return n == "index" || n == "readme"
}

func isMarkdownFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

func relTo(dir, p string) string {
	if dir == "." || dir == "" {
		if p == "." {
			return ""
		}
		return p
	}
	return strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
}

func ignored(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
