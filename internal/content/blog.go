package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jigarkkarangiya/docs/internal/report"
	"github.com/jigarkkarangiya/docs/pkg/logging"
)

// datedName matches "2024-05-01-welcome" style post names.
var datedName = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[-_](.+)$`)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// Author is a blog post author.
type Author struct {
	Key      string `yaml:"-"`
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	URL      string `yaml:"url"`
	ImageURL string `yaml:"image_url"`
}

// Tag is a blog tag.
type Tag struct {
	Key         string `yaml:"-"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Permalink   string `yaml:"permalink"`
}

// Post is one blog post.
type Post struct {
	Source      string
	Slug        string
	Permalink   string
	Title       string
	Description string
	Date        time.Time
	Authors     []Author
	Tags        []Tag

	HTML        string
	SummaryHTML string
	// Truncated is set when the post has a truncate marker
	Truncated   bool
	HasH1       bool
	TOC         []Heading
	ReadingTime int
	EditURL     string

	// Newer and Older are the adjacent posts
	Newer, Older *NavRef
}

// TagGroup is a tag with the posts carrying it, newest first.
type TagGroup struct {
	Tag   Tag
	Posts []*Post
}

// ListPage is one page of the paginated post list.
type ListPage struct {
	Number     int
	TotalPages int
	Permalink  string
	Posts      []*Post
	NewerURL   string
	OlderURL   string
}

// Blog is the loaded blog.
type Blog struct {
	// Posts are newest first
	Posts []*Post
	Tags  []TagGroup
	Pages []ListPage

	// RouteBase is the blog list URL
	RouteBase string
}

// ArchiveURL is the URL of the archive page.
func (b *Blog) ArchiveURL() string { return b.RouteBase + "/archive" }

// TagsURL is the URL of the tag index.
func (b *Blog) TagsURL() string { return b.RouteBase + "/tags" }

// BlogOptions configures LoadBlog.
type BlogOptions struct {
	Dir string
	// RouteBase is the URL of the blog list, e.g. "/docs/blog"
	RouteBase     string
	EditURL       string
	PostsPerPage  int
	Ignore        []string
	IncludeDrafts bool

	Markdown *Markdown
	Reporter *report.Reporter

	OnInlineTags           report.Severity
	OnInlineAuthors        report.Severity
	OnUntruncatedBlogPosts report.Severity
	OnBrokenMarkdownLinks  report.Severity
}

type postFrontMatter struct {
	Title       string `yaml:"title" toml:"title" json:"title"`
	Description string `yaml:"description" toml:"description" json:"description"`
	Slug        string `yaml:"slug" toml:"slug" json:"slug"`
	Date        string `yaml:"date" toml:"date" json:"date"`
	Draft       bool   `yaml:"draft" toml:"draft" json:"draft"`
	Authors     any    `yaml:"authors" toml:"authors" json:"authors"`
	Tags        any    `yaml:"tags" toml:"tags" json:"tags"`
}

// LoadBlog reads the posts under opts.Dir. Posts are named
// YYYY-MM-DD-slug.md or YYYY-MM-DD-slug/index.md.
func LoadBlog(fsys fs.FS, opts BlogOptions) (*Blog, error) {
	if opts.Markdown == nil {
		return nil, errors.New("blog: markdown converter is required")
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = report.NewReporter(logging.NopLogger{})
	}
	if opts.PostsPerPage < 1 {
		opts.PostsPerPage = 10
	}

	authors, hasAuthors, err := loadAuthors(fsys, opts.Dir)
	if err != nil {
		return nil, err
	}
	tags, hasTags, err := loadTags(fsys, opts.Dir)
	if err != nil {
		return nil, err
	}

	blog := &Blog{RouteBase: strings.TrimSuffix(opts.RouteBase, "/")}
	l := &blogLoader{
		opts:       opts,
		reporter:   reporter,
		authors:    authors,
		hasAuthors: hasAuthors,
		tags:       tags,
		hasTags:    hasTags,
		blog:       blog,
	}

	err = fs.WalkDir(fsys, opts.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == opts.Dir {
				return fs.SkipAll
			}
			return err
		}
		rel := relTo(opts.Dir, p)
		if rel == "" {
			return nil
		}
		if ignored(opts.Ignore, rel) || strings.HasPrefix(d.Name(), "_") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdownFile(d.Name()) {
			return nil
		}

		post, err := l.readPost(fsys, p, rel)
		if err != nil {
			return fmt.Errorf("blog: %s: %w", rel, err)
		}
		if post != nil {
			blog.Posts = append(blog.Posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load blog from %s: %w", opts.Dir, err)
	}

	sort.SliceStable(blog.Posts, func(i, j int) bool {
		a, b := blog.Posts[i], blog.Posts[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Source > b.Source
	})

	// Render once every permalink is known so links between posts resolve.
	for _, post := range blog.Posts {
		if err := l.render(post); err != nil {
			return nil, err
		}
	}

	blog.link()
	blog.paginate(opts.PostsPerPage)
	blog.groupTags()

	return blog, nil
}

type blogLoader struct {
	opts       BlogOptions
	reporter   *report.Reporter
	authors    map[string]Author
	hasAuthors bool
	tags       map[string]Tag
	hasTags    bool
	blog       *Blog
	bodies     map[*Post][]byte
}

func (l *blogLoader) readPost(fsys fs.FS, p, rel string) (*Post, error) {
	src, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}

	var fm postFrontMatter
	body, err := ParseFrontMatter(src, &fm)
	if err != nil {
		return nil, err
	}
	if fm.Draft && !l.opts.IncludeDrafts {
		return nil, nil
	}

	// "2024-01-02-slug.md" or "2024-01-02-slug/index.md"
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if isIndexName(name) && path.Dir(rel) != "." {
		name = path.Base(path.Dir(rel))
	}

	var date time.Time
	slug := name
	if m := datedName.FindStringSubmatch(name); m != nil {
		date, _ = time.Parse("2006-01-02", m[1])
		slug = m[2]
	}
	if fm.Date != "" {
		d, err := parseDate(fm.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}
	if date.IsZero() {
		info, err := fs.Stat(fsys, p)
		if err != nil {
			return nil, err
		}
		date = info.ModTime().UTC()
	}

	permalink := fmt.Sprintf("%s/%s/%s", l.blog.RouteBase, date.Format("2006/01/02"), slug)
	if fm.Slug != "" {
		slug = strings.Trim(fm.Slug, "/")
		permalink = l.blog.RouteBase + "/" + slug
	}

	post := &Post{
		Source:      rel,
		Slug:        slug,
		Permalink:   permalink,
		Title:       fm.Title,
		Description: fm.Description,
		Date:        date,
	}
	if l.opts.EditURL != "" {
		post.EditURL = strings.TrimSuffix(l.opts.EditURL, "/") + "/" + path.Join(l.opts.Dir, rel)
	}

	if post.Authors, err = l.resolveAuthors(rel, fm.Authors); err != nil {
		return nil, err
	}
	if post.Tags, err = l.resolveTags(rel, fm.Tags); err != nil {
		return nil, err
	}

	if l.bodies == nil {
		l.bodies = make(map[*Post][]byte)
	}
	l.bodies[post] = body

	return post, nil
}

func (l *blogLoader) render(post *Post) error {
	body := l.bodies[post]
	delete(l.bodies, post)

	resolve := l.resolver(post)
	rendered, err := l.opts.Markdown.Convert(body, resolve)
	if err != nil {
		return fmt.Errorf("blog: %s: %w", post.Source, err)
	}
	post.HTML = rendered.HTML
	post.TOC = rendered.TOC
	post.HasH1 = rendered.Title != ""
	post.ReadingTime = ReadingTime(rendered.Words)
	if post.Title == "" {
		post.Title = rendered.Title
	}
	if post.Title == "" {
		post.Title = TitleFromName(post.Slug)
	}

	for _, dest := range rendered.BrokenLinks {
		msg := fmt.Sprintf("blog: %s links to missing file %s", post.Source, dest)
		if err := l.reporter.Report(l.opts.OnBrokenMarkdownLinks, msg, logging.Path(post.Source)); err != nil {
			return err
		}
	}

	summary, truncated := SplitTruncate(body)
	post.Truncated = truncated
	if !truncated {
		post.SummaryHTML = post.HTML
		msg := fmt.Sprintf("blog: %s has no truncation marker; the full post is shown in the list", post.Source)
		return l.reporter.Report(l.opts.OnUntruncatedBlogPosts, msg, logging.Path(post.Source))
	}

	rs, err := l.opts.Markdown.Convert(summary, resolve)
	if err != nil {
		return fmt.Errorf("blog: %s summary: %w", post.Source, err)
	}
	post.SummaryHTML = rs.HTML

	return nil
}

func (l *blogLoader) resolver(from *Post) LinkResolver {
	return func(dest string) (string, bool) {
		p, frag := splitFragment(dest)
		target := path.Join(path.Dir(from.Source), p)
		if strings.HasPrefix(p, "/") {
			target = strings.TrimPrefix(path.Clean(p), "/")
		}
		for _, post := range l.blog.Posts {
			if post.Source == target {
				return post.Permalink + frag, true
			}
		}
		return "", false
	}
}

func (l *blogLoader) resolveAuthors(rel string, raw any) ([]Author, error) {
	var out []Author
	for _, entry := range asList(raw) {
		switch v := entry.(type) {
		case string:
			a, ok := l.authors[v]
			if !ok {
				return nil, fmt.Errorf("author %q is not defined in authors.yml", v)
			}
			out = append(out, a)
		default:
			m := asStringMap(v)
			if m == nil {
				return nil, fmt.Errorf("invalid author entry %v", v)
			}
			a := Author{
				Name:     m["name"],
				Title:    m["title"],
				URL:      m["url"],
				ImageURL: m["image_url"],
			}
			if key := m["key"]; key != "" {
				if known, ok := l.authors[key]; ok {
					a = known
				}
			} else if l.hasAuthors {
				msg := fmt.Sprintf("blog: %s uses inline author %q; define it in authors.yml", rel, a.Name)
				if err := l.reporter.Report(l.opts.OnInlineAuthors, msg, logging.Path(rel)); err != nil {
					return nil, err
				}
			}
			out = append(out, a)
		}
	}
	return out, nil
}

func (l *blogLoader) resolveTags(rel string, raw any) ([]Tag, error) {
	var out []Tag
	for _, entry := range asList(raw) {
		var t Tag
		switch v := entry.(type) {
		case string:
			if known, ok := l.tags[v]; ok {
				t = known
				break
			}
			t = Tag{Key: Slugify(v), Label: v}
			if l.hasTags {
				msg := fmt.Sprintf("blog: %s uses tag %q that is not defined in tags.yml", rel, v)
				if err := l.reporter.Report(l.opts.OnInlineTags, msg, logging.Path(rel)); err != nil {
					return nil, err
				}
			}
		default:
			m := asStringMap(v)
			if m == nil || m["label"] == "" {
				return nil, fmt.Errorf("invalid tag entry %v", v)
			}
			t = Tag{Key: Slugify(m["label"]), Label: m["label"], Permalink: m["permalink"]}
			if l.hasTags {
				msg := fmt.Sprintf("blog: %s uses inline tag %q; define it in tags.yml", rel, t.Label)
				if err := l.reporter.Report(l.opts.OnInlineTags, msg, logging.Path(rel)); err != nil {
					return nil, err
				}
			}
		}

		slug := t.Key
		if t.Permalink != "" {
			slug = strings.Trim(t.Permalink, "/")
		}
		t.Permalink = l.blog.TagsURL() + "/" + slug
		out = append(out, t)
	}
	return out, nil
}

func (b *Blog) link() {
	for i, post := range b.Posts {
		post.Newer, post.Older = nil, nil
		if i > 0 {
			p := b.Posts[i-1]
			post.Newer = &NavRef{Title: p.Title, URL: p.Permalink}
		}
		if i < len(b.Posts)-1 {
			p := b.Posts[i+1]
			post.Older = &NavRef{Title: p.Title, URL: p.Permalink}
		}
	}
}

func (b *Blog) paginate(perPage int) {
	total := (len(b.Posts) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}

	b.Pages = make([]ListPage, total)
	for i := range b.Pages {
		start := i * perPage
		end := min(start+perPage, len(b.Posts))
		b.Pages[i] = ListPage{
			Number:     i + 1,
			TotalPages: total,
			Permalink:  b.pageURL(i + 1),
			Posts:      b.Posts[start:end],
		}
		if i > 0 {
			b.Pages[i].NewerURL = b.pageURL(i)
		}
		if i < total-1 {
			b.Pages[i].OlderURL = b.pageURL(i + 2)
		}
	}
}

func (b *Blog) pageURL(n int) string {
	if n == 1 {
		return b.RouteBase
	}
	return fmt.Sprintf("%s/page/%d", b.RouteBase, n)
}

func (b *Blog) groupTags() {
	groups := make(map[string]*TagGroup)
	for _, post := range b.Posts {
		for _, tag := range post.Tags {
			g, ok := groups[tag.Permalink]
			if !ok {
				g = &TagGroup{Tag: tag}
				groups[tag.Permalink] = g
			}
			g.Posts = append(g.Posts, post)
		}
	}

	b.Tags = make([]TagGroup, 0, len(groups))
	for _, g := range groups {
		b.Tags = append(b.Tags, *g)
	}
	sort.Slice(b.Tags, func(i, j int) bool {
		return strings.ToLower(b.Tags[i].Tag.Label) < strings.ToLower(b.Tags[j].Tag.Label)
	})
}

func loadAuthors(fsys fs.FS, dir string) (map[string]Author, bool, error) {
	raw := make(map[string]Author)
	ok, err := readYAML(fsys, dir, []string{"authors.yml", "authors.yaml"}, &raw)
	if err != nil || !ok {
		return raw, ok, err
	}
	for key, a := range raw {
		a.Key = key
		raw[key] = a
	}
	return raw, true, nil
}

func loadTags(fsys fs.FS, dir string) (map[string]Tag, bool, error) {
	raw := make(map[string]Tag)
	ok, err := readYAML(fsys, dir, []string{"tags.yml", "tags.yaml"}, &raw)
	if err != nil || !ok {
		return raw, ok, err
	}
	for key, t := range raw {
		t.Key = key
		if t.Label == "" {
			t.Label = key
		}
		raw[key] = t
	}
	return raw, true, nil
}

func readYAML(fsys fs.FS, dir string, names []string, v any) (bool, error) {
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, err
		}
		if err := yaml.Unmarshal(data, v); err != nil {
			return false, fmt.Errorf("%s: %w", path.Join(dir, name), err)
		}
		return true, nil
	}
	return false, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q; use YYYY-MM-DD or RFC 3339", s)
}

// asList normalises a front matter value that may be a single item or a list.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return []any{t}
	}
}

// asStringMap flattens decoded YAML or TOML maps to string values.
func asStringMap(v any) map[string]string {
	out := make(map[string]string)
	switch m := v.(type) {
	case map[string]any:
		for k, val := range m {
			out[k] = fmt.Sprint(val)
		}
	case map[any]any:
		for k, val := range m {
			out[fmt.Sprint(k)] = fmt.Sprint(val)
		}
	default:
		return nil
	}
	return out
}
