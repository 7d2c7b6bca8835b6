// Package linkcheck finds broken links and anchors between rendered pages.
package linkcheck

import (
	"bytes"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// Broken is a link whose target does not exist.
type Broken struct {
	// Page is the route of the page holding the link
	Page string
	// Href is the link as written
	Href string
}

func (b Broken) String() string {
	return fmt.Sprintf("%s -> %s", b.Page, b.Href)
}

// Result lists the problems found by Check.
type Result struct {
	BrokenLinks   []Broken
	BrokenAnchors []Broken
	// Links is the number of internal links checked
	Links int
}

// OK reports whether nothing is broken.
func (r Result) OK() bool {
	return len(r.BrokenLinks) == 0 && len(r.BrokenAnchors) == 0
}

// Options configures Check.
type Options struct {
	// Static reports whether a URL path is served by a static file
	Static func(urlPath string) bool
	// Concurrency bounds the number of pages parsed at once
	Concurrency int
	// Inspect, when set, is called with every parsed page. It may be called
	// concurrently.
	Inspect func(route string, doc *goquery.Document)
}

type page struct {
	route string
	// raw is the route as given, used to resolve relative links
	raw   string
	hrefs []string
	ids   map[string]bool
}

// Check parses every page and verifies each internal <a href>. pages maps a
// route to the rendered HTML. Links with a scheme (http, mailto, tel,
// javascript) are not checked.
func Check(pages map[string][]byte, opts Options) (Result, error) {
	parsed, err := parse(pages, opts)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, p := range parsed {
		for _, href := range p.hrefs {
			target, fragment, ok := resolve(p.raw, href)
			if !ok {
				continue
			}
			res.Links++

			dest, found := parsed[target]
			if !found {
				if opts.Static == nil || !opts.Static(target) {
					res.BrokenLinks = append(res.BrokenLinks, Broken{Page: p.route, Href: href})
				}
				continue
			}
			if fragment != "" && !dest.ids[fragment] {
				res.BrokenAnchors = append(res.BrokenAnchors, Broken{Page: p.route, Href: href})
			}
		}
	}

	sortBroken(res.BrokenLinks)
	sortBroken(res.BrokenAnchors)
	return res, nil
}

func parse(pages map[string][]byte, opts Options) (map[string]*page, error) {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 4
	}

	var (
		mu     sync.Mutex
		parsed = make(map[string]*page, len(pages))
		g      errgroup.Group
	)
	g.SetLimit(concurrency)

	for route, body := range pages {
		g.Go(func() error {
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("parse %s: %w", route, err)
			}

			p := &page{route: Normalize(route), raw: route, ids: make(map[string]bool)}
			doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
				href, _ := s.Attr("href")
				p.hrefs = append(p.hrefs, href)
			})
			doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
				id, _ := s.Attr("id")
				p.ids[id] = true
			})
			doc.Find("a[name]").Each(func(_ int, s *goquery.Selection) {
				name, _ := s.Attr("name")
				p.ids[name] = true
			})
			if opts.Inspect != nil {
				opts.Inspect(p.route, doc)
			}

			mu.Lock()
			parsed[p.route] = p
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parsed, nil
}

// resolve turns href into a normalized route and fragment relative to the
// page it appears on. ok is false for links that are not checked.
func resolve(route, href string) (target, fragment string, ok bool) {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" {
		return "", "", false
	}

	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", "", false
	}

	base := &url.URL{Path: route}
	return Normalize(base.ResolveReference(u).Path), u.Fragment, true
}

// Normalize maps the different spellings of a page URL ("/a/", "/a",
// "/a/index.html") onto one route.
func Normalize(p string) string {
	p = strings.TrimSuffix(p, "index.html")
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return "/"
	}
	return p
}

func sortBroken(b []Broken) {
	sort.Slice(b, func(i, j int) bool {
		if b[i].Page != b[j].Page {
			return b[i].Page < b[j].Page
		}
		return b[i].Href < b[j].Href
	})
}
