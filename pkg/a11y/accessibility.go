// Package a11y audits rendered HTML pages for common accessibility problems:
// missing document language or title, images without alt text, links and
// buttons without an accessible name, and skipped heading levels.
package a11y

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Rule identifies an accessibility check.
type Rule string

const (
	RuleHTMLLang     Rule = "html-lang"
	RuleTitle        Rule = "document-title"
	RuleImgAlt       Rule = "img-alt"
	RuleLinkName     Rule = "link-name"
	RuleButtonName   Rule = "button-name"
	RuleHeadingOrder Rule = "heading-order"
)

// Rules lists every check in the order Audit runs them.
var Rules = []Rule{RuleHTMLLang, RuleTitle, RuleImgAlt, RuleLinkName, RuleButtonName, RuleHeadingOrder}

// Issue is one accessibility problem on a page.
type Issue struct {
	// Page is the route of the page, empty when audited directly
	Page    string
	Rule    Rule
	Element string
	Message string
}

func (i Issue) String() string {
	if i.Element == "" {
		return fmt.Sprintf("%s: %s: %s", i.Page, i.Rule, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s %s", i.Page, i.Rule, i.Message, i.Element)
}

// Audit runs every rule on doc.
func Audit(doc *goquery.Document) []Issue {
	var issues []Issue
	for _, rule := range Rules {
		issues = append(issues, check(rule, doc)...)
	}
	return issues
}

func check(rule Rule, doc *goquery.Document) []Issue {
	switch rule {
	case RuleHTMLLang:
		if lang, _ := doc.Find("html").First().Attr("lang"); strings.TrimSpace(lang) == "" {
			return []Issue{{Rule: rule, Message: "<html> has no lang attribute"}}
		}
	case RuleTitle:
		if strings.TrimSpace(doc.Find("head title").First().Text()) == "" {
			return []Issue{{Rule: rule, Message: "document has no title"}}
		}
	case RuleImgAlt:
		return each(doc, "img", rule, "image has no alt attribute", func(s *goquery.Selection) bool {
			_, ok := s.Attr("alt")
			return ok || s.AttrOr("role", "") == "presentation"
		})
	case RuleLinkName:
		return each(doc, "a[href]", rule, "link has no accessible name", hasName)
	case RuleButtonName:
		return each(doc, "button", rule, "button has no accessible name", hasName)
	case RuleHeadingOrder:
		return headingOrder(doc)
	}
	return nil
}

// each reports the visible elements matching selector for which ok is false.
func each(doc *goquery.Document, selector string, rule Rule, msg string, ok func(*goquery.Selection) bool) []Issue {
	var issues []Issue
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if hidden(s) || ok(s) {
			return
		}
		issues = append(issues, Issue{Rule: rule, Element: describe(s), Message: msg})
	})
	return issues
}

func hidden(s *goquery.Selection) bool {
	return s.Closest(`[aria-hidden="true"]`).Length() > 0
}

// hasName reports whether s has text content, a label or a labelled image.
func hasName(s *goquery.Selection) bool {
	if strings.TrimSpace(s.Text()) != "" {
		return true
	}
	for _, attr := range []string{"aria-label", "aria-labelledby", "title"} {
		if strings.TrimSpace(s.AttrOr(attr, "")) != "" {
			return true
		}
	}
	named := false
	s.Find("img[alt], [aria-label]").EachWithBreak(func(_ int, c *goquery.Selection) bool {
		name := c.AttrOr("alt", c.AttrOr("aria-label", ""))
		named = strings.TrimSpace(name) != ""
		return !named
	})
	return named
}

// headingOrder reports headings that go more than one level deeper than the
// heading before them.
func headingOrder(doc *goquery.Document) []Issue {
	var (
		issues []Issue
		prev   int
	)
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level := int(goquery.NodeName(s)[1] - '0')
		if prev > 0 && level > prev+1 {
			issues = append(issues, Issue{
				Rule:    RuleHeadingOrder,
				Element: describe(s),
				Message: fmt.Sprintf("h%d follows h%d", level, prev),
			})
		}
		prev = level
	})
	return issues
}

// describe renders a short opening tag for s.
func describe(s *goquery.Selection) string {
	name := goquery.NodeName(s)
	for _, attr := range []string{"id", "href", "src", "class"} {
		if v, ok := s.Attr(attr); ok {
			return fmt.Sprintf(`<%s %s="%s">`, name, attr, v)
		}
	}
	return "<" + name + ">"
}

// Auditor collects issues across pages. Inspect may be called from several
// goroutines.
type Auditor struct {
	skip map[Rule]bool

	mu     sync.Mutex
	issues []Issue
}

// NewAuditor returns an Auditor running every rule except the disabled ones.
func NewAuditor(disabled ...Rule) *Auditor {
	a := &Auditor{skip: make(map[Rule]bool, len(disabled))}
	for _, r := range disabled {
		a.skip[r] = true
	}
	return a
}

// Inspect audits the page at route.
func (a *Auditor) Inspect(route string, doc *goquery.Document) {
	var found []Issue
	for _, rule := range Rules {
		if a.skip[rule] {
			continue
		}
		for _, is := range check(rule, doc) {
			is.Page = route
			found = append(found, is)
		}
	}
	if len(found) == 0 {
		return
	}

	a.mu.Lock()
	a.issues = append(a.issues, found...)
	a.mu.Unlock()
}

// Issues returns the collected issues ordered by page and rule.
func (a *Auditor) Issues() []Issue {
	a.mu.Lock()
	out := make([]Issue, len(a.issues))
	copy(out, a.issues)
	a.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].Rule < out[j].Rule
	})
	return out
}
