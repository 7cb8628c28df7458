// ABOUTME: HTML section extractor for website ingestion
// ABOUTME: Tree-based discovery of <section> blocks with heading fallback
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/chairaharder/askchaira/internal/models"
	"github.com/chairaharder/askchaira/internal/textutil"
)

// headingTags in fallback traversal order checks.
var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Sections parses a raw HTML document into an ordered list of logical
// sections. Strategy precedence:
//
//  1. explicit, non-nested <section> elements inside the content root;
//  2. heading-delimited windows (each h1-h6 plus the text up to the next
//     heading);
//  3. a single synthetic "Website Content" section holding all text.
//
// The content root is the first <main> element, else the element with
// id="app", else <body>, else the whole document. Section ids are unique
// per document; collisions get -2, -3, ... suffixes.
func Sections(markup string) []models.Section {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	root := contentRoot(doc)
	ids := newIDSet()

	sections := explicitSections(root, ids)
	if len(sections) == 0 {
		sections = headingSections(root, ids)
	}
	if len(sections) == 0 {
		if text := selectionText(root); text != "" {
			sections = append(sections, models.Section{
				Title: "Website Content",
				ID:    ids.claim("website-content"),
				Text:  text,
			})
		}
	}
	return sections
}

// contentRoot narrows extraction to the page's main content container.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	if sel := doc.Find("main").First(); sel.Length() > 0 {
		return sel
	}
	if sel := doc.Find("#app").First(); sel.Length() > 0 {
		return sel
	}
	if sel := doc.Find("body").First(); sel.Length() > 0 {
		return sel
	}
	return doc.Selection
}

// explicitSections extracts top-level <section> elements in document order.
// Sections nested inside another section belong to their ancestor's text and
// are not emitted separately.
func explicitSections(root *goquery.Selection, ids *idSet) []models.Section {
	var out []models.Section

	root.Find("section").Each(func(i int, s *goquery.Selection) {
		if s.ParentsFiltered("section").Length() > 0 {
			return
		}

		text := selectionText(s)
		if text == "" {
			return
		}

		title := selectionText(s.Find("h1, h2, h3, h4, h5, h6").First())
		if title == "" {
			title = fmt.Sprintf("Section %d", i+1)
		}

		base := s.AttrOr("id", "")
		if base == "" {
			base = textutil.Slugify(title, fmt.Sprintf("section-%d", i+1))
		}

		out = append(out, models.Section{
			Title: title,
			ID:    ids.claim(base),
			Text:  text,
		})
	})

	return out
}

// headingSections segments the root by its headings: each heading owns the
// text that follows it, up to the next heading in document order.
func headingSections(root *goquery.Selection, ids *idSet) []models.Section {
	if len(root.Nodes) == 0 {
		return nil
	}

	type window struct {
		node *html.Node
		body strings.Builder
	}
	var windows []*window

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && headingTags[n.Data] {
			windows = append(windows, &window{node: n})
			return // the heading's own text is the title, not body
		}
		if n.Type == html.TextNode && len(windows) > 0 {
			cur := &windows[len(windows)-1].body
			cur.WriteString(n.Data)
			cur.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.CommentNode {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range root.Nodes {
		walk(n)
	}

	var out []models.Section
	for i, w := range windows {
		title := textutil.NodeText(w.node)
		if title == "" {
			title = fmt.Sprintf("Heading %d", i+1)
		}

		base := attr(w.node, "id")
		if base == "" {
			base = textutil.Slugify(title, fmt.Sprintf("heading-%d", i+1))
		}

		text := title
		if body := textutil.Normalize(w.body.String()); body != "" {
			text = title + "\n\n" + body
		}

		out = append(out, models.Section{
			Title: title,
			ID:    ids.claim(base),
			Text:  text,
		})
	}
	return out
}

// selectionText returns the normalized visible text of a selection.
func selectionText(sel *goquery.Selection) string {
	if sel == nil || len(sel.Nodes) == 0 {
		return ""
	}
	var parts []string
	for _, n := range sel.Nodes {
		if t := textutil.NodeText(n); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// attr returns the value of the named attribute on a node, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// idSet de-duplicates section ids across one document.
type idSet struct {
	used map[string]bool
}

func newIDSet() *idSet {
	return &idSet{used: make(map[string]bool)}
}

// claim reserves a unique id for the given base, appending -2, -3, ... on
// collision. The first occurrence keeps the base unchanged.
func (s *idSet) claim(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "section"
	}
	base = strings.Join(strings.Fields(base), "-")

	candidate := base
	for counter := 2; s.used[candidate]; counter++ {
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
	s.used[candidate] = true
	return candidate
}
