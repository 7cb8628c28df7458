// ABOUTME: Text normalization helpers shared by the whole pipeline
// ABOUTME: Whitespace collapsing, HTML-to-text conversion, and slug derivation
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// \p{Zs} is included so non-breaking spaces (what &nbsp; decodes to)
// collapse like any other whitespace.
var whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)

// Normalize collapses every run of whitespace (including newlines) to a
// single space and trims both ends. Idempotent; empty in, empty out.
func Normalize(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// HTMLToText parses markup and returns its visible text, normalized.
// Script and style elements and comments contribute nothing. The parser
// decodes entities exactly once, so "&amp;lt;" comes out as "&lt;".
func HTMLToText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		// html.Parse only fails on reader errors; a string reader never errors.
		return ""
	}
	return NodeText(root)
}

// NodeText returns the normalized visible text of a parsed HTML node and
// its descendants, with script/style/comment content excluded.
func NodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	collectText(n, &sb)
	return Normalize(sb.String())
}

// collectText appends the text content of n and its children, skipping
// script/style subtrees and comment nodes. A space separates adjacent
// elements so "<p>a</p><p>b</p>" does not fuse into "ab".
func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
		sb.WriteByte(' ')
	}
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the input, replaces every run of non-alphanumeric
// characters with a single hyphen, and trims leading/trailing hyphens.
// When nothing survives, the caller's fallback token is returned.
func Slugify(s, fallback string) string {
	slug := nonAlnumRe.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallback
	}
	return slug
}
