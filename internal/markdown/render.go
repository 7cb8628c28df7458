// ABOUTME: Restricted markdown rendering for terminal display
// ABOUTME: Sanitizes input, then styles links, bare URLs, and citation markers
package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ansiRe     = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
	linkRe     = regexp.MustCompile(`\[([^\]\n]+)\]\(([^)\s]+)\)`)
	citationRe = regexp.MustCompile(`\[#(\d+)\]`)
	bareURLRe  = regexp.MustCompile(`https?://[^\s<>"')\]]+`)
	paraRe     = regexp.MustCompile(`\n[ \t]*\n`)
)

// Renderer turns assistant text into styled terminal output. Only a
// restricted set of constructs is interpreted: bracketed links, bare URLs,
// and citation markers. Everything else passes through as plain text.
type Renderer struct {
	width    int
	link     lipgloss.Style
	url      lipgloss.Style
	citation lipgloss.Style
}

// NewRenderer creates a Renderer wrapping output at width columns. A width
// of zero or less disables wrapping.
func NewRenderer(width int) *Renderer {
	return &Renderer{
		width:    width,
		link:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		url:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		citation: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
}

// Render sanitizes and styles text. Paragraphs split on blank lines;
// newlines inside a paragraph survive as soft breaks.
func (r *Renderer) Render(text string) string {
	text = Sanitize(text)
	if text == "" {
		return ""
	}

	paragraphs := paraRe.Split(text, -1)
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lines := strings.Split(p, "\n")
		for i, line := range lines {
			lines[i] = r.wrap(r.styleInline(strings.TrimSpace(line)))
		}
		out = append(out, strings.Join(lines, "\n"))
	}
	return strings.Join(out, "\n\n")
}

// Sanitize strips ANSI escape sequences and control characters so endpoint
// output cannot inject terminal escapes. Newlines and tabs survive.
func Sanitize(text string) string {
	text = ansiRe.ReplaceAllString(text, "")
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 0x20 && r != 0x7f {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// styleInline applies the restricted markup set to a single line.
// Bracketed links are lifted out first so the bare-URL pass cannot restyle
// a URL that already sits inside a rendered link.
func (r *Renderer) styleInline(line string) string {
	var lifted []string
	line = linkRe.ReplaceAllStringFunc(line, func(m string) string {
		parts := linkRe.FindStringSubmatch(m)
		lifted = append(lifted, r.link.Render(parts[1])+" "+r.url.Render("("+parts[2]+")"))
		return fmt.Sprintf("\x00%d\x00", len(lifted)-1)
	})

	line = citationRe.ReplaceAllStringFunc(line, func(m string) string {
		return r.citation.Render(m)
	})
	line = bareURLRe.ReplaceAllStringFunc(line, func(m string) string {
		return r.url.Render(m)
	})

	for i, repl := range lifted {
		line = strings.Replace(line, fmt.Sprintf("\x00%d\x00", i), repl, 1)
	}
	return line
}

// wrap word-wraps a styled line to the renderer's width. Wrapping counts
// visible width, not byte length, so styled runs do not break early.
func (r *Renderer) wrap(line string) string {
	if r.width <= 0 {
		return line
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	col := 0
	for i, w := range words {
		wl := lipgloss.Width(w)
		switch {
		case i == 0:
			sb.WriteString(w)
			col = wl
		case col+1+wl > r.width:
			sb.WriteByte('\n')
			sb.WriteString(w)
			col = wl
		default:
			sb.WriteByte(' ')
			sb.WriteString(w)
			col += 1 + wl
		}
	}
	return sb.String()
}
