package render

import (
	"html"
	"regexp"
	"strings"
)

// The text formatter applies ordered substitution passes, each operating on
// the output of the previous pass. Input is HTML-escaped up front so none of
// the later passes can emit untrusted markup.

var (
	boldRe    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.+?)\*`)
	codeRe    = regexp.MustCompile("`([^`\n]+)`")
	h3Re      = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Re      = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Re      = regexp.MustCompile(`(?m)^# (.+)$`)
	numItemRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+(.+)$`)
	bulletRe  = regexp.MustCompile(`(?m)^- (.+)$`)
	// A run of adjacent list items on one line, after newline joining.
	liRunRe     = regexp.MustCompile(`(?:<li>.*?</li>)+`)
	emptyParaRe = regexp.MustCompile(`<p>(?:\s|<br>)*</p>`)
)

// FormatText converts lightly marked-up plain text to HTML: bold/italic
// emphasis, inline code, heading levels 1-3, unordered bullets, numbered
// items normalized to bullets, paragraph breaks on blank lines, and line
// breaks. Empty-paragraph artifacts are stripped in the final pass.
func FormatText(text string) string {
	out := html.EscapeString(text)

	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = codeRe.ReplaceAllString(out, "<code>$1</code>")

	out = h3Re.ReplaceAllString(out, "<h3>$1</h3>")
	out = h2Re.ReplaceAllString(out, "<h2>$1</h2>")
	out = h1Re.ReplaceAllString(out, "<h1>$1</h1>")

	out = numItemRe.ReplaceAllString(out, "<li>$1</li>")
	out = bulletRe.ReplaceAllString(out, "<li>$1</li>")
	out = strings.ReplaceAll(out, "</li>\n<li>", "</li><li>")
	out = liRunRe.ReplaceAllString(out, "<ul>$0</ul>")

	paragraphs := strings.Split(out, "\n\n")
	for i := range paragraphs {
		paragraphs[i] = "<p>" + strings.ReplaceAll(paragraphs[i], "\n", "<br>") + "</p>"
	}
	out = strings.Join(paragraphs, "")

	return emptyParaRe.ReplaceAllString(out, "")
}
