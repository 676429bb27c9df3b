package render

import (
	"strings"
	"testing"
)

func TestPlainTextBecomesSingleParagraph(t *testing.T) {
	got := FormatText("hello world")
	if got != "<p>hello world</p>" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestHeadingFollowedByList(t *testing.T) {
	got := FormatText("## Title\n- item one\n- item two")

	if !strings.Contains(got, "<h2>Title</h2>") {
		t.Fatalf("missing heading: %q", got)
	}
	idx := strings.Index(got, "<ul><li>item one</li><li>item two</li></ul>")
	if idx == -1 {
		t.Fatalf("missing list run: %q", got)
	}
	if idx < strings.Index(got, "<h2>") {
		t.Fatalf("list rendered before heading: %q", got)
	}
}

func TestEmphasisAndInlineCode(t *testing.T) {
	got := FormatText("**bold** and *lean* and `cmd --flag`")
	for _, want := range []string{"<strong>bold</strong>", "<em>lean</em>", "<code>cmd --flag</code>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
}

func TestNumberedItemsNormalizeToBullets(t *testing.T) {
	got := FormatText("1. first\n2. second")
	if !strings.Contains(got, "<ul><li>first</li><li>second</li></ul>") {
		t.Fatalf("numbered items not normalized: %q", got)
	}
	if strings.Contains(got, "<ol>") {
		t.Fatalf("unexpected ordered list: %q", got)
	}
}

func TestParagraphAndLineBreaks(t *testing.T) {
	got := FormatText("first line\nsecond line\n\nnext paragraph")
	if !strings.Contains(got, "<p>first line<br>second line</p>") {
		t.Fatalf("missing line break paragraph: %q", got)
	}
	if !strings.Contains(got, "<p>next paragraph</p>") {
		t.Fatalf("missing second paragraph: %q", got)
	}
}

func TestTrailingBlankLinesLeaveNoEmptyParagraphs(t *testing.T) {
	got := FormatText("only content\n\n\n")
	if strings.Contains(got, "<p></p>") || strings.Contains(got, "<p><br></p>") {
		t.Fatalf("empty paragraph artifact: %q", got)
	}
}

func TestMarkupInInputIsEscaped(t *testing.T) {
	got := FormatText(`<script>alert("hi")</script>`)
	if strings.Contains(got, "<script>") {
		t.Fatalf("unescaped markup: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup: %q", got)
	}
}
