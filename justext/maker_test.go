package justext

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseAndMake(t *testing.T, document string) []*Paragraph {
	t.Helper()
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	Preprocess(root)
	return MakeParagraphs(root)
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"tabs and spaces", "a \t  b", "a b"},
		{"run with newline", "a \n\t b", "a\nb"},
		{"carriage return", "a\r\nb", "a\nb"},
		{"nbsp", "a\u00a0b", "a b"},
		{"narrow nbsp", "a\u202fb", "a b"},
		{"leading and trailing", "  a  ", " a "},
		{"only whitespace", " \t ", " "},
		{"only newline run", " \n ", "\n"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWhitespace(tt.in)
			if got != tt.want {
				t.Errorf("normalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := normalizeWhitespace(got); again != got {
				t.Errorf("normalizeWhitespace is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestMakeParagraphs_EmptyBody(t *testing.T) {
	paragraphs := parseAndMake(t, "<html><body></body></html>")
	if len(paragraphs) != 0 {
		t.Fatalf("got %d paragraphs, want 0", len(paragraphs))
	}
}

func TestMakeParagraphs_SingleHeading(t *testing.T) {
	paragraphs := parseAndMake(t, "<html><body><h2>Foo</h2></body></html>")
	if len(paragraphs) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
	}
	p := paragraphs[0]
	if p.Text != "Foo" {
		t.Errorf("Text = %q, want %q", p.Text, "Foo")
	}
	if p.WordsCount != len(strings.Fields(p.Text)) {
		t.Errorf("WordsCount = %d, want %d", p.WordsCount, len(strings.Fields(p.Text)))
	}
	if !p.Heading {
		t.Error("Heading = false, want true")
	}
	if p.DomPath != "html.body.h2" {
		t.Errorf("DomPath = %q, want html.body.h2", p.DomPath)
	}
	if p.XPath != "/html[1]/body[1]/h2[1]" {
		t.Errorf("XPath = %q, want /html[1]/body[1]/h2[1]", p.XPath)
	}
}

func TestMakeParagraphs_XPathOrdinals(t *testing.T) {
	paragraphs := parseAndMake(t, "<html><body><div><p>one</p></div><div><p>two</p><p>three</p></div></body></html>")
	if len(paragraphs) != 3 {
		t.Fatalf("got %d paragraphs, want 3", len(paragraphs))
	}
	want := []string{
		"/html[1]/body[1]/div[1]/p[1]",
		"/html[1]/body[1]/div[2]/p[1]",
		"/html[1]/body[1]/div[2]/p[2]",
	}
	for i, p := range paragraphs {
		if p.XPath != want[i] {
			t.Errorf("paragraph %d XPath = %q, want %q", i, p.XPath, want[i])
		}
		if p.DomPath != "html.body.div.p" {
			t.Errorf("paragraph %d DomPath = %q, want html.body.div.p", i, p.DomPath)
		}
	}
}

func TestMakeParagraphs_BrSemantics(t *testing.T) {
	t.Run("single br joins", func(t *testing.T) {
		paragraphs := parseAndMake(t, "<html><body><p>a<br>b</p></body></html>")
		if len(paragraphs) != 1 {
			t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
		}
		if paragraphs[0].Text != "a b" {
			t.Errorf("Text = %q, want %q", paragraphs[0].Text, "a b")
		}
	})

	t.Run("double br splits", func(t *testing.T) {
		paragraphs := parseAndMake(t, "<html><body><p>one<br><br>two</p></body></html>")
		if len(paragraphs) != 2 {
			t.Fatalf("got %d paragraphs, want 2", len(paragraphs))
		}
		if paragraphs[0].Text != "one" || paragraphs[1].Text != "two" {
			t.Errorf("texts = %q, %q, want one, two", paragraphs[0].Text, paragraphs[1].Text)
		}
		// the first <br> tag count is undone when the pair splits the paragraph
		if paragraphs[0].TagsCount != 0 {
			t.Errorf("first paragraph TagsCount = %d, want 0", paragraphs[0].TagsCount)
		}
		if paragraphs[1].TagsCount != 0 {
			t.Errorf("second paragraph TagsCount = %d, want 0", paragraphs[1].TagsCount)
		}
	})

	t.Run("text between brs keeps one paragraph", func(t *testing.T) {
		paragraphs := parseAndMake(t, "<html><body><p>a<br>b<br>c</p></body></html>")
		if len(paragraphs) != 1 {
			t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
		}
		if paragraphs[0].Text != "a b c" {
			t.Errorf("Text = %q, want %q", paragraphs[0].Text, "a b c")
		}
		if paragraphs[0].TagsCount != 2 {
			t.Errorf("TagsCount = %d, want 2", paragraphs[0].TagsCount)
		}
	})
}

func TestMakeParagraphs_LinkCounting(t *testing.T) {
	t.Run("plain link", func(t *testing.T) {
		paragraphs := parseAndMake(t, "<html><body><p>go <a>here</a> now</p></body></html>")
		if len(paragraphs) != 1 {
			t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
		}
		p := paragraphs[0]
		if p.Text != "go here now" {
			t.Errorf("Text = %q, want %q", p.Text, "go here now")
		}
		if p.CharsCountInLinks != 4 {
			t.Errorf("CharsCountInLinks = %d, want 4", p.CharsCountInLinks)
		}
		if p.TagsCount != 1 {
			t.Errorf("TagsCount = %d, want 1", p.TagsCount)
		}
	})

	t.Run("inline element inside link", func(t *testing.T) {
		paragraphs := parseAndMake(t, "<html><body><p><a>x<b>y</b></a></p></body></html>")
		if len(paragraphs) != 1 {
			t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
		}
		if paragraphs[0].CharsCountInLinks != 2 {
			t.Errorf("CharsCountInLinks = %d, want 2", paragraphs[0].CharsCountInLinks)
		}
	})

	t.Run("bound holds", func(t *testing.T) {
		paragraphs := parseAndMake(t, "<html><body><p><a>all linked</a></p></body></html>")
		p := paragraphs[0]
		if p.CharsCountInLinks > p.Len() {
			t.Errorf("CharsCountInLinks = %d exceeds text length %d", p.CharsCountInLinks, p.Len())
		}
	})
}

func TestMakeParagraphs_WhitespaceOnlyTextSkipped(t *testing.T) {
	paragraphs := parseAndMake(t, "<html><body><p>   \n\t  </p><p>real</p></body></html>")
	if len(paragraphs) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
	}
	if paragraphs[0].Text != "real" {
		t.Errorf("Text = %q, want %q", paragraphs[0].Text, "real")
	}
}

func TestMakeParagraphs_OrderPreserved(t *testing.T) {
	paragraphs := parseAndMake(t, `<html><body>
		<h1>first</h1>
		<div><p>second</p><p>third</p></div>
		<table><tr><td>fourth</td><td>fifth</td></tr></table>
	</body></html>`)
	want := []string{"first", "second", "third", "fourth", "fifth"}
	if len(paragraphs) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(paragraphs), len(want))
	}
	for i, p := range paragraphs {
		if p.Text != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, p.Text, want[i])
		}
	}
}

func TestIsHeadingPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"html.body.h2", true},
		{"html.body.div.h1.span", true},
		{"html.body.h7", true},
		{"html.body.h0", true},
		{"html.body.p", false},
		{"html.body.header", false},
		{"html.body.h10", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isHeadingPath(tt.path); got != tt.want {
			t.Errorf("isHeadingPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMakeParagraphs_CountersNonNegative(t *testing.T) {
	paragraphs := parseAndMake(t, `<html><body>
		<p>a<br><br>b</p>
		<div><a>l</a><br><br><span>s</span></div>
		<ul><li>x</li><li><a>y</a></li></ul>
	</body></html>`)
	for i, p := range paragraphs {
		if p.TagsCount < 0 {
			t.Errorf("paragraph %d TagsCount = %d, want >= 0", i, p.TagsCount)
		}
		if p.CharsCountInLinks < 0 {
			t.Errorf("paragraph %d CharsCountInLinks = %d, want >= 0", i, p.CharsCountInLinks)
		}
		if p.WordsCount != len(strings.Fields(p.Text)) {
			t.Errorf("paragraph %d WordsCount = %d, want %d", i, p.WordsCount, len(strings.Fields(p.Text)))
		}
	}
}
