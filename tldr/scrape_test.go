package tldr

import (
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

const newsletterHTML = `
<div class="content-center">
    <h1>Title of Newsletter</h1>
    <h2>Subtitle of Newsletter</h2>
    <div>
        <div>
            <a href="http://example.com/article">
                <h3>Article Title</h3>
            </a>
            <div>Description of Article</div>
        </div>
    </div>
</div>
`

var issueDate = civil.Date{Year: 2023, Month: 4, Day: 12}

func newDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("NewDocumentFromReader() error = %v", err)
	}
	return doc
}

func TestFromHTML(t *testing.T) {
	got, err := FromHTML(newsletterHTML, "News", issueDate)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	want := &Newsletter{
		Title:    "Title of Newsletter",
		Subtitle: "Subtitle of Newsletter",
		Category: "News",
		Date:     issueDate,
		Articles: []Article{{
			Title:       "Article Title",
			Description: "Description of Article",
			URL:         "http://example.com/article",
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromHTML() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromHTMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		kind     ErrorKind
		selector string
	}{
		{
			name:     "wrong class",
			html:     `<div class="wrong-class"></div>`,
			kind:     KindElementNotFound,
			selector: ".content-center",
		},
		{
			name:     "empty document",
			html:     ``,
			kind:     KindElementNotFound,
			selector: ".content-center",
		},
		{
			name:     "missing title",
			html:     `<div class="content-center"><h2>Sub</h2></div>`,
			kind:     KindElementNotFound,
			selector: "h1",
		},
		{
			name: "missing subtitle skips articles",
			html: `<div class="content-center"><h1>Title</h1>
				<div><div><a><h3>No href</h3></a></div></div></div>`,
			kind:     KindElementNotFound,
			selector: "h2",
		},
		{
			name: "article without description",
			html: `<div class="content-center"><h1>T</h1><h2>S</h2>
				<div><div><a href="http://example.com"><h3>A</h3></a></div></div></div>`,
			kind:     KindElementNotFound,
			selector: "> div",
		},
		{
			name: "article link without href",
			html: `<div class="content-center"><h1>T</h1><h2>S</h2>
				<div><div><a><h3>A</h3></a><div>D</div></div></div></div>`,
			kind:     KindMissingAttribute,
			selector: "> a",
		},
		{
			name: "one broken article fails the issue",
			html: `<div class="content-center"><h1>T</h1><h2>S</h2>
				<div>
					<div><a href="http://example.com/1"><h3>One</h3></a><div>D1</div></div>
					<div><a href="http://example.com/2"><h3>Two</h3></a></div>
				</div></div>`,
			kind:     KindElementNotFound,
			selector: "> div",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHTML(tt.html, "News", issueDate)
			if got != nil {
				t.Errorf("FromHTML() = %+v, want nil", got)
			}
			if err == nil {
				t.Fatal("FromHTML() expected error, got nil")
			}

			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("FromHTML() error type = %T, want *Error", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Error.Kind = %v, want %v", e.Kind, tt.kind)
			}
			if e.Selector != tt.selector {
				t.Errorf("Error.Selector = %q, want %q", e.Selector, tt.selector)
			}
			if tt.kind == KindMissingAttribute && e.Attribute != "href" {
				t.Errorf("Error.Attribute = %q, want %q", e.Attribute, "href")
			}
		})
	}
}

func TestFromHTMLSkipsNonArticleItems(t *testing.T) {
	html := `
<div class="content-center">
    <h1>Title</h1>
    <h2>Subtitle</h2>
    <div>
        <div><h3>Headlines &amp; Launches</h3></div>
        <div><a href="http://example.com/1"><h3>First</h3></a><div>One</div></div>
        <div><a href="http://example.com/sponsor"><span>Sponsor</span></a><div>Ad</div></div>
        <div><a href="http://example.com/2"><h3>Second</h3></a><div>Two</div></div>
    </div>
    <div>
        <div><h3>Deep Dives</h3></div>
        <div><div><a href="http://example.com/nested"><h3>Too deep</h3></a><div>x</div></div></div>
        <div><a href="http://example.com/3"><h3>Third</h3></a><div>Three</div></div>
    </div>
    <section><a href="http://example.com/outside"><h3>Not in a section</h3></a><div>x</div></section>
</div>
`
	got, err := FromHTML(html, "tech", issueDate)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	want := []Article{
		{Title: "First", Description: "One", URL: "http://example.com/1"},
		{Title: "Second", Description: "Two", URL: "http://example.com/2"},
		{Title: "Third", Description: "Three", URL: "http://example.com/3"},
	}
	if diff := cmp.Diff(want, got.Articles); diff != "" {
		t.Errorf("Articles mismatch (-want +got):\n%s", diff)
	}
}

func TestFromHTMLNoSections(t *testing.T) {
	got, err := FromHTML(`<div class="content-center"><h1>T</h1><h2>S</h2></div>`, "ai", issueDate)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if got.Articles == nil || len(got.Articles) != 0 {
		t.Errorf("Articles = %#v, want empty non-nil slice", got.Articles)
	}
}

func TestFromHTMLFirstContentRegion(t *testing.T) {
	html := `
<div class="content-center"><h1>First</h1><h2>One</h2></div>
<div class="content-center"><h1>Second</h1><h2>Two</h2></div>
`
	got, err := FromHTML(html, "ai", issueDate)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if got.Title != "First" || got.Subtitle != "One" {
		t.Errorf("FromHTML() title/subtitle = %q/%q, want %q/%q", got.Title, got.Subtitle, "First", "One")
	}
}

func TestFromHTMLKeepsWhitespace(t *testing.T) {
	html := `<div class="content-center"><h1>  Spaced <b>Title</b> </h1><h2>
Sub</h2>
<div><div><a href="u"><h3> A <span>(3 minute read)</span></h3></a><div> line one
line two </div></div></div></div>`

	got, err := FromHTML(html, "ai", issueDate)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if got.Title != "  Spaced Title " {
		t.Errorf("Title = %q, want %q", got.Title, "  Spaced Title ")
	}
	if got.Subtitle != "\nSub" {
		t.Errorf("Subtitle = %q, want %q", got.Subtitle, "\nSub")
	}
	if got.Articles[0].Title != " A (3 minute read)" {
		t.Errorf("Article.Title = %q, want %q", got.Articles[0].Title, " A (3 minute read)")
	}
	if got.Articles[0].Description != " line one\nline two " {
		t.Errorf("Article.Description = %q, want %q", got.Articles[0].Description, " line one\nline two ")
	}
}

func TestExtractText(t *testing.T) {
	doc := newDocument(t, `<div><h1>Hello World</h1></div>`)

	got, err := extractText(doc.Selection, "h1")
	if err != nil {
		t.Fatalf("extractText() error = %v", err)
	}
	if got != "Hello World" {
		t.Errorf("extractText() = %q, want %q", got, "Hello World")
	}

	if _, err := extractText(doc.Selection, "h2"); !IsKind(err, KindElementNotFound) {
		t.Errorf("extractText() error = %v, want element not found", err)
	}
}

func TestSelectFirst(t *testing.T) {
	doc := newDocument(t, `<div><p>One</p><p>Two</p></div>`)

	got, err := selectFirst(doc.Selection, "p")
	if err != nil {
		t.Fatalf("selectFirst() error = %v", err)
	}
	if got.Text() != "One" {
		t.Errorf("selectFirst() text = %q, want %q", got.Text(), "One")
	}

	if _, err := selectFirst(doc.Selection, "h1"); !IsKind(err, KindElementNotFound) {
		t.Errorf("selectFirst() error = %v, want element not found", err)
	}
}

func TestSelectFirstInvalidSelector(t *testing.T) {
	doc := newDocument(t, `<div></div>`)

	_, err := selectFirst(doc.Selection, "div[")
	if !IsKind(err, KindSelectorSyntax) {
		t.Fatalf("selectFirst() error = %v, want selector syntax", err)
	}
	e := err.(*Error)
	if e.Selector != "div[" || e.Err == nil {
		t.Errorf("selectFirst() error = %+v, want selector and cause set", e)
	}
}

func TestSelectChildren(t *testing.T) {
	doc := newDocument(t, `<section id="root"><span>One</span><p><span>Nested</span></p><span>Two</span></section>`)
	root := doc.Find("#root")

	got, err := selectChildren(root, childPath{"span"})
	if err != nil {
		t.Fatalf("selectChildren() error = %v", err)
	}
	if got.Length() != 2 {
		t.Errorf("selectChildren() matched %d elements, want 2", got.Length())
	}
}

func TestHasChild(t *testing.T) {
	tests := []struct {
		name string
		html string
		path childPath
		want bool
	}{
		{"anchor heading", `<div id="item"><a><h3>Title</h3></a></div>`, childPath{"a", "h3"}, true},
		{"wrong heading", `<div id="item"><a><h3>Title</h3></a></div>`, childPath{"a", "h4"}, false},
		{"heading not direct", `<div id="item"><a><span><h3>Title</h3></span></a></div>`, childPath{"a", "h3"}, false},
		{"anchor not direct", `<div id="item"><div><a><h3>Title</h3></a></div></div>`, childPath{"a", "h3"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDocument(t, tt.html)
			got, err := hasChild(doc.Find("#item"), tt.path)
			if err != nil {
				t.Fatalf("hasChild() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("hasChild(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestChildPathString(t *testing.T) {
	if got := headingPath.String(); got != "> a > h3" {
		t.Errorf("String() = %q, want %q", got, "> a > h3")
	}
}
