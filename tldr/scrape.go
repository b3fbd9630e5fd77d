package tldr

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

const (
	contentSelector  = ".content-center"
	titleSelector    = "h1"
	subtitleSelector = "h2"
)

// childPath is a chain of direct-child steps below an element.
type childPath []string

var (
	sectionPath     = childPath{"div"}
	itemPath        = childPath{"div"}
	headingPath     = childPath{"a", "h3"}
	descriptionPath = childPath{"div"}
	linkPath        = childPath{"a"}
)

func (p childPath) String() string {
	return "> " + strings.Join(p, " > ")
}

func scrape(doc *goquery.Document, category string, date civil.Date) (*Newsletter, error) {
	content, err := selectFirst(doc.Selection, contentSelector)
	if err != nil {
		return nil, err
	}
	title, err := extractText(content, titleSelector)
	if err != nil {
		return nil, err
	}
	subtitle, err := extractText(content, subtitleSelector)
	if err != nil {
		return nil, err
	}
	articles, err := scrapeArticles(content)
	if err != nil {
		return nil, err
	}

	return &Newsletter{
		Title:    title,
		Subtitle: subtitle,
		Category: category,
		Date:     date,
		Articles: articles,
	}, nil
}

// scrapeArticles walks content > div (one per section) > div (one per item).
// Items without a heading link are section headers, sponsor blocks and the
// like, and are skipped.
func scrapeArticles(content *goquery.Selection) ([]Article, error) {
	sections, err := selectChildren(content, sectionPath)
	if err != nil {
		return nil, err
	}

	articles := []Article{}
	for i := range sections.Nodes {
		items, err := selectChildren(sections.Eq(i), itemPath)
		if err != nil {
			return nil, err
		}
		for j := range items.Nodes {
			item := items.Eq(j)
			ok, err := isArticleItem(item)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			article, err := scrapeArticle(item)
			if err != nil {
				return nil, err
			}
			articles = append(articles, article)
		}
	}
	return articles, nil
}

func isArticleItem(item *goquery.Selection) (bool, error) {
	return hasChild(item, headingPath)
}

func scrapeArticle(item *goquery.Selection) (Article, error) {
	heading, err := selectFirstChild(item, headingPath)
	if err != nil {
		return Article{}, err
	}
	description, err := selectFirstChild(item, descriptionPath)
	if err != nil {
		return Article{}, err
	}
	link, err := selectFirstChild(item, linkPath)
	if err != nil {
		return Article{}, err
	}
	url, ok := link.Attr("href")
	if !ok {
		return Article{}, missingAttribute(linkPath.String(), "href")
	}

	return Article{
		Title:       heading.Text(),
		Description: description.Text(),
		URL:         url,
	}, nil
}

// extractText returns the concatenated text nodes of the first descendant
// matching selector, whitespace included.
func extractText(sel *goquery.Selection, selector string) (string, error) {
	found, err := selectFirst(sel, selector)
	if err != nil {
		return "", err
	}
	return found.Text(), nil
}

func compile(selector string) (cascadia.Selector, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, &Error{Kind: KindSelectorSyntax, Selector: selector, Err: err}
	}
	return m, nil
}

func selectFirst(sel *goquery.Selection, selector string) (*goquery.Selection, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	found := sel.FindMatcher(m).First()
	if found.Length() == 0 {
		return nil, elementNotFound(selector)
	}
	return found, nil
}

func selectChildren(sel *goquery.Selection, path childPath) (*goquery.Selection, error) {
	cur := sel
	for _, step := range path {
		m, err := compile(step)
		if err != nil {
			return nil, err
		}
		cur = cur.ChildrenMatcher(m)
	}
	return cur, nil
}

func selectFirstChild(sel *goquery.Selection, path childPath) (*goquery.Selection, error) {
	found, err := selectChildren(sel, path)
	if err != nil {
		return nil, err
	}
	if found.Length() == 0 {
		return nil, elementNotFound(path.String())
	}
	return found.First(), nil
}

func hasChild(sel *goquery.Selection, path childPath) (bool, error) {
	found, err := selectChildren(sel, path)
	if err != nil {
		return false, err
	}
	return found.Length() > 0, nil
}
