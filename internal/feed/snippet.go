package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxSnippetLen bounds the stored description, in runes.
const MaxSnippetLen = 500

// CleanSnippet strips markup from a feed description and collapses
// whitespace.
func CleanSnippet(html string) string {
	if html == "" {
		return ""
	}

	text := html
	if strings.ContainsAny(html, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err == nil {
			text = doc.Text()
		}
	}

	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > MaxSnippetLen {
		text = strings.TrimSpace(string(r[:MaxSnippetLen])) + "…"
	}
	return text
}

// FirstImage returns the src of the first img element in html.
func FirstImage(html string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
