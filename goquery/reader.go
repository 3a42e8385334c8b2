// Package goquery reads place cards and page text out of rendered listing
// HTML using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/placelist"
)

// Selectors configures where cards and their structured fields live in the
// page. Field selectors are tried in order relative to each card; the first
// one with non-empty text wins.
type Selectors struct {
	Card        string
	Name        []string
	Rating      []string
	Description []string
	Price       []string
}

// DefaultSelectors returns the selectors for map list pages.
func DefaultSelectors() Selectors {
	return Selectors{
		Card: "div.m6QErb.XiKgde",
		Name: []string{
			"div.qBF1Pd",
			"h1.DUwDvf",
			"div.fontHeadlineSmall",
			"[role='heading']",
		},
		Rating: []string{
			"span.MW4etd",
			"div.F7nice",
			"span[aria-label*='stars']",
		},
		Description: []string{
			"div.W4Efsd",
			"div.iP2t7d",
			"div.kR99db",
		},
	}
}

// Ensure Reader implements placelist.CardReader and placelist.LineReader.
var (
	_ placelist.CardReader = (*Reader)(nil)
	_ placelist.LineReader = (*Reader)(nil)
)

// Reader extracts cards and text lines from listing HTML.
type Reader struct {
	selectors Selectors
}

// NewReader creates a Reader using the given selectors.
func NewReader(selectors Selectors) *Reader {
	return &Reader{selectors: selectors}
}

// ReadCards returns one card per card container in document order.
// Returns EINVALID if the HTML cannot be parsed.
func (r *Reader) ReadCards(html string) ([]placelist.Card, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	var cards []placelist.Card
	doc.Find(r.selectors.Card).Each(func(_ int, sel *goquery.Selection) {
		cards = append(cards, placelist.Card{
			Text: Text(sel),
			Hints: placelist.CardHints{
				Name:        firstText(sel, r.selectors.Name),
				Rating:      firstText(sel, r.selectors.Rating),
				Description: firstText(sel, r.selectors.Description),
				Price:       firstText(sel, r.selectors.Price),
			},
		})
	})
	return cards, nil
}

// ReadLines returns the visible text of the page body as trimmed, non-empty
// lines. Returns EINVALID if the HTML cannot be parsed.
func (r *Reader) ReadLines(html string) ([]string, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	return placelist.SplitLines(Text(doc.Find("body"))), nil
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, placelist.Errorf(placelist.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// firstText returns the text of the first selector match under sel with
// non-empty text.
func firstText(sel *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := Text(sel.Find(selector).First()); text != "" {
			return text
		}
	}
	return ""
}
