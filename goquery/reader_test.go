package goquery_test

import (
	"strings"
	"testing"

	pq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/placelist"
	"github.com/fwojciec/placelist/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listHTML = `<!DOCTYPE html>
<html>
<head><title>Maps</title><style>.x{}</style></head>
<body>
<div class="m6QErb XiKgde">
	<h1 class="DUwDvf">Weekend eats</h1>
	<div class="W4Efsd">Favourite Spots</div>
	<div>3 places</div>
</div>
<div class="m6QErb XiKgde">
	<div class="qBF1Pd fontHeadlineSmall">Joe's Pizza</div>
	<div class="F7nice"><span class="MW4etd">4.5</span> <span>(200)</span></div>
	<div class="W4Efsd"><span>Italian</span> · <span>$$</span></div>
	<button>Save</button>
</div>
<div class="m6QErb XiKgde">
	<div>Cafe Luna</div>
	<div>4.2 (50)</div>
	<div>Cafe</div>
	<script>var hidden = "4.9 (1)";</script>
</div>
</body>
</html>`

func TestReader_ReadCards(t *testing.T) {
	t.Parallel()

	t.Run("reads cards in document order with hints", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewReader(goquery.DefaultSelectors())

		cards, err := r.ReadCards(listHTML)

		require.NoError(t, err)
		require.Len(t, cards, 3)

		assert.Equal(t, "Weekend eats", cards[0].Hints.Name)
		assert.Equal(t, "Favourite Spots", cards[0].Hints.Description)

		assert.Equal(t, "Joe's Pizza", cards[1].Hints.Name)
		assert.Equal(t, "4.5", cards[1].Hints.Rating)
		assert.Equal(t, "Italian · $$", cards[1].Hints.Description)
		assert.Empty(t, cards[1].Hints.Price)
		assert.Equal(t, "Joe's Pizza\n4.5 (200)\nItalian · $$\nSave", cards[1].Text)
	})

	t.Run("cards without hints keep their text", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewReader(goquery.DefaultSelectors())

		cards, err := r.ReadCards(listHTML)

		require.NoError(t, err)
		require.Len(t, cards, 3)
		assert.Equal(t, placelist.CardHints{}, cards[2].Hints)
		assert.Equal(t, "Cafe Luna\n4.2 (50)\nCafe", cards[2].Text)
	})

	t.Run("feeds the card extraction protocol", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewReader(goquery.DefaultSelectors())

		cards, err := r.ReadCards(listHTML)
		require.NoError(t, err)

		list := placelist.ParseCards(cards)

		assert.Equal(t, "Favourite Spots", list.ListDescription)
		require.Len(t, list.Items, 2)
		assert.Equal(t, placelist.Place{
			Name:        "Joe's Pizza",
			Rating:      "4.5",
			Description: "Italian · $$",
			Price:       "$$",
		}, list.Items[0])
		assert.Equal(t, placelist.Place{
			Name:        "Cafe Luna",
			Rating:      "4.2",
			Description: "Cafe",
		}, list.Items[1])
	})

	t.Run("custom price selector", func(t *testing.T) {
		t.Parallel()

		selectors := goquery.DefaultSelectors()
		selectors.Price = []string{"span.price"}
		r := goquery.NewReader(selectors)

		cards, err := r.ReadCards(`<div class="m6QErb XiKgde"><span class="price">£10–20</span></div>`)

		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "£10–20", cards[0].Hints.Price)
	})

	t.Run("page without cards", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewReader(goquery.DefaultSelectors())

		cards, err := r.ReadCards(`<html><body><p>Nothing here</p></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, cards)
	})
}

func TestReader_ReadLines(t *testing.T) {
	t.Parallel()

	t.Run("flattens visible body text", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewReader(goquery.DefaultSelectors())

		lines, err := r.ReadLines(listHTML)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"Weekend eats", "Favourite Spots", "3 places",
			"Joe's Pizza", "4.5 (200)", "Italian · $$", "Save",
			"Cafe Luna", "4.2 (50)", "Cafe",
		}, lines)
	})

	t.Run("feeds the segmenter", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewReader(goquery.DefaultSelectors())

		lines, err := r.ReadLines(listHTML)
		require.NoError(t, err)

		list := placelist.NewSegmenter().Parse(lines)

		assert.Equal(t, "Favourite Spots", list.ListDescription)
		require.Len(t, list.Items, 2)
		assert.Equal(t, "Joe's Pizza", list.Items[0].Name)
		assert.Equal(t, "$$", list.Items[0].Price)
		assert.Equal(t, "Cafe Luna", list.Items[1].Name)
	})
}

func TestText(t *testing.T) {
	t.Parallel()

	render := func(t *testing.T, html string) string {
		t.Helper()
		doc, err := pq.NewDocumentFromReader(strings.NewReader(html))
		require.NoError(t, err)
		return goquery.Text(doc.Find("body"))
	}

	t.Run("breaks lines at block elements and br", func(t *testing.T) {
		t.Parallel()

		got := render(t, `<body><div>One</div><p>Two<br>Three</p><span>Four</span></body>`)

		assert.Equal(t, "One\nTwo\nThree\nFour", got)
	})

	t.Run("collapses whitespace inside a line", func(t *testing.T) {
		t.Parallel()

		got := render(t, "<body><div>  Joe's \n\t Pizza  <b>Bar</b></div></body>")

		assert.Equal(t, "Joe's Pizza Bar", got)
	})

	t.Run("adjacent inline elements join without space", func(t *testing.T) {
		t.Parallel()

		got := render(t, `<body><span>4.5</span><span>(200)</span></body>`)

		assert.Equal(t, "4.5(200)", got)
	})

	t.Run("skips scripts and styles", func(t *testing.T) {
		t.Parallel()

		got := render(t, `<body><script>x()</script><style>p{}</style><div>Shown</div></body>`)

		assert.Equal(t, "Shown", got)
	})
}
