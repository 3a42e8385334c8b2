package placelist

// Card is one visual listing card: its visible text plus any fields an
// adapter could read from structured sub-elements.
type Card struct {
	Text  string
	Hints CardHints
}

// CardHints holds field values read directly from a card's markup.
// Empty fields fall back to extraction from the card text.
type CardHints struct {
	Name        string
	Rating      string
	Description string
	Price       string
}

// CardReader reads listing cards out of rendered page HTML.
type CardReader interface {
	// ReadCards returns the cards of the page in visual order.
	ReadCards(html string) ([]Card, error)
}

// LineReader reads the visible text of a page as a flat sequence of lines.
type LineReader interface {
	// ReadLines returns the trimmed, non-empty text lines of the page in
	// document order.
	ReadLines(html string) ([]string, error)
}

// ExtractCard extracts a place from a single card. Each field prefers its
// hint and otherwise falls back to scanning the card text.
func ExtractCard(card Card) Place {
	lines := SplitLines(card.Text)

	p := Place{
		Name:        card.Hints.Name,
		Rating:      card.Hints.Rating,
		Description: card.Hints.Description,
		Price:       card.Hints.Price,
	}
	if p.Name == "" && len(lines) > 0 {
		p.Name = lines[0]
	}
	if p.Rating == "" {
		p.Rating = ExtractRating(card.Text)
	}
	if p.Description == "" {
		p.Description = ExtractDescription(lines)
	}
	if p.Price == "" {
		p.Price = ExtractPrice(card.Text)
	}
	return p
}

// ParseCards extracts a PlaceList from cards given in visual order.
func ParseCards(cards []Card) *PlaceList {
	var b ListBuilder
	for _, card := range cards {
		b.Add(ExtractCard(card))
	}
	return b.List()
}

// ListBuilder collects places extracted from cards in visual order.
// The first place added describes the list itself: its description becomes
// the list description and the place is never emitted. Later places are kept
// only if they have at least one field and their description differs from
// the list description.
//
// ListBuilder is not safe for concurrent use.
type ListBuilder struct {
	started bool
	list    PlaceList
}

// Add records the next place. It reports whether the place was kept as an item.
func (b *ListBuilder) Add(p Place) bool {
	if !b.started {
		b.started = true
		b.list.ListDescription = p.Description
		return false
	}
	if !keep(p, b.list.ListDescription) {
		return false
	}
	b.list.Items = append(b.list.Items, p)
	return true
}

// List returns the collected list. Items is never nil.
func (b *ListBuilder) List() *PlaceList {
	items := make([]Place, len(b.list.Items))
	copy(items, b.list.Items)
	return &PlaceList{
		ListDescription: b.list.ListDescription,
		Items:           items,
	}
}
