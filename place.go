package placelist

import (
	"context"
	"encoding/json"
)

// Place is a single place record extracted from a listing.
// Every field is optional; an empty string means the signal was not found.
type Place struct {
	Name        string
	Rating      string
	Description string
	Price       string
}

// IsEmpty reports whether no field of the place was extracted.
func (p Place) IsEmpty() bool {
	return p.Name == "" && p.Rating == "" && p.Description == "" && p.Price == ""
}

// placeJSON is the wire shape of a Place. Absent fields encode as null.
type placeJSON struct {
	Name        *string `json:"name"`
	Rating      *string `json:"rating"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
}

// MarshalJSON encodes absent fields as null.
func (p Place) MarshalJSON() ([]byte, error) {
	return json.Marshal(placeJSON{
		Name:        nullable(p.Name),
		Rating:      nullable(p.Rating),
		Description: nullable(p.Description),
		Price:       nullable(p.Price),
	})
}

// UnmarshalJSON decodes null fields as empty strings.
func (p *Place) UnmarshalJSON(data []byte) error {
	var v placeJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Place{
		Name:        deref(v.Name),
		Rating:      deref(v.Rating),
		Description: deref(v.Description),
		Price:       deref(v.Price),
	}
	return nil
}

// PlaceList is the result of extracting a listing page: an optional
// description of the list itself and the places it contains, in page order.
type PlaceList struct {
	ListDescription string
	Items           []Place
}

type placeListJSON struct {
	ListDescription *string `json:"list_description"`
	Items           []Place `json:"items"`
}

// MarshalJSON encodes an absent list description as null and always emits
// items as an array.
func (l PlaceList) MarshalJSON() ([]byte, error) {
	items := l.Items
	if items == nil {
		items = []Place{}
	}
	return json.Marshal(placeListJSON{
		ListDescription: nullable(l.ListDescription),
		Items:           items,
	})
}

// UnmarshalJSON decodes a null list description as an empty string.
func (l *PlaceList) UnmarshalJSON(data []byte) error {
	var v placeListJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	l.ListDescription = deref(v.ListDescription)
	l.Items = v.Items
	if l.Items == nil {
		l.Items = []Place{}
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Scraper turns a listing URL into a PlaceList.
// Implementations hide page fetching, card discovery and the choice between
// per-card and flat line extraction.
type Scraper interface {
	// Scrape fetches the listing page at url and extracts its places.
	// Returns EINVALID if url is not an absolute http(s) URL.
	Scrape(ctx context.Context, url string) (*PlaceList, error)
}
