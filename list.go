package placelist

import (
	"context"
	"time"
)

// List is a scraped listing saved to history.
type List struct {
	ID              string    `json:"id"`
	SourceURL       string    `json:"sourceUrl"`
	ListDescription string    `json:"listDescription"`
	Items           []Place   `json:"items"`
	PlaceCount      int       `json:"placeCount"`
	FetchedAt       time.Time `json:"fetchedAt"`
}

// Validate returns an error if the list contains invalid fields.
func (l *List) Validate() error {
	if l.SourceURL == "" {
		return Errorf(EINVALID, "list source URL required")
	}
	return nil
}

// PlaceList returns the extraction result stored in the list.
func (l *List) PlaceList() *PlaceList {
	items := l.Items
	if items == nil {
		items = []Place{}
	}
	return &PlaceList{ListDescription: l.ListDescription, Items: items}
}

// ListService represents a service for managing scraped list history.
type ListService interface {
	// CreateList saves a scraped list and assigns its ID and FetchedAt.
	CreateList(ctx context.Context, list *List) error

	// FindListByID retrieves a list with its items.
	// Returns ENOTFOUND if list does not exist.
	FindListByID(ctx context.Context, id string) (*List, error)

	// FindLists retrieves lists matching the filter, newest first.
	// Items are not loaded; PlaceCount is set.
	FindLists(ctx context.Context, filter ListFilter) ([]*List, error)

	// DeleteList permanently removes a list and its items.
	// Returns ENOTFOUND if list does not exist.
	DeleteList(ctx context.Context, id string) error
}

// ListFilter represents a filter for FindLists.
type ListFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
