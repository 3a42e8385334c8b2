package mock

import (
	"context"

	"github.com/fwojciec/placelist"
)

var _ placelist.ListService = (*ListService)(nil)

// ListService is a mock implementation of placelist.ListService.
type ListService struct {
	CreateListFn   func(ctx context.Context, list *placelist.List) error
	FindListByIDFn func(ctx context.Context, id string) (*placelist.List, error)
	FindListsFn    func(ctx context.Context, filter placelist.ListFilter) ([]*placelist.List, error)
	DeleteListFn   func(ctx context.Context, id string) error
}

func (s *ListService) CreateList(ctx context.Context, list *placelist.List) error {
	return s.CreateListFn(ctx, list)
}

func (s *ListService) FindListByID(ctx context.Context, id string) (*placelist.List, error) {
	return s.FindListByIDFn(ctx, id)
}

func (s *ListService) FindLists(ctx context.Context, filter placelist.ListFilter) ([]*placelist.List, error) {
	return s.FindListsFn(ctx, filter)
}

func (s *ListService) DeleteList(ctx context.Context, id string) error {
	return s.DeleteListFn(ctx, id)
}

var _ placelist.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of placelist.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string) (*placelist.PlaceList, error)
}

func (s *Scraper) Scrape(ctx context.Context, url string) (*placelist.PlaceList, error) {
	return s.ScrapeFn(ctx, url)
}
