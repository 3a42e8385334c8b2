package mock

import (
	"context"

	"github.com/fwojciec/placelist"
)

var _ placelist.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of placelist.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ placelist.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of placelist.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ placelist.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of placelist.SnapshotStore.
type SnapshotStore struct {
	SaveFn func(ctx context.Context, url string, html string) (string, error)
}

func (s *SnapshotStore) Save(ctx context.Context, url string, html string) (string, error) {
	return s.SaveFn(ctx, url, html)
}
