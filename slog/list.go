package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/placelist"
)

var _ placelist.ListService = (*LoggingListService)(nil)

// LoggingListService wraps a ListService and logs writes at info level and
// reads at debug level.
type LoggingListService struct {
	next   placelist.ListService
	logger *slog.Logger
}

// NewLoggingListService creates a new LoggingListService.
func NewLoggingListService(next placelist.ListService, logger *slog.Logger) *LoggingListService {
	return &LoggingListService{next: next, logger: logger}
}

func (s *LoggingListService) CreateList(ctx context.Context, list *placelist.List) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create list",
			"id", list.ID,
			"source_url", list.SourceURL,
			"items", len(list.Items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateList(ctx, list)
}

func (s *LoggingListService) FindListByID(ctx context.Context, id string) (list *placelist.List, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find list",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindListByID(ctx, id)
}

func (s *LoggingListService) FindLists(ctx context.Context, filter placelist.ListFilter) (lists []*placelist.List, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find lists",
			"n", len(lists),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLists(ctx, filter)
}

func (s *LoggingListService) DeleteList(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete list",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteList(ctx, id)
}
