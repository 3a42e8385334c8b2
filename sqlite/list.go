package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/placelist"
	"github.com/google/uuid"
)

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Compile-time interface verification.
var _ placelist.ListService = (*ListService)(nil)

// ListService implements placelist.ListService using SQLite.
type ListService struct {
	db *DB
}

// NewListService creates a new ListService.
func NewListService(db *DB) *ListService {
	return &ListService{db: db}
}

// CreateList saves a list and its items in a single transaction.
func (s *ListService) CreateList(ctx context.Context, list *placelist.List) error {
	if err := list.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := uuid.New().String()
	fetchedAt := time.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO lists (id, source_url, list_description, fetched_at)
		VALUES (?, ?, ?, ?)
	`, id, list.SourceURL, toNull(list.ListDescription), fetchedAt.Format(timeFormat)); err != nil {
		return err
	}

	for i, p := range list.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO places (list_id, position, name, rating, description, price)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, i, toNull(p.Name), toNull(p.Rating), toNull(p.Description), toNull(p.Price)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	list.ID = id
	list.FetchedAt = fetchedAt
	list.PlaceCount = len(list.Items)
	return nil
}

// FindListByID retrieves a list with its items in page order.
func (s *ListService) FindListByID(ctx context.Context, id string) (*placelist.List, error) {
	lists, err := s.findLists(ctx, placelist.ListFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return nil, placelist.Errorf(placelist.ENOTFOUND, "list not found")
	}
	list := lists[0]

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, rating, description, price
		FROM places
		WHERE list_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list.Items = []placelist.Place{}
	for rows.Next() {
		var name, rating, description, price sql.NullString
		if err := rows.Scan(&name, &rating, &description, &price); err != nil {
			return nil, err
		}
		list.Items = append(list.Items, placelist.Place{
			Name:        name.String,
			Rating:      rating.String,
			Description: description.String,
			Price:       price.String,
		})
	}

	return list, rows.Err()
}

// FindLists retrieves lists matching the filter, newest first.
func (s *ListService) FindLists(ctx context.Context, filter placelist.ListFilter) ([]*placelist.List, error) {
	return s.findLists(ctx, filter)
}

func (s *ListService) findLists(ctx context.Context, filter placelist.ListFilter) ([]*placelist.List, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, source_url, list_description, fetched_at,
			(SELECT COUNT(*) FROM places WHERE places.list_id = lists.id)
		FROM lists WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*placelist.List
	for rows.Next() {
		var list placelist.List
		var description sql.NullString
		var fetchedAt string

		if err := rows.Scan(&list.ID, &list.SourceURL, &description, &fetchedAt, &list.PlaceCount); err != nil {
			return nil, err
		}
		list.ListDescription = description.String

		t, err := parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}
		list.FetchedAt = t

		lists = append(lists, &list)
	}

	return lists, rows.Err()
}

// DeleteList permanently removes a list and its items.
func (s *ListService) DeleteList(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM lists WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return placelist.Errorf(placelist.ENOTFOUND, "list not found")
	}

	return nil
}
