package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"posledger/internal/core/apperror"
	"posledger/internal/domain/catalog/item"
)

const itemsTable = "pos_items"

// ItemRepo implements item.Repository over the pos_items JSONB table.
type ItemRepo struct {
	pool      *Pool
	changelog *Changelog
}

// NewItemRepo creates an item repository. changelog may be nil.
func NewItemRepo(pool *Pool, changelog *Changelog) *ItemRepo {
	return &ItemRepo{pool: pool, changelog: changelog}
}

// List returns the full catalog in insertion order.
func (r *ItemRepo) List(ctx context.Context) ([]*item.Item, error) {
	ctx, span := tracer.Start(ctx, "items.list")
	defer span.End()

	sql, args, err := builder().
		Select("id", "doc").
		From(itemsTable).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []docRow
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", itemsTable, err)
	}

	out := make([]*item.Item, 0, len(rows))
	for _, row := range rows {
		var it item.Item
		if err := json.Unmarshal(row.Doc, &it); err != nil {
			return nil, fmt.Errorf("decode item %s: %w", row.ID, err)
		}
		out = append(out, &it)
	}
	return out, nil
}

// Get retrieves one item by id.
func (r *ItemRepo) Get(ctx context.Context, itemID string) (*item.Item, error) {
	ctx, span := tracer.Start(ctx, "items.get")
	defer span.End()

	sql, args, err := builder().
		Select("id", "doc").
		From(itemsTable).
		Where(squirrel.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row docRow
	if err := pgxscan.Get(ctx, r.pool, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("item", itemID)
		}
		return nil, fmt.Errorf("select %s: %w", itemsTable, err)
	}

	var it item.Item
	if err := json.Unmarshal(row.Doc, &it); err != nil {
		return nil, fmt.Errorf("decode item %s: %w", itemID, err)
	}
	return &it, nil
}

// Save upserts an item by id.
func (r *ItemRepo) Save(ctx context.Context, it *item.Item) error {
	ctx, span := tracer.Start(ctx, "items.save")
	defer span.End()

	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}

	sql, args, err := builder().
		Insert(itemsTable).
		Columns("id", "doc").
		Values(it.ID, payload).
		Suffix("ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", itemsTable, err)
	}

	if r.changelog != nil {
		r.changelog.Record(ctx, itemsTable, it.ID, ChangeSave, payload)
	}
	return nil
}

// Delete removes an item by id.
func (r *ItemRepo) Delete(ctx context.Context, itemID string) error {
	ctx, span := tracer.Start(ctx, "items.delete")
	defer span.End()

	sql, args, err := builder().
		Delete(itemsTable).
		Where(squirrel.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", itemsTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID)
	}

	if r.changelog != nil {
		r.changelog.Record(ctx, itemsTable, itemID, ChangeDelete, nil)
	}
	return nil
}

var _ item.Repository = (*ItemRepo)(nil)
