package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"posledger/internal/core/apperror"
	"posledger/internal/domain/documents"
)

var tracer = otel.Tracer("posledger/storage")

// builder returns a squirrel builder with PostgreSQL placeholder format.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

type docRow struct {
	ID  string `db:"id"`
	Doc []byte `db:"doc"`
}

// DocumentRepo implements documents.Repository over the JSONB collection
// tables. An optional changelog records every mutation.
type DocumentRepo struct {
	pool      *Pool
	changelog *Changelog
}

// NewDocumentRepo creates a document repository. changelog may be nil.
func NewDocumentRepo(pool *Pool, changelog *Changelog) *DocumentRepo {
	return &DocumentRepo{pool: pool, changelog: changelog}
}

// List returns every document of the kind, newest first.
func (r *DocumentRepo) List(ctx context.Context, kind documents.Kind) ([]*documents.Transaction, error) {
	ctx, span := tracer.Start(ctx, "documents.list")
	defer span.End()
	span.SetAttributes(attribute.String("collection", kind.Collection()))

	sql, args, err := builder().
		Select("id", "doc").
		From(kind.Collection()).
		OrderBy("seq DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []docRow
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", kind.Collection(), err)
	}

	out := make([]*documents.Transaction, 0, len(rows))
	for _, row := range rows {
		var doc documents.Transaction
		if err := json.Unmarshal(row.Doc, &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", row.ID, err)
		}
		out = append(out, &doc)
	}
	return out, nil
}

// Get retrieves one document by id.
func (r *DocumentRepo) Get(ctx context.Context, kind documents.Kind, docID string) (*documents.Transaction, error) {
	ctx, span := tracer.Start(ctx, "documents.get")
	defer span.End()
	span.SetAttributes(attribute.String("collection", kind.Collection()))

	sql, args, err := builder().
		Select("id", "doc").
		From(kind.Collection()).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row docRow
	if err := pgxscan.Get(ctx, r.pool, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("document", docID)
		}
		return nil, fmt.Errorf("select %s: %w", kind.Collection(), err)
	}

	var doc documents.Transaction
	if err := json.Unmarshal(row.Doc, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", docID, err)
	}
	return &doc, nil
}

// Save upserts a document by id.
func (r *DocumentRepo) Save(ctx context.Context, kind documents.Kind, doc *documents.Transaction) error {
	ctx, span := tracer.Start(ctx, "documents.save")
	defer span.End()
	span.SetAttributes(attribute.String("collection", kind.Collection()))

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	sql, args, err := builder().
		Insert(kind.Collection()).
		Columns("id", "doc").
		Values(doc.ID, payload).
		Suffix("ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", kind.Collection(), err)
	}

	if r.changelog != nil {
		r.changelog.Record(ctx, kind.Collection(), doc.ID, ChangeSave, payload)
	}
	return nil
}

// Delete removes a document by id.
func (r *DocumentRepo) Delete(ctx context.Context, kind documents.Kind, docID string) error {
	ctx, span := tracer.Start(ctx, "documents.delete")
	defer span.End()
	span.SetAttributes(attribute.String("collection", kind.Collection()))

	sql, args, err := builder().
		Delete(kind.Collection()).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", kind.Collection(), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("document", docID)
	}

	if r.changelog != nil {
		r.changelog.Record(ctx, kind.Collection(), docID, ChangeDelete, nil)
	}
	return nil
}

var _ documents.Repository = (*DocumentRepo)(nil)
