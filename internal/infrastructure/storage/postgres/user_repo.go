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
	"posledger/internal/domain/auth"
)

const usersTable = "pos_users"

// storedUser carries the password hash alongside the account, since the
// model's json tag hides it from API responses.
type storedUser struct {
	auth.User
	PasswordHash string `json:"passwordHash"`
}

// UserRepo implements auth.Repository over the pos_users JSONB table.
type UserRepo struct {
	pool *Pool
}

// NewUserRepo creates a user repository.
func NewUserRepo(pool *Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// List returns all users in insertion order.
func (r *UserRepo) List(ctx context.Context) ([]*auth.User, error) {
	ctx, span := tracer.Start(ctx, "users.list")
	defer span.End()

	sql, args, err := builder().
		Select("id", "doc").
		From(usersTable).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []docRow
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", usersTable, err)
	}

	out := make([]*auth.User, 0, len(rows))
	for _, row := range rows {
		u, err := decodeUser(row.Doc)
		if err != nil {
			return nil, fmt.Errorf("decode user %s: %w", row.ID, err)
		}
		out = append(out, u)
	}
	return out, nil
}

// Get retrieves a user by id.
func (r *UserRepo) Get(ctx context.Context, userID string) (*auth.User, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": userID}, userID)
}

// GetByUsername retrieves a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.getWhere(ctx, squirrel.Eq{"username": username}, username)
}

func (r *UserRepo) getWhere(ctx context.Context, where squirrel.Eq, key string) (*auth.User, error) {
	ctx, span := tracer.Start(ctx, "users.get")
	defer span.End()

	sql, args, err := builder().
		Select("id", "doc").
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row docRow
	if err := pgxscan.Get(ctx, r.pool, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("select %s: %w", usersTable, err)
	}

	u, err := decodeUser(row.Doc)
	if err != nil {
		return nil, fmt.Errorf("decode user %s: %w", row.ID, err)
	}
	return u, nil
}

// Save upserts a user by id. The username column backs the uniqueness
// constraint; a collision surfaces as a duplicate error.
func (r *UserRepo) Save(ctx context.Context, u *auth.User) error {
	ctx, span := tracer.Start(ctx, "users.save")
	defer span.End()

	payload, err := json.Marshal(storedUser{User: *u, PasswordHash: u.PasswordHash})
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	sql, args, err := builder().
		Insert(usersTable).
		Columns("id", "username", "doc").
		Values(u.ID, u.Username, payload).
		Suffix("ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, doc = EXCLUDED.doc").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", usersTable, err)
	}
	return nil
}

// Delete removes a user by id.
func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	ctx, span := tracer.Start(ctx, "users.delete")
	defer span.End()

	sql, args, err := builder().
		Delete(usersTable).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", usersTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID)
	}
	return nil
}

func decodeUser(doc []byte) (*auth.User, error) {
	var su storedUser
	if err := json.Unmarshal(doc, &su); err != nil {
		return nil, err
	}
	u := su.User
	u.PasswordHash = su.PasswordHash
	return &u, nil
}

var _ auth.Repository = (*UserRepo)(nil)
