// Package memory provides a mutex-guarded in-memory store. It backs tests
// and the zero-setup development mode; the postgres package provides the
// durable equivalent with the same repository contracts, including strict
// read-after-write visibility.
package memory

import (
	"context"
	"sync"

	"posledger/internal/core/apperror"
	"posledger/internal/domain/auth"
	"posledger/internal/domain/catalog/item"
	"posledger/internal/domain/documents"
)

// Store holds all collections behind one mutex. Documents are kept newest
// first, the order List promises.
type Store struct {
	mu    sync.RWMutex
	docs  map[documents.Kind][]*documents.Transaction
	items []*item.Item
	users []*auth.User
}

// NewStore creates an empty store.
func NewStore() *Store {
	docs := make(map[documents.Kind][]*documents.Transaction)
	for _, kind := range documents.Kinds() {
		docs[kind] = make([]*documents.Transaction, 0)
	}
	return &Store{docs: docs}
}

// --- documents.Repository ---

// List returns documents of the kind, newest first.
func (s *Store) List(ctx context.Context, kind documents.Kind) ([]*documents.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*documents.Transaction, len(s.docs[kind]))
	for i, doc := range s.docs[kind] {
		out[i] = cloneDoc(doc)
	}
	return out, nil
}

// Get retrieves one document by id.
func (s *Store) Get(ctx context.Context, kind documents.Kind, docID string) (*documents.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs[kind] {
		if doc.ID == docID {
			return cloneDoc(doc), nil
		}
	}
	return nil, apperror.NewNotFound("document", docID)
}

// Save upserts a document. New documents are prepended so List stays
// newest first.
func (s *Store) Save(ctx context.Context, kind documents.Kind, doc *documents.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneDoc(doc)
	for i, existing := range s.docs[kind] {
		if existing.ID == doc.ID {
			s.docs[kind][i] = stored
			return nil
		}
	}
	s.docs[kind] = append([]*documents.Transaction{stored}, s.docs[kind]...)
	return nil
}

// Delete removes a document by id.
func (s *Store) Delete(ctx context.Context, kind documents.Kind, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.docs[kind] {
		if doc.ID == docID {
			s.docs[kind] = append(s.docs[kind][:i], s.docs[kind][i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("document", docID)
}

func cloneDoc(doc *documents.Transaction) *documents.Transaction {
	c := *doc
	c.Items = make([]documents.Line, len(doc.Items))
	copy(c.Items, doc.Items)
	return &c
}

// --- item.Repository ---

// Items adapts the store to item.Repository.
func (s *Store) Items() item.Repository { return (*itemRepo)(s) }

type itemRepo Store

func (r *itemRepo) List(ctx context.Context) ([]*item.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*item.Item, len(r.items))
	for i, it := range r.items {
		c := *it
		out[i] = &c
	}
	return out, nil
}

func (r *itemRepo) Get(ctx context.Context, itemID string) (*item.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == itemID {
			c := *it
			return &c, nil
		}
	}
	return nil, apperror.NewNotFound("item", itemID)
}

func (r *itemRepo) Save(ctx context.Context, it *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *it
	for i, existing := range r.items {
		if existing.ID == it.ID {
			r.items[i] = &c
			return nil
		}
	}
	r.items = append(r.items, &c)
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == itemID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("item", itemID)
}

// --- auth.Repository ---

// Users adapts the store to auth.Repository.
func (s *Store) Users() auth.Repository { return (*userRepo)(s) }

type userRepo Store

func (r *userRepo) List(ctx context.Context) ([]*auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*auth.User, len(r.users))
	for i, u := range r.users {
		c := *u
		out[i] = &c
	}
	return out, nil
}

func (r *userRepo) Get(ctx context.Context, userID string) (*auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == userID {
			c := *u
			return &c, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func (r *userRepo) Save(ctx context.Context, u *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *u
	for i, existing := range r.users {
		if existing.ID == u.ID {
			r.users[i] = &c
			return nil
		}
	}
	r.users = append(r.users, &c)
	return nil
}

func (r *userRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == userID {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("user", userID)
}

var (
	_ documents.Repository = (*Store)(nil)
	_ item.Repository      = (*itemRepo)(nil)
	_ auth.Repository      = (*userRepo)(nil)
)
