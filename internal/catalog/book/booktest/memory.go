// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package booktest provides test doubles for [book.Repository]: an in-memory
// fake and a contract suite every implementation must pass.
package booktest

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/libris/internal/catalog/book"
	"github.com/taibuivan/libris/pkg/slice"
)

// MemoryRepository is a concurrency-safe, in-memory [book.Repository].
//
// Stored values are copied on the way in and on the way out, so callers can
// never mutate the store through a returned pointer.
type MemoryRepository struct {
	mu    sync.RWMutex
	books map[string]*book.Book
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{books: make(map[string]*book.Book)}
}

var _ book.Repository = (*MemoryRepository)(nil)

func (repository *MemoryRepository) GetAll(_ context.Context) ([]*book.Book, error) {
	return repository.collect(func(*book.Book) bool { return true }), nil
}

func (repository *MemoryRepository) GetByID(_ context.Context, id string) (*book.Book, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, found := repository.books[id]
	if !found {
		return nil, nil
	}
	return stored.Clone(), nil
}

func (repository *MemoryRepository) Create(_ context.Context, b *book.Book) (*book.Book, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.books[b.ID] = b.Clone()
	return b.Clone(), nil
}

func (repository *MemoryRepository) Update(_ context.Context, b *book.Book) (*book.Book, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.books[b.ID]
	if !found {
		return nil, book.ErrNotFound
	}

	// Same columns as the SQL update: id and created_at stay as stored.
	updated := b.Clone()
	updated.ID = stored.ID
	updated.CreatedAt = stored.CreatedAt
	repository.books[b.ID] = updated

	return updated.Clone(), nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.books, id)
	return nil
}

func (repository *MemoryRepository) Search(ctx context.Context, filter book.Filter) ([]*book.Book, error) {
	if filter.IsEmpty() {
		return repository.GetAll(ctx)
	}
	return repository.collect(func(b *book.Book) bool {
		return containsFold(b.Title, filter.Title) && containsFold(b.Author, filter.Author)
	}), nil
}

// collect returns copies of the matching books in creation order.
func (repository *MemoryRepository) collect(match func(*book.Book) bool) []*book.Book {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored := make([]*book.Book, 0, len(repository.books))
	for _, b := range repository.books {
		stored = append(stored, b)
	}

	books := slice.Map(slice.Filter(stored, match), (*book.Book).Clone)

	slices.SortFunc(books, func(a, b *book.Book) int {
		if order := a.CreatedAt.Compare(b.CreatedAt); order != 0 {
			return order
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return books
}

// containsFold reports whether needle is absent or a case-insensitive
// substring of value.
func containsFold(value string, needle *string) bool {
	if needle == nil {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(*needle))
}
