// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/taibuivan/libris/internal/catalog/book Repository

// Repository is the storage contract for books.
//
// Implementations must be safe for concurrent use. Every method is a single
// atomic operation; none retries.
type Repository interface {
	// GetAll returns every book ordered by creation time, then id.
	GetAll(context context.Context) ([]*Book, error)

	// GetByID returns (nil, nil) when no book has the id.
	GetByID(context context.Context, id string) (*Book, error)

	// Create stores a new book and returns the stored record.
	Create(context context.Context, book *Book) (*Book, error)

	// Update overwrites title, author and published year of an existing book.
	// It returns [ErrNotFound] when the id is unknown.
	Update(context context.Context, book *Book) (*Book, error)

	// Delete removes the book. Deleting an unknown id is not an error.
	Delete(context context.Context, id string) error

	// Search returns the books matching every present filter, ordered like GetAll.
	Search(context context.Context, filter Filter) ([]*Book, error)
}
