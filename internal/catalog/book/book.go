// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements the catalog's single entity: its storage contract, the
PostgreSQL engine behind it, the service that validates and merges changes,
and the HTTP handlers for the public and protected route groups.

Layers, outermost first:

  - [Handler]: decodes requests, writes responses.
  - [Service]: boundary validation, text normalization, partial-update merge.
  - [Repository]: the storage contract. [PostgresRepository] is the production
    implementation; booktest.MemoryRepository is the in-memory fake.
*/
package book

import (
	"errors"
	"math"
	"time"

	"github.com/taibuivan/libris/pkg/uuidv7"
)

// ErrNotFound is returned by [Repository.Update] when no row has the book's id.
var ErrNotFound = errors.New("book: not found")

// Book is a catalog entry.
//
// ID and CreatedAt are assigned once by [New] and never change afterwards.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear *int      `json:"published_year"`
	CreatedAt     time.Time `json:"created_at"`
}

// New builds a Book with a fresh UUIDv7 id and a UTC creation time.
//
// The timestamp is truncated to microseconds, the precision PostgreSQL keeps,
// so the created value and the stored value compare equal.
func New(title, author string, publishedYear *int) *Book {
	return &Book{
		ID:            uuidv7.New(),
		Title:         title,
		Author:        author,
		PublishedYear: publishedYear,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

// Clone returns a deep copy of b.
func (b *Book) Clone() *Book {
	clone := *b
	if b.PublishedYear != nil {
		year := *b.PublishedYear
		clone.PublishedYear = &year
	}
	return &clone
}

// Filter narrows a search. A nil field does not filter; present fields
// combine with AND, each as a case-insensitive substring match.
type Filter struct {
	Title  *string
	Author *string
}

// IsEmpty reports whether the filter matches every book.
func (f Filter) IsEmpty() bool {
	return f.Title == nil && f.Author == nil
}

// Field names, as they appear in JSON and in validation messages.
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldPublishedYear = "published_year"
)

// MaxTextLength bounds title and author, in characters.
const MaxTextLength = 500

// MaxPublishedYear is the largest year the published_year column stores.
const MaxPublishedYear = math.MaxInt32
