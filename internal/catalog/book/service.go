// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/validate"
	"github.com/taibuivan/libris/pkg/pointer"
	"github.com/taibuivan/libris/pkg/textnorm"
)

// CreateInput is the body of POST /books.
//
// Fields are pointers so that an omitted field and an empty one can be told
// apart in error messages; for creation both fail the same rule.
type CreateInput struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedYear *int    `json:"published_year"`
}

// UpdateInput is the body of PUT /books/{id}. A nil field is left unchanged.
type UpdateInput struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedYear *int    `json:"published_year"`
}

// Service holds the catalog's business rules on top of a [Repository].
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a Service. The repository is shared by every route group.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Queries

// List returns every book. The result is never nil.
func (service *Service) List(context context.Context) ([]*Book, error) {
	books, err := service.repo.GetAll(context)
	if err != nil {
		return nil, err
	}
	return nonNil(books), nil
}

// Get returns the book or a NotFound error.
func (service *Service) Get(context context.Context, id string) (*Book, error) {
	book, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperr.NotFound("Book")
	}
	return book, nil
}

// Search returns the books matching filter. The result is never nil.
//
// Filter values are normalized like stored text. A value that is empty after
// normalization does not filter.
func (service *Service) Search(context context.Context, filter Filter) ([]*Book, error) {
	normalized := Filter{
		Title:  nonBlank(textnorm.CleanPtr(filter.Title)),
		Author: nonBlank(textnorm.CleanPtr(filter.Author)),
	}

	books, err := service.repo.Search(context, normalized)
	if err != nil {
		return nil, err
	}
	return nonNil(books), nil
}

// # Commands

// Create validates input and stores a new book.
func (service *Service) Create(context context.Context, input CreateInput) (*Book, error) {
	title := textnorm.Clean(pointer.Val(input.Title))
	author := textnorm.Clean(pointer.Val(input.Author))

	validator := &validate.Validator{}
	validator.
		NotEmpty(FieldTitle, "Title", title).
		MaxLen(FieldTitle, title, MaxTextLength).
		NotEmpty(FieldAuthor, "Author", author).
		MaxLen(FieldAuthor, author, MaxTextLength)
	if input.PublishedYear != nil {
		checkYear(validator, *input.PublishedYear)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	created, err := service.repo.Create(context, New(title, author, input.PublishedYear))
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "book_created", slog.String("book_id", created.ID))
	return created, nil
}

// Update validates the present fields of input, merges them into the stored
// book and persists the result. id and created_at are carried over untouched.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Book, error) {
	title := textnorm.CleanPtr(input.Title)
	author := textnorm.CleanPtr(input.Author)

	validator := &validate.Validator{}
	if title != nil {
		validator.NotEmpty(FieldTitle, "Title", *title).MaxLen(FieldTitle, *title, MaxTextLength)
	}
	if author != nil {
		validator.NotEmpty(FieldAuthor, "Author", *author).MaxLen(FieldAuthor, *author, MaxTextLength)
	}
	if input.PublishedYear != nil {
		checkYear(validator, *input.PublishedYear)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.Get(context, id)
	if err != nil {
		return nil, err
	}

	merged := current.Clone()
	if title != nil {
		merged.Title = *title
	}
	if author != nil {
		merged.Author = *author
	}
	if input.PublishedYear != nil {
		merged.PublishedYear = input.PublishedYear
	}

	updated, err := service.repo.Update(context, merged)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Book")
	}
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "book_updated", slog.String("book_id", updated.ID))
	return updated, nil
}

// Delete removes the book. Deleting an unknown id succeeds.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "book_deleted", slog.String("book_id", id))
	return nil
}

// # Helpers

func nonNil(books []*Book) []*Book {
	if books == nil {
		return []*Book{}
	}
	return books
}

func nonBlank(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// checkYear bounds a published year to what the INTEGER column can hold.
func checkYear(validator *validate.Validator, year int) {
	validator.
		NonNegative(FieldPublishedYear, "Published year", year).
		Custom(FieldPublishedYear, year > MaxPublishedYear, fmt.Sprintf("Published year cannot exceed %d", MaxPublishedYear))
}
