// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/platform/apperr"
)

func TestKinds_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     *apperr.AppError
		status  int
		code    string
		message string
	}{
		{"not_found", apperr.NotFound("Book"), http.StatusNotFound, apperr.CodeNotFound, "Book not found"},
		{"validation", apperr.ValidationError(apperr.FieldError{Field: "title", Message: "Title cannot be empty"}), http.StatusBadRequest, apperr.CodeValidation, "title: Title cannot be empty"},
		{"unauthorized", apperr.Unauthorized(), http.StatusUnauthorized, apperr.CodeUnauthorized, "Unauthorized"},
		{"internal", apperr.Internal(errors.New("connection reset")), http.StatusInternalServerError, apperr.CodeInternal, "Internal error"},
		{"rate_limited", apperr.RateLimited(30), http.StatusTooManyRequests, apperr.CodeRateLimited, "Too many requests. Try again in 30s."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestValidationError_JoinsFieldsInOrder(t *testing.T) {
	err := apperr.ValidationError(
		apperr.FieldError{Field: "title", Message: "Title cannot be empty"},
		apperr.FieldError{Field: "author", Message: "Author cannot be empty"},
		apperr.FieldError{Field: "published_year", Message: "Published year cannot be negative"},
	)

	assert.Equal(t,
		"title: Title cannot be empty; author: Author cannot be empty; published_year: Published year cannot be negative",
		err.Message,
	)
	assert.Len(t, err.Fields, 3)
}

func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation \"catalog.book\" does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "catalog.book")
	assert.ErrorIs(t, err, cause)
}

func TestFrom(t *testing.T) {
	notFound := apperr.NotFound("Book")
	wrapped := fmt.Errorf("service: %w", notFound)

	got := apperr.From(wrapped)
	require.NotNil(t, got)
	assert.Same(t, notFound, got)

	plain := errors.New("boom")
	got = apperr.From(plain)
	assert.Equal(t, apperr.CodeInternal, got.Code)
	assert.ErrorIs(t, got, plain)

	assert.Nil(t, apperr.As(plain))
}
