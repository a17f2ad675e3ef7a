// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "book.list"))

	cause := errors.New("connection reset by peer")
	err := dberr.Wrap(cause, "book.list")

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Equal(t, "Internal error", appErr.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, appErr.Cause, "book.list")
}

func TestWrap_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", Message: "check constraint violated"}

	appErr := apperr.As(dberr.Wrap(pgErr, "book.create"))
	require.NotNil(t, appErr)
	assert.ErrorContains(t, appErr.Cause, "sqlstate 23514")
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, dberr.IsNoRows(pgx.ErrNoRows))
	assert.True(t, dberr.IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, dberr.IsNoRows(errors.New("other")))
}
