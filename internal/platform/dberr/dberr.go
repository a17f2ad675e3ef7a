// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/libris/internal/platform/apperr"
)

// IsNoRows reports whether err means a single-row query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Wrap classifies a storage error as an InternalFailure [apperr.AppError].
//
// The action names the failed operation (e.g. "book.create") and, for server
// errors, the SQLSTATE is added to the cause. None of it reaches the client.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperr.Internal(fmt.Errorf("%s: sqlstate %s: %w", action, pgErr.Code, err))
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
