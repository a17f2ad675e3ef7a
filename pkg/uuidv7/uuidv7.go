// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// Book ids are UUIDv7: sortable by creation time, so inserts stay at the
// right edge of the primary-key index.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s is a UUID in canonical form: 36 characters,
// lowercase hex, hyphenated. The urn:uuid:, braced and compact spellings
// uuid.Parse also accepts are rejected, as PostgreSQL's uuid input would
// reject some of them and none of them equals a stored id.
func Valid(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.String() == s
}
