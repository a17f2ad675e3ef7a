// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes user-supplied text before it is stored or
// compared.
//
// # Usage
//
// Titles and authors arrive from many keyboards and input methods: "é" may be
// one code point or "e" plus a combining accent. Both spellings must be stored
// and searched identically, so every free-text field passes through [Clean].
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean normalizes s to Unicode NFC and trims surrounding whitespace.
func Clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// CleanPtr applies [Clean] to the pointed-to value. A nil pointer stays nil.
func CleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := Clean(*s)
	return &cleaned
}
