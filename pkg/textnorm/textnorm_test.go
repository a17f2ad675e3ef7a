// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/libris/pkg/textnorm"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Dune", "Dune"},
		{"trims", "  Dune \n", "Dune"},
		{"composes_accents", "Les Mise\u0301rables", "Les Mis\u00e9rables"},
		{"whitespace_only", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Clean(tt.in))
		})
	}
}

func TestCleanPtr(t *testing.T) {
	assert.Nil(t, textnorm.CleanPtr(nil))

	in := " Tolkien "
	out := textnorm.CleanPtr(&in)
	assert.Equal(t, "Tolkien", *out)
	assert.Equal(t, " Tolkien ", in)
}
