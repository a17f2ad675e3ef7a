// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package booktest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/catalog/book"
	"github.com/taibuivan/libris/internal/catalog/book/booktest"
)

func TestMemoryRepository_Contract(t *testing.T) {
	booktest.RunRepositoryContract(t, func(t *testing.T) book.Repository {
		return booktest.NewMemoryRepository()
	})
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := booktest.NewMemoryRepository()

	created, err := repo.Create(context.Background(), book.New("Original", "Someone", nil))
	require.NoError(t, err)

	created.Title = "Mutated by caller"

	fetched, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", fetched.Title)
}
