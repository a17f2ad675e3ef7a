// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package booktest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/catalog/book"
	"github.com/taibuivan/libris/pkg/pointer"
	"github.com/taibuivan/libris/pkg/uuidv7"
)

// RunRepositoryContract runs the behavior every [book.Repository] must share.
//
// newRepository is called once per subtest and must return an empty repository.
func RunRepositoryContract(t *testing.T, newRepository func(t *testing.T) book.Repository) {
	ctx := context.Background()

	t.Run("create_then_get_round_trip", func(t *testing.T) {
		repo := newRepository(t)
		input := book.New("The Hobbit", "J.R.R. Tolkien", pointer.To(1937))

		created, err := repo.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, input, created)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, created, fetched)
	})

	t.Run("missing_year_stays_nil", func(t *testing.T) {
		repo := newRepository(t)

		created, err := repo.Create(ctx, book.New("Beowulf", "Unknown", nil))
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched.PublishedYear)
	})

	t.Run("get_unknown_id_is_empty_not_error", func(t *testing.T) {
		repo := newRepository(t)

		for _, id := range []string{uuidv7.New(), "not-a-uuid"} {
			fetched, err := repo.GetByID(ctx, id)
			assert.NoError(t, err)
			assert.Nil(t, fetched)
		}
	})

	t.Run("non_canonical_spellings_do_not_match", func(t *testing.T) {
		repo := newRepository(t)
		created, err := repo.Create(ctx, book.New("Canonical", "Someone", nil))
		require.NoError(t, err)

		for _, id := range []string{"urn:uuid:" + created.ID, "{" + created.ID + "}", strings.ToUpper(created.ID)} {
			fetched, err := repo.GetByID(ctx, id)
			assert.NoError(t, err)
			assert.Nil(t, fetched)

			ghost := created.Clone()
			ghost.ID = id
			_, err = repo.Update(ctx, ghost)
			assert.ErrorIs(t, err, book.ErrNotFound)

			assert.NoError(t, repo.Delete(ctx, id))
		}

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Canonical", fetched.Title)
	})

	t.Run("get_all_orders_by_creation", func(t *testing.T) {
		repo := newRepository(t)
		titles := seed(t, repo,
			[2]string{"First", "A"},
			[2]string{"Second", "B"},
			[2]string{"Third", "C"},
		)

		books, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, titles, titlesOf(books))
	})

	t.Run("get_all_empty", func(t *testing.T) {
		books, err := newRepository(t).GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("update_preserves_id_and_created_at", func(t *testing.T) {
		repo := newRepository(t)
		created, err := repo.Create(ctx, book.New("Draft", "Someone", nil))
		require.NoError(t, err)

		changed := created.Clone()
		changed.Title = "Final"
		changed.PublishedYear = pointer.To(2001)
		changed.CreatedAt = created.CreatedAt.Add(48 * time.Hour)

		updated, err := repo.Update(ctx, changed)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, "Final", updated.Title)
		assert.Equal(t, "Someone", updated.Author)
		assert.Equal(t, pointer.To(2001), updated.PublishedYear)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, fetched)
	})

	t.Run("update_unknown_id", func(t *testing.T) {
		repo := newRepository(t)

		_, err := repo.Update(ctx, book.New("Ghost", "Nobody", nil))
		assert.ErrorIs(t, err, book.ErrNotFound)
	})

	t.Run("delete_then_get", func(t *testing.T) {
		repo := newRepository(t)
		created, err := repo.Create(ctx, book.New("Ephemeral", "Someone", nil))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched)
	})

	t.Run("delete_unknown_id_is_idempotent", func(t *testing.T) {
		repo := newRepository(t)

		assert.NoError(t, repo.Delete(ctx, uuidv7.New()))
		assert.NoError(t, repo.Delete(ctx, "not-a-uuid"))
	})

	t.Run("search", func(t *testing.T) {
		repo := newRepository(t)
		seed(t, repo,
			[2]string{"Rust in Action", "Tim"},
			[2]string{"Programming Rust", "Jim"},
			[2]string{"Rust Cookbook", "Vignesh"},
			[2]string{"100% Pure", "Ann"},
			[2]string{"1000 Pure", "Ann"},
			[2]string{"snake_case", "Bo"},
			[2]string{"snakeXcase", "Bo"},
		)

		tests := []struct {
			name   string
			filter book.Filter
			want   []string
		}{
			{"no_filters_returns_all", book.Filter{}, []string{
				"Rust in Action", "Programming Rust", "Rust Cookbook", "100% Pure", "1000 Pure", "snake_case", "snakeXcase",
			}},
			{"title_substring", book.Filter{Title: pointer.To("Rust")}, []string{"Rust in Action", "Programming Rust", "Rust Cookbook"}},
			{"author_only", book.Filter{Author: pointer.To("im")}, []string{"Rust in Action", "Programming Rust"}},
			{"both_filters_intersect", book.Filter{Title: pointer.To("Rust"), Author: pointer.To("Vignesh")}, []string{"Rust Cookbook"}},
			{"case_insensitive", book.Filter{Title: pointer.To("rUST c")}, []string{"Rust Cookbook"}},
			{"percent_is_literal", book.Filter{Title: pointer.To("0%")}, []string{"100% Pure"}},
			{"underscore_is_literal", book.Filter{Title: pointer.To("e_c")}, []string{"snake_case"}},
			{"no_match", book.Filter{Author: pointer.To("Nobody")}, nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				books, err := repo.Search(ctx, tt.filter)
				require.NoError(t, err)
				assert.Equal(t, tt.want, titlesOf(books))
			})
		}
	})
}

// seed creates one book per (title, author) pair with strictly increasing
// creation times and returns the titles in creation order.
func seed(t *testing.T, repo book.Repository, pairs ...[2]string) []string {
	t.Helper()

	base := time.Now().UTC().Truncate(time.Microsecond)
	titles := make([]string, 0, len(pairs))

	for i, pair := range pairs {
		b := book.New(pair[0], pair[1], nil)
		b.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)

		_, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
		titles = append(titles, pair[0])
	}

	return titles
}

func titlesOf(books []*book.Book) []string {
	var titles []string
	for _, b := range books {
		titles = append(titles, b.Title)
	}
	return titles
}
