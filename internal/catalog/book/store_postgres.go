// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libris/internal/platform/database/schema"
	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/pkg/uuidv7"
)

var (
	bookColumns = strings.Join(schema.CatalogBook.Columns(), ", ")

	selectBooks = fmt.Sprintf(`SELECT %s FROM %s`, bookColumns, schema.CatalogBook.Table)

	orderBooks = fmt.Sprintf(` ORDER BY %s ASC, %s ASC`, schema.CatalogBook.CreatedAt, schema.CatalogBook.ID)
)

// PostgresRepository is the [Repository] backed by the catalog.book table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a repository over an open pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) GetAll(context context.Context) ([]*Book, error) {
	return repository.query(context, "book.get_all", selectBooks+orderBooks)
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Book, error) {
	// Not a UUID, so no row can match; the uuid column would reject the cast.
	if !uuidv7.Valid(id) {
		return nil, nil
	}

	query := fmt.Sprintf(`%s WHERE %s = $1`, selectBooks, schema.CatalogBook.ID)

	rows, _ := repository.db.Query(context, query, id)
	book, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if dberr.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "book.get_by_id")
	}

	return book, nil
}

func (repository *PostgresRepository) Create(context context.Context, book *Book) (*Book, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, schema.CatalogBook.Table, bookColumns, bookColumns)

	rows, _ := repository.db.Query(context, query,
		book.ID, book.Title, book.Author, book.PublishedYear, book.CreatedAt,
	)
	created, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if err != nil {
		return nil, dberr.Wrap(err, "book.create")
	}

	return created, nil
}

func (repository *PostgresRepository) Update(context context.Context, book *Book) (*Book, error) {
	if !uuidv7.Valid(book.ID) {
		return nil, ErrNotFound
	}

	// id and created_at are never written after insert.
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.Author, schema.CatalogBook.PublishedYear,
		schema.CatalogBook.ID,
		bookColumns,
	)

	rows, _ := repository.db.Query(context, query, book.ID, book.Title, book.Author, book.PublishedYear)
	updated, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if dberr.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "book.update")
	}

	return updated, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	if !uuidv7.Valid(id) {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)

	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "book.delete")
	}
	return nil
}

func (repository *PostgresRepository) Search(context context.Context, filter Filter) ([]*Book, error) {
	if filter.IsEmpty() {
		return repository.GetAll(context)
	}

	query, args := buildSearchQuery(filter)
	return repository.query(context, "book.search", query, args...)
}

func (repository *PostgresRepository) query(context context.Context, action, query string, args ...any) ([]*Book, error) {
	rows, _ := repository.db.Query(context, query, args...)
	books, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return books, nil
}

// scanBook reads one row in [schema.CatalogBookTable.Columns] order.
func scanBook(row pgx.CollectableRow) (*Book, error) {
	book := &Book{}
	if err := row.Scan(&book.ID, &book.Title, &book.Author, &book.PublishedYear, &book.CreatedAt); err != nil {
		return nil, err
	}
	book.CreatedAt = book.CreatedAt.UTC()
	return book, nil
}
