// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names used by the SQL repositories.
package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table         string
	ID            string
	Title         string
	Author        string
	PublishedYear string
	CreatedAt     string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:         "catalog.book",
	ID:            "id",
	Title:         "title",
	Author:        "author",
	PublishedYear: "published_year",
	CreatedAt:     "created_at",
}

// Columns lists every column in the order repositories scan them.
func (t CatalogBookTable) Columns() []string {
	return []string{t.ID, t.Title, t.Author, t.PublishedYear, t.CreatedAt}
}
