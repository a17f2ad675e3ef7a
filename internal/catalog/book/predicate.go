// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"strconv"
	"strings"

	"github.com/taibuivan/libris/internal/platform/database/schema"
)

// predicate is one search clause together with the value bound to it.
//
// Keeping the pair in one value means clause and argument can only be added
// together: the placeholder number is the predicate's position in the list.
type predicate struct {
	column string
	value  string
}

// likeEscaper makes LIKE metacharacters match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPredicates turns the present filter fields into predicates, in a
// fixed order: title first, then author.
func searchPredicates(filter Filter) []predicate {
	var predicates []predicate

	if filter.Title != nil {
		predicates = append(predicates, predicate{column: schema.CatalogBook.Title, value: *filter.Title})
	}
	if filter.Author != nil {
		predicates = append(predicates, predicate{column: schema.CatalogBook.Author, value: *filter.Author})
	}

	return predicates
}

// buildSearchQuery renders the parameterized search statement and its arguments.
//
// No filter means no WHERE clause. Filter values never reach the SQL text.
func buildSearchQuery(filter Filter) (string, []any) {
	var query strings.Builder
	query.WriteString(selectBooks)

	predicates := searchPredicates(filter)
	args := make([]any, 0, len(predicates))

	for position, pred := range predicates {
		if position == 0 {
			query.WriteString(" WHERE ")
		} else {
			query.WriteString(" AND ")
		}

		query.WriteString(pred.column)
		query.WriteString(` ILIKE '%' || $`)
		query.WriteString(strconv.Itoa(position + 1))
		query.WriteString(` || '%'`)

		args = append(args, likeEscaper.Replace(pred.value))
	}

	query.WriteString(orderBooks)
	return query.String(), args
}
