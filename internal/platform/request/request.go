// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

The body is capped at [constants.MaxRequestBodyBytes]. An oversized, empty or
malformed body, or one with trailing data, yields [validate.ErrInvalidJSON].
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxRequestBodyBytes)

	decoder := json.NewDecoder(request.Body)
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}

	if decoder.More() {
		return validate.ErrInvalidJSON
	}

	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query retrieves a query-string value and whether the key was present at all.
*/
func Query(request *http.Request, name string) (string, bool) {
	values, found := request.URL.Query()[name]
	if !found || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
