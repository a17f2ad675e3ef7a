// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/libris/internal/platform/constants"
)

// AppConfig is the slice of configuration CORS needs.
type AppConfig interface {
	IsDevelopment() bool
	Origins() []string
}

var (
	corsMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, ", ")

	corsRequestHeaders = strings.Join([]string{
		"Accept", "Content-Type", constants.HeaderAuthorization, constants.HeaderXRequestID,
	}, ", ")

	corsExposedHeaders = strings.Join([]string{
		constants.HeaderXRequestID, constants.HeaderRetryAfter,
	}, ", ")
)

// CORS echoes allowed origins back to browsers and answers preflights with 204.
//
// In development every origin is allowed; otherwise only [AppConfig.Origins].
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(cfg.Origins()))
	for _, origin := range cfg.Origins() {
		allowed[origin] = struct{}{}
	}

	isAllowed := func(origin string) bool {
		if cfg.IsDevelopment() {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)

			if isAllowed(origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", corsMethods)
				header.Set("Access-Control-Allow-Headers", corsRequestHeaders)
				header.Set("Access-Control-Expose-Headers", corsExposedHeaders)
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
