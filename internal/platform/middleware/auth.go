// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/ctxutil"
	"github.com/taibuivan/libris/internal/platform/respond"
	"github.com/taibuivan/libris/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenService],
// allowing tests to inject stubs.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// RequireBearer guards a route group with a bearer token.
//
// # Flow
//  1. Read the Authorization header; require the literal "Bearer " prefix.
//  2. Verify signature and expiry of the remaining token via [TokenVerifier].
//  3. On success, attach the subject to the context and forward unchanged.
//  4. On any failure, answer 401 {"error":"Unauthorized"} and stop the chain.
//
// The rejection cause is logged at debug level only; the response is identical
// for every cause.
func RequireBearer(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			logger := ctxutil.GetLogger(request.Context())

			// ── 1. Scheme ─────────────────────────────────────────────────────
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			tokenStr, found := strings.CutPrefix(authHeader, constants.BearerPrefix)
			if !found || tokenStr == "" {
				logger.DebugContext(request.Context(), "auth_rejected", slog.String("reason", "missing_or_malformed_header"))
				respond.Error(writer, request, apperr.Unauthorized())
				return
			}

			// ── 2. Verification ───────────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				logger.DebugContext(request.Context(), "auth_rejected", slog.String("reason", err.Error()))
				respond.Error(writer, request, apperr.Unauthorized())
				return
			}

			// ── 3. Forward ────────────────────────────────────────────────────
			ctx := ctxutil.WithSubject(request.Context(), claims.Subject)
			ctx = ctxutil.WithLogger(ctx, logger.With(slog.String("subject", claims.Subject)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
