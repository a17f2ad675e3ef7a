// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the login flow: credential check, token issuance and
the failed-login throttle.

Architecture:

  - CredentialCheck: the single pluggable comparison of username and password.
  - Service: orchestrates throttle, check and token issuance.
  - Handler: POST /login.

Tokens are stateless. The same token service that signs them here verifies
them in the auth gate of the protected route group.
*/
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/libris/internal/platform/apperr"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(subject string, timeToLive time.Duration) (string, error)
}

// LoginInput carries the submitted credentials and the client they came from.
type LoginInput struct {
	Username string
	Password string
	ClientIP string
}

// Service authenticates users and issues access tokens.
type Service struct {
	check      CredentialCheck
	tokens     TokenIssuer
	throttle   *Throttle
	timeToLive time.Duration
	logger     *slog.Logger
}

// NewService constructs a Service. throttle may be nil.
func NewService(check CredentialCheck, tokens TokenIssuer, throttle *Throttle, timeToLive time.Duration, logger *slog.Logger) *Service {
	return &Service{
		check:      check,
		tokens:     tokens,
		throttle:   throttle,
		timeToLive: timeToLive,
		logger:     logger,
	}
}

// Login returns a signed token for valid credentials.
//
// # Flow
//  1. Reject clients over the failed-login limit (RateLimited).
//  2. Compare credentials; on mismatch count the failure (Unauthorized).
//  3. Clear the failure count and sign a token with sub = username.
//
// Throttle storage errors are logged and do not block a login.
func (service *Service) Login(context context.Context, input LoginInput) (string, error) {

	// 1. Throttle
	if err := service.throttle.Check(context, input.ClientIP); err != nil {
		if apperr.As(err) != nil {
			service.logger.WarnContext(context, "login_throttled", slog.String("ip", input.ClientIP))
			return "", err
		}
		service.logger.ErrorContext(context, "login_throttle_unavailable", slog.Any("error", err))
	}

	// 2. Credentials
	if !service.check(context, input.Username, input.Password) {
		if err := service.throttle.RecordFailure(context, input.ClientIP); err != nil {
			service.logger.ErrorContext(context, "login_throttle_unavailable", slog.Any("error", err))
		}
		service.logger.InfoContext(context, "login_failed", slog.String("ip", input.ClientIP))
		return "", apperr.Unauthorized()
	}

	// 3. Issue
	if err := service.throttle.Reset(context, input.ClientIP); err != nil {
		service.logger.ErrorContext(context, "login_throttle_unavailable", slog.Any("error", err))
	}

	token, err := service.tokens.GenerateAccessToken(input.Username, service.timeToLive)
	if err != nil {
		return "", apperr.Internal(err)
	}

	service.logger.InfoContext(context, "login_succeeded", slog.String("subject", input.Username))
	return token, nil
}
