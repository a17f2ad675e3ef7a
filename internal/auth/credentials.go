// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/taibuivan/libris/internal/platform/sec"
)

// CredentialCheck reports whether username and password identify a user.
//
// It is the only place credentials are compared; replacing it is how a real
// user store would be plugged in.
type CredentialCheck func(context context.Context, username, password string) bool

// ErrEmptyCredentials is returned when a static credential pair is incomplete.
var ErrEmptyCredentials = errors.New("auth: username and password must not be empty")

// StaticCredentials accepts exactly one username/password pair.
//
// Only a bcrypt hash of the password is kept in memory. The username is
// compared in constant time, and the hash comparison runs even for an unknown
// username so response timing does not reveal which half was wrong.
func StaticCredentials(username, password string) (CredentialCheck, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return nil, err
	}

	expectedUsername := []byte(username)

	return func(_ context.Context, candidateUsername, candidatePassword string) bool {
		usernameMatches := subtle.ConstantTimeCompare([]byte(candidateUsername), expectedUsername) == 1
		passwordMatches := sec.CheckPasswordHash(candidatePassword, passwordHash)
		return usernameMatches && passwordMatches
	}, nil
}
