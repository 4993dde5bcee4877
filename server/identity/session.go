/*
 * Copyright 2026 The Screenroom Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package identity

import "context"

// TokenSource supplies a bearer token on demand. Implementations may
// refresh expired tokens; callers must not cache the returned value.
type TokenSource interface {
	// Token returns a bearer token valid at the time of the call.
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a TokenSource that always returns the given
// token.
func StaticTokenSource(token string) TokenSource {
	return staticTokenSource(token)
}

type staticTokenSource string

func (s staticTokenSource) Token(_ context.Context) (string, error) {
	return string(s), nil
}

// Session carries the credential state of a single caller. It holds no
// resolved identity; each operation resolves the credential afresh so a
// sign-in or sign-out between calls takes effect immediately.
type Session struct {
	// GuestMarker is the caller's guest marker, if any.
	GuestMarker string

	// Source supplies the caller's bearer token, if any.
	Source TokenSource
}

// NewGuestSession creates a session with a freshly minted guest marker.
func NewGuestSession() *Session {
	return &Session{GuestMarker: NewGuestMarker()}
}

// NewTokenSession creates a session backed by the given token source.
func NewTokenSession(source TokenSource) *Session {
	return &Session{Source: source}
}

// SignIn attaches the given token source and drops the guest marker, so
// the bearer token governs resolution from the next call on.
func (s *Session) SignIn(source TokenSource) {
	s.GuestMarker = ""
	s.Source = source
}

// Credential materializes the credential to present for one operation.
func (s *Session) Credential(ctx context.Context) (Credential, error) {
	cred := Credential{GuestMarker: s.GuestMarker}
	if s.Source != nil {
		bearer, err := s.Source.Token(ctx)
		if err != nil {
			return Credential{}, err
		}
		cred.Bearer = bearer
	}
	return cred, nil
}
