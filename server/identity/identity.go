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

// Package identity provides resolution of caller credentials into trusted
// identities. A credential carries either a locally minted guest marker or
// a bearer token issued by the identity provider; the guest marker always
// wins when both are present, so a caller stays the same guest until it
// explicitly signs in.
package identity

import (
	"context"

	"github.com/rs/xid"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/pkg/errors"
	"github.com/screenroom-team/screenroom/server/logging"
)

var (
	// ErrUnauthenticated is returned when a credential cannot be resolved
	// into an identity.
	ErrUnauthenticated = errors.Unauthenticated("request is not authenticated").WithCode("ErrUnauthenticated")
)

// Account is a provider-verified account.
type Account struct {
	// Email is the canonical identifier of the account.
	Email string

	// DisplayName is the human-readable name of the account.
	DisplayName string
}

// Provider verifies bearer tokens against the identity provider.
type Provider interface {
	// Verify checks the given bearer token and returns the account it was
	// issued for.
	Verify(ctx context.Context, bearer string) (*Account, error)
}

// Credential is the raw credential presented by a caller.
type Credential struct {
	// GuestMarker is a locally minted guest marker. Takes precedence over
	// Bearer when both are set.
	GuestMarker string

	// Bearer is a provider-issued bearer token.
	Bearer string
}

// NewGuestMarker mints a fresh guest marker.
func NewGuestMarker() string {
	return types.GuestIDPrefix + xid.New().String()
}

// Resolve resolves the given credential into an identity. Guest markers
// resolve locally without touching the provider; bearer tokens are verified
// by the provider and yield a verified identity keyed by the account email.
// A credential with neither, or with a bearer the provider rejects, fails
// with ErrUnauthenticated.
//
// A guest marker is honored only when it carries the guest namespace tag.
// Authenticated IDs are account emails, so accepting an arbitrary marker
// would let a caller mint a guest whose ID collides with a verified
// identity. A malformed marker is ignored and the bearer decides.
func Resolve(ctx context.Context, provider Provider, cred Credential) (*types.Identity, error) {
	if cred.GuestMarker != "" {
		if types.IsGuestID(types.ID(cred.GuestMarker)) {
			return types.NewGuestIdentity(types.ID(cred.GuestMarker)), nil
		}
		logging.From(ctx).Warnf("malformed guest marker: %q", cred.GuestMarker)
	}

	if cred.Bearer == "" {
		return nil, ErrUnauthenticated
	}

	account, err := provider.Verify(ctx, cred.Bearer)
	if err != nil {
		logging.From(ctx).Warnf("verify bearer token: %v", err)
		return nil, ErrUnauthenticated
	}

	return &types.Identity{
		ID:          types.ID(account.Email),
		DisplayName: account.DisplayName,
		Verified:    true,
		Role:        types.RoleAuthenticated,
	}, nil
}
