/*
 * Copyright 2024 The Screenroom Authors. All rights reserved.
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

package types

import "strings"

const (
	// RoleGuest is the role of a self-declared identity without a
	// provider-backed credential.
	RoleGuest Role = "guest"

	// RoleAuthenticated is the role of an identity verified by the
	// identity provider.
	RoleAuthenticated Role = "authenticated"
)

// Role represents the trust level of an identity.
type Role string

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// GuestIDPrefix is the namespace tag of locally generated guest markers.
const GuestIDPrefix = "guest-"

// GuestDisplayName is the display name assigned to guest identities.
const GuestDisplayName = "Guest"

// Identity is a resolved caller identity. Identities are never persisted
// on their own; they are embedded by value in project team and comment
// author fields.
type Identity struct {
	// ID is the stable identifier: a guest marker for guests, the
	// provider-issued subject ID for authenticated users.
	ID ID `json:"id"`

	// DisplayName is the human-readable name used for attribution.
	DisplayName string `json:"display_name"`

	// Verified is whether the identity was confirmed by the provider.
	Verified bool `json:"verified"`

	// Role is the trust level of the identity.
	Role Role `json:"role"`
}

// IsGuestID returns whether the given ID carries the guest namespace tag.
func IsGuestID(id ID) bool {
	return strings.HasPrefix(id.String(), GuestIDPrefix)
}

// NewGuestIdentity returns an unverified guest identity for the given
// marker. The marker is used as the stable ID as-is.
func NewGuestIdentity(marker ID) *Identity {
	return &Identity{
		ID:          marker,
		DisplayName: GuestDisplayName,
		Verified:    false,
		Role:        RoleGuest,
	}
}

// AsMember converts the identity into a project team membership record.
func (i *Identity) AsMember() Member {
	return Member{
		ID:   i.ID,
		Name: i.DisplayName,
		Role: i.Role.String(),
	}
}
