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

// Package types provides the types used in the Screenroom API. This package
// is used by both the server and the client.
package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned when the given ID is empty.
	ErrInvalidID = errors.New("invalid ID")
)

// ID represents the identifier of an entity. Project IDs are chosen by the
// creating client, identity IDs are either provider-issued subject IDs
// (usually email addresses) or locally generated guest markers.
type ID string

// String returns a string representation of this ID.
func (id ID) String() string {
	return string(id)
}

// Validate returns an error if this ID is invalid.
func (id ID) Validate() error {
	if len(id) == 0 {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}

	return nil
}
