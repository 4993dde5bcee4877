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

// Package blob provides opaque object storage for video asset binaries.
// The core never inspects blob contents; it only moves bytes keyed by
// path.
package blob

import (
	"context"
	"io"
)

// Store is a keyed blob store. Paths are slash-separated and a project's
// blobs live under its ID as the leading path segment.
type Store interface {
	// Put stores the object under the given path.
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error

	// List returns the paths stored under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the object under the given path.
	Delete(ctx context.Context, path string) error

	// DeletePrefix removes every object under the given prefix. It is used
	// when a project is deleted.
	DeletePrefix(ctx context.Context, prefix string) error
}
