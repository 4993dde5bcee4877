/*
 * Copyright 2023 The Screenroom Authors. All rights reserved.
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

// Package database provides the project document store interface for the
// Screenroom backend.
//
// Every mutation in the system follows load-modify-store at whole-document
// granularity with no document-level locking and no compare-and-swap: two
// concurrent writers against the same project race, and the later persist
// silently overwrites the earlier one (last-write-wins). Callers rely on
// this: idempotent join no-ops and silent no-ops on missing comment IDs
// assume it. Do not add optimistic locking here without revisiting them.
package database

import (
	"context"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/pkg/errors"
)

var (
	// ErrProjectNotFound is returned when the project could not be found.
	ErrProjectNotFound = errors.NotFound("project not found").WithCode("ErrProjectNotFound")

	// ErrAssetNotFound is returned when the asset could not be found in the
	// project document.
	ErrAssetNotFound = errors.NotFound("asset not found").WithCode("ErrAssetNotFound")

	// ErrVersionNotFound is returned when the version could not be found in
	// the asset.
	ErrVersionNotFound = errors.NotFound("version not found").WithCode("ErrVersionNotFound")

	// ErrNotInitialized is returned when the backing schema is absent. It is
	// a deployment error, distinct from ErrProjectNotFound.
	ErrNotInitialized = errors.FailedPrecond("database not initialized").WithCode("ErrNotInitialized")

	// ErrStoreUnavailable is returned when the backing store cannot be
	// reached. Usually transient.
	ErrStoreUnavailable = errors.Unavailable("database unavailable").WithCode("ErrStoreUnavailable")
)

// Database represents the store which reads or saves project documents.
// The store performs no authorization; security preconditions are enforced
// by its callers. DeleteProjectInfo is the one exception because the
// owner-only rule is expressed as part of the delete query itself.
type Database interface {
	// Close closes all resources of this database.
	Close() error

	// FindProjectInfo returns the project of the given ID.
	FindProjectInfo(ctx context.Context, id types.ID) (*ProjectInfo, error)

	// ListProjectInfosForUser returns all projects where the given user is
	// the owner or a team member. Order is storage order.
	ListProjectInfosForUser(ctx context.Context, userID types.ID) ([]*ProjectInfo, error)

	// ListAllProjectInfos returns every project in the store. It is used by
	// the identity migration scan; document counts are assumed modest.
	ListAllProjectInfos(ctx context.Context) ([]*ProjectInfo, error)

	// PutProjectInfo inserts or replaces the project keyed by its ID. The
	// whole document is replaced; UpdatedAt is stamped with the current
	// server time, and CreatedAt is preserved if the row already has one.
	// It returns the stored state of the project.
	PutProjectInfo(ctx context.Context, info *ProjectInfo) (*ProjectInfo, error)

	// DeleteProjectInfo deletes the project only if the requester is its
	// owner. It returns whether a row was actually deleted; a non-owner
	// request is a no-op, not an error.
	DeleteProjectInfo(ctx context.Context, id types.ID, requester types.ID) (bool, error)
}
