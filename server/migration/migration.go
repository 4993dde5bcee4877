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

// Package migration provides the identity migration service. It rewrites
// every guest reference in the store to the authenticated identity when a
// guest signs in with a real account for the first time.
package migration

import (
	"context"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/server/backend"
	"github.com/screenroom-team/screenroom/server/logging"
)

// Result is the outcome of one migration run.
type Result struct {
	// MigratedCount is the number of project documents rewritten.
	MigratedCount int

	// Identity is the resolved authenticated identity for the caller to
	// establish the new session with.
	Identity *types.Identity
}

// Migrate rewrites team membership and comment authorship from the given
// guest ID to the authenticated identity across every project document.
// The scan is sequential with one read and at most one write per
// document; each persist is last-write-wins like any other mutation.
// Re-running after a successful run finds no guest references left and
// performs zero writes. On a mid-scan failure the count of documents
// already rewritten is returned together with the error.
func Migrate(
	ctx context.Context,
	be *backend.Backend,
	guestID types.ID,
	authenticated *types.Identity,
) (*Result, error) {
	result := &Result{Identity: authenticated}

	if guestID == authenticated.ID {
		return result, nil
	}

	infos, err := be.DB.ListAllProjectInfos(ctx)
	if err != nil {
		observe(be, result, err)
		return result, err
	}

	logging.From(ctx).Debugf(
		"migrating identity %s -> %s over %d projects", guestID, authenticated.ID, len(infos),
	)

	for _, info := range infos {
		if !info.MigrateIdentity(guestID, authenticated) {
			continue
		}

		if _, err := be.DB.PutProjectInfo(ctx, info); err != nil {
			observe(be, result, err)
			return result, err
		}
		result.MigratedCount++
	}

	observe(be, result, nil)
	logging.From(ctx).Infof(
		"migrated identity %s -> %s: %d projects", guestID, authenticated.ID, result.MigratedCount,
	)

	return result, nil
}

func observe(be *backend.Backend, result *Result, err error) {
	if be.Metrics == nil {
		return
	}
	be.Metrics.AddOperation("migration.migrate", err)
	be.Metrics.AddMigratedDocuments(result.MigratedCount)
}
