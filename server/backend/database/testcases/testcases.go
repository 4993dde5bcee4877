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

// Package testcases contains testcases for database. It is used by database
// implementations to test their own implementations with the same testcases.
package testcases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/server/backend/database"
)

func newProjectInfo(t *testing.T, suffix string, owner types.ID) *database.ProjectInfo {
	return &database.ProjectInfo{
		ID:    types.ID(fmt.Sprintf("%s-%s", t.Name(), suffix)),
		Owner: owner,
		Document: database.DocumentInfo{
			Name: suffix,
		},
	}
}

// RunFindProjectInfoTest runs the FindProjectInfo test for the given db.
func RunFindProjectInfoTest(t *testing.T, db database.Database) {
	t.Run("find project test", func(t *testing.T) {
		ctx := context.Background()

		// 01. Find a project that does not exist.
		_, err := db.FindProjectInfo(ctx, types.ID(t.Name()+"-missing"))
		assert.ErrorIs(t, err, database.ErrProjectNotFound)

		// 02. Put and find it again.
		info := newProjectInfo(t, "p1", "o@x.com")
		_, err = db.PutProjectInfo(ctx, info)
		assert.NoError(t, err)

		found, err := db.FindProjectInfo(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, info.ID, found.ID)
		assert.Equal(t, types.ID("o@x.com"), found.Owner)
	})
}

// RunPutProjectInfoTest runs the PutProjectInfo test for the given db.
func RunPutProjectInfoTest(t *testing.T, db database.Database) {
	t.Run("put preserves createdAt test", func(t *testing.T) {
		ctx := context.Background()

		// 01. Insert a project; createdAt is initialized.
		info := newProjectInfo(t, "p1", "o@x.com")
		stored, err := db.PutProjectInfo(ctx, info)
		assert.NoError(t, err)
		assert.False(t, stored.CreatedAt.IsZero())
		assert.False(t, stored.UpdatedAt.IsZero())

		// 02. Replace it; createdAt survives, updatedAt does not decrease.
		stored.Document.Name = "renamed"
		replaced, err := db.PutProjectInfo(ctx, stored)
		assert.NoError(t, err)
		assert.Equal(t, stored.CreatedAt, replaced.CreatedAt)
		assert.False(t, replaced.UpdatedAt.Before(stored.UpdatedAt))
		assert.Equal(t, "renamed", replaced.Document.Name)
	})

	t.Run("put replaces whole document test", func(t *testing.T) {
		ctx := context.Background()

		info := newProjectInfo(t, "p2", "o@x.com")
		info.Document.Team = []database.MemberInfo{{ID: "guest-1", Name: "Guest"}}
		_, err := db.PutProjectInfo(ctx, info)
		assert.NoError(t, err)

		info.Document.Team = nil
		_, err = db.PutProjectInfo(ctx, info)
		assert.NoError(t, err)

		found, err := db.FindProjectInfo(ctx, info.ID)
		assert.NoError(t, err)
		assert.Len(t, found.Document.Team, 0)
	})
}

// RunListProjectInfosForUserTest runs the ListProjectInfosForUser test for
// the given db.
func RunListProjectInfosForUserTest(t *testing.T, db database.Database) {
	t.Run("list for owner and member test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.ID(t.Name() + "-owner")
		member := types.ID(t.Name() + "-member")
		outsider := types.ID(t.Name() + "-outsider")

		// 01. One project owned, one joined, one unrelated.
		owned := newProjectInfo(t, "owned", owner)
		_, err := db.PutProjectInfo(ctx, owned)
		assert.NoError(t, err)

		joined := newProjectInfo(t, "joined", "someone-else")
		joined.Document.Team = []database.MemberInfo{{ID: member, Name: "Member"}}
		_, err = db.PutProjectInfo(ctx, joined)
		assert.NoError(t, err)

		unrelated := newProjectInfo(t, "unrelated", "someone-else")
		_, err = db.PutProjectInfo(ctx, unrelated)
		assert.NoError(t, err)

		// 02. Owner sees the owned project.
		infos, err := db.ListProjectInfosForUser(ctx, owner)
		assert.NoError(t, err)
		assert.Len(t, infos, 1)
		assert.Equal(t, owned.ID, infos[0].ID)

		// 03. Member sees the joined project through team containment.
		infos, err = db.ListProjectInfosForUser(ctx, member)
		assert.NoError(t, err)
		assert.Len(t, infos, 1)
		assert.Equal(t, joined.ID, infos[0].ID)

		// 04. Outsider sees nothing.
		infos, err = db.ListProjectInfosForUser(ctx, outsider)
		assert.NoError(t, err)
		assert.Len(t, infos, 0)
	})
}

// RunDeleteProjectInfoTest runs the DeleteProjectInfo test for the given db.
func RunDeleteProjectInfoTest(t *testing.T, db database.Database) {
	t.Run("owner-only delete test", func(t *testing.T) {
		ctx := context.Background()

		info := newProjectInfo(t, "p1", "o@x.com")
		_, err := db.PutProjectInfo(ctx, info)
		assert.NoError(t, err)

		// 01. A non-owner delete is a no-op.
		deleted, err := db.DeleteProjectInfo(ctx, info.ID, "intruder@x.com")
		assert.NoError(t, err)
		assert.False(t, deleted)

		_, err = db.FindProjectInfo(ctx, info.ID)
		assert.NoError(t, err)

		// 02. The owner delete removes the row.
		deleted, err = db.DeleteProjectInfo(ctx, info.ID, "o@x.com")
		assert.NoError(t, err)
		assert.True(t, deleted)

		_, err = db.FindProjectInfo(ctx, info.ID)
		assert.ErrorIs(t, err, database.ErrProjectNotFound)

		// 03. Deleting a missing project reports no row affected.
		deleted, err = db.DeleteProjectInfo(ctx, info.ID, "o@x.com")
		assert.NoError(t, err)
		assert.False(t, deleted)
	})
}

// RunListAllProjectInfosTest runs the ListAllProjectInfos test for the
// given db.
func RunListAllProjectInfosTest(t *testing.T, db database.Database) {
	t.Run("scan returns every project test", func(t *testing.T) {
		ctx := context.Background()

		before, err := db.ListAllProjectInfos(ctx)
		assert.NoError(t, err)

		for i := 0; i < 3; i++ {
			info := newProjectInfo(t, fmt.Sprintf("p%d", i), "o@x.com")
			_, err = db.PutProjectInfo(ctx, info)
			assert.NoError(t, err)
		}

		after, err := db.ListAllProjectInfos(ctx)
		assert.NoError(t, err)
		assert.Equal(t, len(before)+3, len(after))
	})
}
