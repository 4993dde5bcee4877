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

package migration_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/server/backend"
	"github.com/screenroom-team/screenroom/server/collab"
	"github.com/screenroom-team/screenroom/server/migration"
	"github.com/screenroom-team/screenroom/server/projects"
)

func setUpBackend(t *testing.T) *backend.Backend {
	t.Helper()

	be, err := backend.New(&backend.Config{
		SecretKey:     "secret",
		TokenDuration: "1h",
		Hostname:      "test",
	}, nil, nil, nil)
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, be.Shutdown())
	})

	return be
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	owner := &types.Identity{
		ID:          "o@x.com",
		DisplayName: "Olive",
		Verified:    true,
		Role:        types.RoleAuthenticated,
	}
	guest := types.NewGuestIdentity("guest-123")
	authenticated := &types.Identity{
		ID:          "o2@x.com",
		DisplayName: "Real Name",
		Verified:    true,
		Role:        types.RoleAuthenticated,
	}

	t.Run("guest sign-in migration test", func(t *testing.T) {
		be := setUpBackend(t)

		// 01. The owner sets up a project with one asset version and the
		// guest joins and comments.
		_, err := projects.UpsertProjects(ctx, be, owner, []*types.Project{{
			ID:   "p1",
			Name: "Launch Teaser",
			Assets: []types.Asset{{
				ID:       "a1",
				Versions: []types.Version{{ID: "v1"}},
			}},
		}})
		assert.NoError(t, err)

		_, err = collab.Join(ctx, be, guest, "p1")
		assert.NoError(t, err)

		_, err = collab.MutateComment(ctx, be, guest, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionCreate,
			Fields: &types.CommentFields{Text: "fix color", Timestamp: 12.5},
		})
		assert.NoError(t, err)

		// 02. The guest signs in; team and authorship are rewritten.
		result, err := migration.Migrate(ctx, be, guest.ID, authenticated)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.MigratedCount)
		assert.Equal(t, authenticated, result.Identity)

		project, err := projects.GetProject(ctx, be, authenticated, "p1")
		assert.NoError(t, err)
		assert.Len(t, project.Team, 1)
		assert.Equal(t, authenticated.ID, project.Team[0].ID)
		assert.Equal(t, "Real Name", project.Team[0].Name)

		comment := project.Assets[0].Versions[0].Comments[0]
		assert.Equal(t, authenticated.ID, comment.UserID)
		assert.Equal(t, "Real Name", comment.UserName)

		// 03. The guest no longer sees the project.
		list, err := projects.ListProjects(ctx, be, guest)
		assert.NoError(t, err)
		assert.Len(t, list, 0)

		// 04. Re-running finds no guest references and performs zero writes.
		result, err = migration.Migrate(ctx, be, guest.ID, authenticated)
		assert.NoError(t, err)
		assert.Equal(t, 0, result.MigratedCount)
	})

	t.Run("duplicate membership collapse test", func(t *testing.T) {
		be := setUpBackend(t)

		_, err := projects.UpsertProjects(ctx, be, owner, []*types.Project{{
			ID:   "p1",
			Name: "Launch Teaser",
			Team: []types.Member{
				guest.AsMember(),
				authenticated.AsMember(),
			},
		}})
		assert.NoError(t, err)

		result, err := migration.Migrate(ctx, be, guest.ID, authenticated)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.MigratedCount)

		project, err := projects.GetProject(ctx, be, owner, "p1")
		assert.NoError(t, err)
		assert.Len(t, project.Team, 1)
		assert.Equal(t, authenticated.ID, project.Team[0].ID)
	})

	t.Run("same identity is a no-op test", func(t *testing.T) {
		be := setUpBackend(t)

		result, err := migration.Migrate(ctx, be, authenticated.ID, authenticated)
		assert.NoError(t, err)
		assert.Equal(t, 0, result.MigratedCount)
	})

	t.Run("untouched projects are not rewritten test", func(t *testing.T) {
		be := setUpBackend(t)

		written, err := projects.UpsertProjects(ctx, be, owner, []*types.Project{
			{ID: "p1", Name: "With Guest", Team: []types.Member{guest.AsMember()}},
			{ID: "p2", Name: "Without Guest"},
		})
		assert.NoError(t, err)
		assert.Len(t, written, 2)

		result, err := migration.Migrate(ctx, be, guest.ID, authenticated)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.MigratedCount)

		untouched, err := projects.GetProject(ctx, be, owner, "p2")
		assert.NoError(t, err)
		assert.Equal(t, written[1].UpdatedAt, untouched.UpdatedAt)
	})
}
