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

package collab_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/pkg/errors"
	"github.com/screenroom-team/screenroom/server/access"
	"github.com/screenroom-team/screenroom/server/backend"
	"github.com/screenroom-team/screenroom/server/backend/database"
	"github.com/screenroom-team/screenroom/server/collab"
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

func setUpProject(t *testing.T, be *backend.Backend, team ...types.Member) {
	t.Helper()

	ctx := context.Background()
	_, err := be.DB.PutProjectInfo(ctx, database.FromProject(&types.Project{
		ID:    "p1",
		Name:  "Launch Teaser",
		Owner: "o@x.com",
		Team:  team,
		Assets: []types.Asset{{
			ID:       "a1",
			Title:    "teaser.mp4",
			Versions: []types.Version{{ID: "v1"}},
		}},
	}))
	assert.NoError(t, err)
}

func TestJoin(t *testing.T) {
	ctx := context.Background()
	guest := types.NewGuestIdentity("guest-123")

	t.Run("join is idempotent test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be)

		// 01. First join appends the identity to the team.
		first, err := collab.Join(ctx, be, guest, "p1")
		assert.NoError(t, err)
		assert.Len(t, first.Team, 1)
		assert.True(t, first.HasMember(guest.ID))

		// 02. Second join performs zero writes.
		second, err := collab.Join(ctx, be, guest, "p1")
		assert.NoError(t, err)
		assert.Len(t, second.Team, 1)
		assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
	})

	t.Run("join does not consult the guard test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be)

		outsider := &types.Identity{
			ID:          "other@x.com",
			DisplayName: "Other",
			Verified:    true,
			Role:        types.RoleAuthenticated,
		}
		project, err := collab.Join(ctx, be, outsider, "p1")
		assert.NoError(t, err)
		assert.True(t, project.HasMember(outsider.ID))
	})

	t.Run("join missing project test", func(t *testing.T) {
		be := setUpBackend(t)

		_, err := collab.Join(ctx, be, guest, "p9")
		assert.ErrorIs(t, err, database.ErrProjectNotFound)
	})
}

func TestMutateComment(t *testing.T) {
	ctx := context.Background()
	guest := types.NewGuestIdentity("guest-123")
	owner := &types.Identity{
		ID:          "o@x.com",
		DisplayName: "Olive",
		Verified:    true,
		Role:        types.RoleAuthenticated,
	}

	createFor := func(t *testing.T, be *backend.Backend, who *types.Identity, text string) types.Comment {
		t.Helper()
		project, err := collab.MutateComment(ctx, be, who, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionCreate,
			Fields: &types.CommentFields{Text: text, Timestamp: 12.5},
		})
		assert.NoError(t, err)
		comments := project.Assets[0].Versions[0].Comments
		return comments[len(comments)-1]
	}

	t.Run("create forces author from acting identity test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be, guest.AsMember())

		comment := createFor(t, be, guest, "fix color")
		assert.Equal(t, guest.ID, comment.UserID)
		assert.Equal(t, guest.DisplayName, comment.UserName)
		assert.Equal(t, types.CommentOpen, comment.Status)
		assert.Equal(t, 12.5, comment.Timestamp)
		assert.False(t, comment.CreatedAt.IsZero())
		assert.NotEmpty(t, comment.ID)
	})

	t.Run("create validates fields test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be, guest.AsMember())

		_, err := collab.MutateComment(ctx, be, guest, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionCreate,
			Fields: &types.CommentFields{Text: "", Timestamp: 12.5},
		})
		assert.Equal(t, errors.ErrCodeInvalidArgument, errors.StatusOf(err))
	})

	t.Run("guard gates comment mutation test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be, guest.AsMember())

		outsider := types.NewGuestIdentity("guest-999")
		_, err := collab.MutateComment(ctx, be, outsider, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionCreate,
			Fields: &types.CommentFields{Text: "drive-by", Timestamp: 1},
		})
		assert.ErrorIs(t, err, access.ErrPermissionDenied)
	})

	t.Run("update patches whitelisted fields test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be, guest.AsMember())
		comment := createFor(t, be, guest, "fix color")

		text := "fix color grading"
		status := types.CommentResolved
		project, err := collab.MutateComment(ctx, be, guest, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionUpdate,
			Patch:  &types.CommentPatch{ID: comment.ID, Text: &text, Status: &status},
		})
		assert.NoError(t, err)

		updated := project.Assets[0].Versions[0].Comments[0]
		assert.Equal(t, "fix color grading", updated.Text)
		assert.Equal(t, types.CommentResolved, updated.Status)
		assert.Equal(t, guest.ID, updated.UserID)
		assert.Equal(t, comment.CreatedAt, updated.CreatedAt)
	})

	t.Run("update missing comment is a silent no-op test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be, guest.AsMember())
		createFor(t, be, guest, "fix color")

		text := "nothing"
		project, err := collab.MutateComment(ctx, be, guest, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionUpdate,
			Patch:  &types.CommentPatch{ID: "missing", Text: &text},
		})
		assert.NoError(t, err)
		assert.Len(t, project.Assets[0].Versions[0].Comments, 1)
		assert.Equal(t, "fix color", project.Assets[0].Versions[0].Comments[0].Text)
	})

	t.Run("per-comment rule gates update and delete test", func(t *testing.T) {
		be := setUpBackend(t)
		other := types.NewGuestIdentity("guest-456")
		setUpProject(t, be, guest.AsMember(), other.AsMember())
		comment := createFor(t, be, guest, "fix color")

		// 01. Another guest may not touch the comment.
		text := "hijack"
		_, err := collab.MutateComment(ctx, be, other, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionUpdate,
			Patch:  &types.CommentPatch{ID: comment.ID, Text: &text},
		})
		assert.ErrorIs(t, err, access.ErrPermissionDenied)

		_, err = collab.MutateComment(ctx, be, other, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionDelete,
			Patch:  &types.CommentPatch{ID: comment.ID},
		})
		assert.ErrorIs(t, err, access.ErrPermissionDenied)

		// 02. A verified identity acts with elevated trust.
		project, err := collab.MutateComment(ctx, be, owner, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionDelete,
			Patch:  &types.CommentPatch{ID: comment.ID},
		})
		assert.NoError(t, err)
		assert.Len(t, project.Assets[0].Versions[0].Comments, 0)
	})

	t.Run("delete missing comment is a silent no-op test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be, guest.AsMember())

		project, err := collab.MutateComment(ctx, be, guest, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.ActionDelete,
			Patch:  &types.CommentPatch{ID: "missing"},
		})
		assert.NoError(t, err)
		assert.Len(t, project.Assets[0].Versions[0].Comments, 0)
	})

	t.Run("unknown action test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be, guest.AsMember())

		_, err := collab.MutateComment(ctx, be, guest, "p1", "a1", "v1", collab.CommentMutation{
			Action: collab.Action("merge"),
		})
		assert.ErrorIs(t, err, collab.ErrInvalidCommentAction)
	})

	t.Run("missing asset and version test", func(t *testing.T) {
		be := setUpBackend(t)
		setUpProject(t, be, guest.AsMember())

		_, err := collab.MutateComment(ctx, be, guest, "p1", "a9", "v1", collab.CommentMutation{
			Action: collab.ActionCreate,
			Fields: &types.CommentFields{Text: "fix", Timestamp: 0},
		})
		assert.ErrorIs(t, err, database.ErrAssetNotFound)

		_, err = collab.MutateComment(ctx, be, guest, "p1", "a1", "v9", collab.CommentMutation{
			Action: collab.ActionCreate,
			Fields: &types.CommentFields{Text: "fix", Timestamp: 0},
		})
		assert.ErrorIs(t, err, database.ErrVersionNotFound)
	})
}
