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

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/server/access"
)

func TestCheck(t *testing.T) {
	project := &types.Project{
		ID:    "p1",
		Owner: "o@x.com",
		Team: []types.Member{
			{ID: "guest-123", Name: "Guest", Role: "guest"},
		},
	}

	t.Run("owner has write access test", func(t *testing.T) {
		owner := &types.Identity{ID: "o@x.com", Verified: true, Role: types.RoleAuthenticated}
		assert.Equal(t, access.LevelWrite, access.Check(owner, project))
	})

	t.Run("team member has write access test", func(t *testing.T) {
		member := types.NewGuestIdentity("guest-123")
		assert.Equal(t, access.LevelWrite, access.Check(member, project))
	})

	t.Run("outsider has no access test", func(t *testing.T) {
		outsider := &types.Identity{ID: "other@x.com", Verified: true, Role: types.RoleAuthenticated}
		assert.Equal(t, access.LevelNone, access.Check(outsider, project))
	})
}

func TestCanEditComment(t *testing.T) {
	comment := &types.Comment{ID: "c1", UserID: "guest-123", Text: "fix color"}

	t.Run("author can edit own comment test", func(t *testing.T) {
		author := types.NewGuestIdentity("guest-123")
		assert.True(t, access.CanEditComment(author, comment))
	})

	t.Run("verified identity can edit any comment test", func(t *testing.T) {
		verified := &types.Identity{ID: "o@x.com", Verified: true, Role: types.RoleAuthenticated}
		assert.True(t, access.CanEditComment(verified, comment))
	})

	t.Run("other guest cannot edit comment test", func(t *testing.T) {
		other := types.NewGuestIdentity("guest-456")
		assert.False(t, access.CanEditComment(other, comment))
	})
}
