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

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenroom-team/screenroom/api/types"
)

func TestProject(t *testing.T) {
	t.Run("membership test", func(t *testing.T) {
		project := &types.Project{
			ID:    "p1",
			Owner: "o@x.com",
			Team: []types.Member{
				{ID: "guest-123", Name: "Guest"},
			},
		}

		assert.True(t, project.IsOwner("o@x.com"))
		assert.False(t, project.IsOwner("guest-123"))
		assert.True(t, project.HasMember("guest-123"))
		assert.False(t, project.HasMember("o@x.com"))
	})
}

func TestIdentity(t *testing.T) {
	t.Run("guest marker test", func(t *testing.T) {
		assert.True(t, types.IsGuestID("guest-123"))
		assert.False(t, types.IsGuestID("o@x.com"))

		guest := types.NewGuestIdentity("guest-123")
		assert.Equal(t, types.ID("guest-123"), guest.ID)
		assert.Equal(t, types.GuestDisplayName, guest.DisplayName)
		assert.False(t, guest.Verified)
		assert.Equal(t, types.RoleGuest, guest.Role)
	})

	t.Run("as member test", func(t *testing.T) {
		identity := &types.Identity{
			ID:          "o2@x.com",
			DisplayName: "Real Name",
			Verified:    true,
			Role:        types.RoleAuthenticated,
		}

		member := identity.AsMember()
		assert.Equal(t, types.ID("o2@x.com"), member.ID)
		assert.Equal(t, "Real Name", member.Name)
		assert.Equal(t, types.RoleAuthenticated.String(), member.Role)
	})
}
