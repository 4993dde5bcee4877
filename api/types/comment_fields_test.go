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

func TestCommentFields(t *testing.T) {
	t.Run("valid create fields test", func(t *testing.T) {
		status := types.CommentOpen
		fields := &types.CommentFields{
			Text:      "fix color",
			Timestamp: 12.5,
			Status:    &status,
		}
		assert.NoError(t, fields.Validate())
	})

	t.Run("missing text test", func(t *testing.T) {
		fields := &types.CommentFields{Timestamp: 1}
		err := fields.Validate()
		assert.Error(t, err)

		var invalidFieldsError *types.InvalidFieldsError
		assert.ErrorAs(t, err, &invalidFieldsError)
		assert.Equal(t, "Text", invalidFieldsError.Violations[0].Field)
	})

	t.Run("negative timestamp test", func(t *testing.T) {
		fields := &types.CommentFields{Text: "late note", Timestamp: -0.5}
		assert.Error(t, fields.Validate())
	})

	t.Run("unknown status test", func(t *testing.T) {
		status := types.CommentStatus("archived")
		fields := &types.CommentFields{
			Text:      "note",
			Timestamp: 0,
			Status:    &status,
		}
		assert.Error(t, fields.Validate())
	})
}

func TestCommentPatch(t *testing.T) {
	t.Run("valid patch test", func(t *testing.T) {
		text := "updated"
		patch := &types.CommentPatch{ID: "c1", Text: &text}
		assert.NoError(t, patch.Validate())
		assert.False(t, patch.IsEmpty())
	})

	t.Run("selector-only patch test", func(t *testing.T) {
		patch := &types.CommentPatch{ID: "c1"}
		assert.NoError(t, patch.Validate())
		assert.True(t, patch.IsEmpty())
	})

	t.Run("missing selector test", func(t *testing.T) {
		text := "updated"
		patch := &types.CommentPatch{Text: &text}
		assert.Error(t, patch.Validate())
	})

	t.Run("invalid status patch test", func(t *testing.T) {
		status := types.CommentStatus("wontfix")
		patch := &types.CommentPatch{ID: "c1", Status: &status}
		assert.Error(t, patch.Validate())
	})
}
