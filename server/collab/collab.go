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

// Package collab provides the collaborative mutation engine. Every
// mutation follows the same protocol: load the project, authorize, mutate
// in memory, persist the whole document. Writes are last-write-wins at
// document granularity.
package collab

import (
	"context"
	"time"

	"github.com/rs/xid"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/pkg/errors"
	"github.com/screenroom-team/screenroom/server/access"
	"github.com/screenroom-team/screenroom/server/backend"
	"github.com/screenroom-team/screenroom/server/backend/database"
)

// Action is the kind of a comment mutation.
type Action string

const (
	// ActionCreate appends a new comment.
	ActionCreate Action = "create"

	// ActionUpdate patches an existing comment.
	ActionUpdate Action = "update"

	// ActionDelete removes an existing comment.
	ActionDelete Action = "delete"
)

var (
	// ErrInvalidCommentAction is returned when the action is none of
	// create, update or delete.
	ErrInvalidCommentAction = errors.InvalidArgument("invalid comment action").WithCode("ErrInvalidCommentAction")

	// ErrEmptyCommentPatch is returned when an update patch selects a
	// comment but changes nothing.
	ErrEmptyCommentPatch = errors.InvalidArgument("comment patch is empty").WithCode("ErrEmptyCommentPatch")
)

// CommentMutation is one comment mutation request. Fields carries the
// payload for create, Patch selects and patches for update and delete.
type CommentMutation struct {
	Action Action
	Fields *types.CommentFields
	Patch  *types.CommentPatch
}

// Join adds the identity to the project's team. Joining is open to anyone
// who can name a valid project ID; the guard is deliberately not
// consulted. Calling it again with the same identity is a no-op that
// performs zero writes.
func Join(
	ctx context.Context,
	be *backend.Backend,
	identity *types.Identity,
	projectID types.ID,
) (*types.Project, error) {
	info, err := be.DB.FindProjectInfo(ctx, projectID)
	observe(be, "collab.join", err)
	if err != nil {
		return nil, err
	}

	if info.HasTeamMember(identity.ID) {
		return info.ToProject(), nil
	}

	info.AppendTeamMember(database.MemberInfo{
		ID:   identity.ID,
		Name: identity.DisplayName,
		Role: identity.Role.String(),
	})

	stored, err := be.DB.PutProjectInfo(ctx, info)
	observe(be, "collab.join", err)
	if err != nil {
		return nil, err
	}

	return stored.ToProject(), nil
}

// MutateComment applies one comment mutation to the given version of the
// given asset. The identity needs write access on the project; updates and
// deletes of an existing comment additionally need the per-comment rule.
// Patching or deleting a comment ID that no longer exists is a silent
// no-op that performs zero writes.
func MutateComment(
	ctx context.Context,
	be *backend.Backend,
	identity *types.Identity,
	projectID types.ID,
	assetID types.ID,
	versionID types.ID,
	mutation CommentMutation,
) (*types.Project, error) {
	info, err := be.DB.FindProjectInfo(ctx, projectID)
	observe(be, "collab.mutate_comment", err)
	if err != nil {
		return nil, err
	}

	if access.Check(identity, info.ToProject()) < access.LevelWrite {
		return nil, access.ErrPermissionDenied
	}

	asset, err := info.FindAssetInfo(assetID)
	if err != nil {
		return nil, err
	}
	version, err := asset.FindVersionInfo(versionID)
	if err != nil {
		return nil, err
	}

	var touched bool
	switch mutation.Action {
	case ActionCreate:
		touched, err = createComment(identity, version, mutation.Fields)
	case ActionUpdate:
		touched, err = updateComment(identity, version, mutation.Patch)
	case ActionDelete:
		touched, err = deleteComment(identity, version, mutation.Patch)
	default:
		err = ErrInvalidCommentAction
	}
	if err != nil {
		observe(be, "collab.mutate_comment", err)
		return nil, err
	}

	if !touched {
		return info.ToProject(), nil
	}

	stored, err := be.DB.PutProjectInfo(ctx, info)
	observe(be, "collab.mutate_comment", err)
	if err != nil {
		return nil, err
	}

	return stored.ToProject(), nil
}

// createComment appends a new comment. The author is always the acting
// identity; an author claimed by the payload cannot be expressed.
func createComment(
	identity *types.Identity,
	version *database.VersionInfo,
	fields *types.CommentFields,
) (bool, error) {
	if fields == nil {
		return false, ErrInvalidCommentAction
	}
	if err := fields.Validate(); err != nil {
		return false, errors.InvalidArgument(err.Error()).WithCode("ErrInvalidCommentFields")
	}

	status := types.CommentOpen
	if fields.Status != nil {
		status = *fields.Status
	}

	version.AppendComment(database.CommentInfo{
		ID:        types.ID(xid.New().String()),
		UserID:    identity.ID,
		UserName:  identity.DisplayName,
		Text:      fields.Text,
		Timestamp: fields.Timestamp,
		Status:    status,
		CreatedAt: time.Now(),
	})

	return true, nil
}

func updateComment(
	identity *types.Identity,
	version *database.VersionInfo,
	patch *types.CommentPatch,
) (bool, error) {
	if patch == nil {
		return false, ErrInvalidCommentAction
	}
	if err := patch.Validate(); err != nil {
		return false, errors.InvalidArgument(err.Error()).WithCode("ErrInvalidCommentFields")
	}
	if patch.IsEmpty() {
		return false, ErrEmptyCommentPatch
	}

	idx := version.FindComment(patch.ID)
	if idx < 0 {
		return false, nil
	}

	comment := &version.Comments[idx]
	if !access.CanEditComment(identity, &types.Comment{ID: comment.ID, UserID: comment.UserID}) {
		return false, access.ErrPermissionDenied
	}

	if patch.Text != nil {
		comment.Text = *patch.Text
	}
	if patch.Status != nil {
		comment.Status = *patch.Status
	}

	return true, nil
}

func deleteComment(
	identity *types.Identity,
	version *database.VersionInfo,
	patch *types.CommentPatch,
) (bool, error) {
	if patch == nil {
		return false, ErrInvalidCommentAction
	}
	if err := patch.ID.Validate(); err != nil {
		return false, errors.InvalidArgument(err.Error()).WithCode("ErrInvalidCommentFields")
	}

	idx := version.FindComment(patch.ID)
	if idx < 0 {
		return false, nil
	}

	comment := &version.Comments[idx]
	if !access.CanEditComment(identity, &types.Comment{ID: comment.ID, UserID: comment.UserID}) {
		return false, access.ErrPermissionDenied
	}

	version.RemoveCommentAt(idx)
	return true, nil
}

func observe(be *backend.Backend, operation string, err error) {
	if be.Metrics != nil {
		be.Metrics.AddOperation(operation, err)
	}
}
