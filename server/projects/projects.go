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

// Package projects provides the project related business logic.
package projects

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/lithammer/shortuuid/v4"

	"github.com/screenroom-team/screenroom/api/types"
	pkgerrors "github.com/screenroom-team/screenroom/pkg/errors"
	"github.com/screenroom-team/screenroom/server/access"
	"github.com/screenroom-team/screenroom/server/backend"
	"github.com/screenroom-team/screenroom/server/backend/database"
	"github.com/screenroom-team/screenroom/server/logging"
)

// GetProject returns the project with the given ID if the identity has at
// least read access on it.
func GetProject(
	ctx context.Context,
	be *backend.Backend,
	identity *types.Identity,
	id types.ID,
) (*types.Project, error) {
	info, err := be.DB.FindProjectInfo(ctx, id)
	observe(be, "projects.get", err)
	if err != nil {
		return nil, err
	}

	project := info.ToProject()
	if access.Check(identity, project) < access.LevelRead {
		return nil, access.ErrPermissionDenied
	}

	return project, nil
}

// ListProjects lists the projects the identity owns or is a team member of.
func ListProjects(
	ctx context.Context,
	be *backend.Backend,
	identity *types.Identity,
) ([]*types.Project, error) {
	infos, err := be.DB.ListProjectInfosForUser(ctx, identity.ID)
	observe(be, "projects.list", err)
	if err != nil {
		return nil, err
	}

	var projects []*types.Project
	for _, info := range infos {
		projects = append(projects, info.ToProject())
	}

	return projects, nil
}

// UpsertProjects writes the given projects. A project that already exists
// is only written when the identity has write access on the stored row;
// others in the batch are silently skipped. The submitted document is
// authoritative for assets and metadata, but never shrinks the stored
// team: stored members missing from the submitted team are kept. New
// projects are owned by the acting identity. Returns the projects that
// were written.
func UpsertProjects(
	ctx context.Context,
	be *backend.Backend,
	identity *types.Identity,
	projects []*types.Project,
) ([]*types.Project, error) {
	var written []*types.Project
	for _, project := range projects {
		if err := project.FieldsOf().Validate(); err != nil {
			err = pkgerrors.InvalidArgument(err.Error()).WithCode("ErrInvalidProjectFields")
			observe(be, "projects.upsert", err)
			return written, err
		}

		info := database.FromProject(project)

		existing, err := be.DB.FindProjectInfo(ctx, project.ID)
		if err == nil {
			if access.Check(identity, existing.ToProject()) < access.LevelWrite {
				logging.From(ctx).Debugf("skip unpermitted project: %s", project.ID)
				continue
			}
			info.Owner = existing.Owner
			mergeTeam(info, existing)
		} else if !errors.Is(err, database.ErrProjectNotFound) {
			observe(be, "projects.upsert", err)
			return written, err
		} else {
			info.Owner = identity.ID
		}

		stored, err := be.DB.PutProjectInfo(ctx, info)
		observe(be, "projects.upsert", err)
		if err != nil {
			return written, err
		}
		written = append(written, stored.ToProject())
	}

	return written, nil
}

// DeleteProject deletes the project with the given ID. Only the owner may
// delete; for anyone else the call is a no-op reported as not deleted.
// Blobs stored under the project's path are removed after a successful
// delete.
func DeleteProject(
	ctx context.Context,
	be *backend.Backend,
	identity *types.Identity,
	id types.ID,
) (bool, error) {
	deleted, err := be.DB.DeleteProjectInfo(ctx, id, identity.ID)
	observe(be, "projects.delete", err)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	// Blob cleanup is best effort; the row is already gone.
	if err := be.Blob.DeletePrefix(ctx, BlobPrefix(id)); err != nil {
		logging.From(ctx).Warnf("delete project blobs: %v", err)
	}

	return true, nil
}

// PutAssetBlob stores an asset payload for the given project and returns
// the blob path. The identity must have write access on the project. The
// payload is opaque to the core; it is never inspected.
func PutAssetBlob(
	ctx context.Context,
	be *backend.Backend,
	identity *types.Identity,
	projectID types.ID,
	assetID types.ID,
	payload []byte,
) (string, error) {
	info, err := be.DB.FindProjectInfo(ctx, projectID)
	observe(be, "projects.put_asset_blob", err)
	if err != nil {
		return "", err
	}
	if access.Check(identity, info.ToProject()) < access.LevelWrite {
		return "", access.ErrPermissionDenied
	}

	path := fmt.Sprintf("%sassets/%s/%s", BlobPrefix(projectID), assetID, shortuuid.New())
	reader := bytes.NewReader(payload)
	if err := be.Blob.Put(ctx, path, reader, int64(len(payload)), "application/octet-stream"); err != nil {
		observe(be, "projects.put_asset_blob", err)
		return "", err
	}

	return path, nil
}

// BlobPrefix returns the blob path prefix of the given project.
func BlobPrefix(id types.ID) string {
	return fmt.Sprintf("projects/%s/", id)
}

// mergeTeam keeps stored members that are missing from the submitted team.
func mergeTeam(submitted, existing *database.ProjectInfo) {
	for _, member := range existing.Document.Team {
		if !submitted.HasTeamMember(member.ID) {
			submitted.AppendTeamMember(member)
		}
	}
}

func observe(be *backend.Backend, operation string, err error) {
	if be.Metrics != nil {
		be.Metrics.AddOperation(operation, err)
	}
}
