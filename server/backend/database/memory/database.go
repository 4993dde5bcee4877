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

// Package memory implements the database interface using an in-memory
// database. It is used for tests and single-process deployments.
package memory

import (
	"context"
	"fmt"
	gotime "time"

	"github.com/hashicorp/go-memdb"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/server/backend/database"
)

// DB is an in-memory database for testing or temporary use.
type DB struct {
	db *memdb.MemDB
}

// New returns a new in-memory database.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	return &DB{
		db: memDB,
	}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// FindProjectInfo returns the project of the given ID.
func (d *DB) FindProjectInfo(_ context.Context, id types.ID) (*database.ProjectInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblProjects, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrProjectNotFound)
	}

	return raw.(*database.ProjectInfo).DeepCopy(), nil
}

// ListProjectInfosForUser returns all projects where the given user is the
// owner or a team member.
func (d *DB) ListProjectInfosForUser(
	_ context.Context,
	userID types.ID,
) ([]*database.ProjectInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	// NOTE: team membership is embedded in the document, so the owner index
	// alone cannot answer this query; scan the table and filter.
	iter, err := txn.Get(tblProjects, "id")
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}

	var infos []*database.ProjectInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		info := raw.(*database.ProjectInfo)
		if info.Owner == userID || info.HasTeamMember(userID) {
			infos = append(infos, info.DeepCopy())
		}
	}

	return infos, nil
}

// ListAllProjectInfos returns every project in the store.
func (d *DB) ListAllProjectInfos(_ context.Context) ([]*database.ProjectInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblProjects, "id")
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}

	var infos []*database.ProjectInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		infos = append(infos, raw.(*database.ProjectInfo).DeepCopy())
	}

	return infos, nil
}

// PutProjectInfo inserts or replaces the project keyed by its ID.
func (d *DB) PutProjectInfo(
	_ context.Context,
	info *database.ProjectInfo,
) (*database.ProjectInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblProjects, "id", info.ID.String())
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}

	now := gotime.Now()
	stored := info.DeepCopy()
	stored.UpdatedAt = now

	if raw != nil {
		stored.CreatedAt = raw.(*database.ProjectInfo).CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}

	if err := txn.Insert(tblProjects, stored); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	txn.Commit()

	return stored.DeepCopy(), nil
}

// DeleteProjectInfo deletes the project only if the requester is its owner.
func (d *DB) DeleteProjectInfo(
	_ context.Context,
	id types.ID,
	requester types.ID,
) (bool, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblProjects, "id", id.String())
	if err != nil {
		return false, fmt.Errorf("find project by id: %w", err)
	}
	if raw == nil {
		return false, nil
	}

	info := raw.(*database.ProjectInfo)
	if info.Owner != requester {
		return false, nil
	}

	if err := txn.Delete(tblProjects, info); err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	txn.Commit()

	return true, nil
}
