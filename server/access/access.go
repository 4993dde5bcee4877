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

// Package access provides the authorization guard for project documents.
// The guard is pure and synchronous; it never performs I/O.
package access

import (
	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/pkg/errors"
)

var (
	// ErrPermissionDenied is returned when the identity lacks the required
	// access level.
	ErrPermissionDenied = errors.PermissionDenied("permission denied").WithCode("ErrPermissionDenied")
)

// Level is the access level of an identity on a project.
type Level int

const (
	// LevelNone grants nothing.
	LevelNone Level = iota

	// LevelRead grants read access.
	LevelRead

	// LevelWrite grants write access. Write implies read.
	LevelWrite
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelRead:
		return "read"
	case LevelWrite:
		return "write"
	default:
		return "none"
	}
}

// Check returns the access level of the given identity on the given
// project: write for the owner and team members, none for everyone else.
func Check(identity *types.Identity, project *types.Project) Level {
	if project.IsOwner(identity.ID) || project.HasMember(identity.ID) {
		return LevelWrite
	}

	return LevelNone
}

// CanEditComment returns whether the identity may modify or delete the
// given existing comment: the author may, and so may any verified
// identity. This rule is evaluated per comment, on top of project-level
// write access.
func CanEditComment(identity *types.Identity, comment *types.Comment) bool {
	if comment.UserID == identity.ID {
		return true
	}

	return identity.Verified
}
