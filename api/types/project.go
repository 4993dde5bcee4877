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

package types

import (
	"time"
)

// Member is a team membership record embedded in a project. The team must
// contain no two entries with the same ID; the owner has implicit access
// and is not required to appear in the team.
type Member struct {
	// ID is the identity ID of the member.
	ID ID `json:"id"`

	// Name is the display name used for attribution.
	Name string `json:"name"`

	// Role is the trust level the member joined with.
	Role string `json:"role"`
}

// Project is the root aggregate: a single JSON-shaped document shared
// between an owning identity and an invited team. It is stored and
// rewritten as a unit.
type Project struct {
	// ID is the unique ID of the project. It is immutable after creation.
	ID ID `json:"id"`

	// Name is the name of this project.
	Name string `json:"name"`

	// Owner is the identity ID of the creating user.
	Owner ID `json:"owner"`

	// Team is the ordered sequence of members granted write access
	// besides the owner.
	Team []Member `json:"team"`

	// Assets is the sequence of media assets under review.
	Assets []Asset `json:"assets"`

	// CreatedAt is the time when the project was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time when the project was updated. It is
	// server-assigned on every write and never decreases.
	UpdatedAt time.Time `json:"updated_at"`
}

// HasMember returns whether the given identity ID appears in the team.
func (p *Project) HasMember(id ID) bool {
	for _, member := range p.Team {
		if member.ID == id {
			return true
		}
	}
	return false
}

// IsOwner returns whether the given identity ID owns the project.
func (p *Project) IsOwner(id ID) bool {
	return p.Owner == id
}

// Asset is a media asset with its uploaded versions. Playback metadata
// beyond the fields below is opaque passthrough kept in Extra.
type Asset struct {
	// ID is the unique ID of the asset within the project.
	ID ID `json:"id"`

	// Title is the display title of the asset.
	Title string `json:"title"`

	// Thumbnail is the storage path of the asset's thumbnail.
	Thumbnail string `json:"thumbnail"`

	// Versions is the sequence of uploaded versions of the asset.
	Versions []Version `json:"versions"`

	// Extra holds playback metadata the core does not interpret.
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// Version is a single uploaded version of an asset carrying its review
// comments.
type Version struct {
	// ID is the unique ID of the version within the asset.
	ID ID `json:"id"`

	// Comments is the sequence of timestamped review comments.
	Comments []Comment `json:"comments"`

	// Extra holds playback metadata the core does not interpret.
	Extra map[string]interface{} `json:"extra,omitempty"`
}
