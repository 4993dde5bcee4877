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

package database

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/screenroom-team/screenroom/api/types"
)

// MemberInfo is a team membership record embedded in the project document.
type MemberInfo struct {
	// ID is the identity ID of the member.
	ID types.ID `bson:"id"`

	// Name is the display name used for attribution.
	Name string `bson:"name"`

	// Role is the trust level the member joined with.
	Role string `bson:"role"`
}

// CommentInfo is a review comment embedded in an asset version.
type CommentInfo struct {
	// ID is the unique ID of the comment.
	ID types.ID `bson:"id"`

	// UserID is the identity ID of the author. It equals the acting
	// identity at creation time and is rewritten only by identity
	// migration.
	UserID types.ID `bson:"user_id"`

	// UserName is the display name of the author.
	UserName string `bson:"user_name"`

	// Text is the comment body.
	Text string `bson:"text"`

	// Timestamp is the media position of the comment in seconds.
	Timestamp float64 `bson:"timestamp"`

	// Status is the review status of the comment.
	Status types.CommentStatus `bson:"status"`

	// CreatedAt is the server-assigned creation time.
	CreatedAt time.Time `bson:"created_at"`
}

// VersionInfo is an asset version embedded in the project document. Fields
// the core does not interpret are kept in Extra and written back untouched.
type VersionInfo struct {
	// ID is the unique ID of the version within the asset.
	ID types.ID `bson:"id"`

	// Comments is the sequence of review comments on this version.
	Comments []CommentInfo `bson:"comments"`

	// Extra holds opaque playback metadata.
	Extra bson.M `bson:",inline"`
}

// AssetInfo is a media asset embedded in the project document.
type AssetInfo struct {
	// ID is the unique ID of the asset within the project.
	ID types.ID `bson:"id"`

	// Title is the display title of the asset.
	Title string `bson:"title"`

	// Thumbnail is the storage path of the asset's thumbnail.
	Thumbnail string `bson:"thumbnail"`

	// Versions is the sequence of uploaded versions.
	Versions []VersionInfo `bson:"versions"`

	// Extra holds opaque playback metadata.
	Extra bson.M `bson:",inline"`
}

// DocumentInfo is the JSON-shaped payload of a project row. It is replaced
// wholesale on every write.
type DocumentInfo struct {
	// Name is the name of the project.
	Name string `bson:"name"`

	// Team is the ordered sequence of members, unique by ID. The owner is
	// not required to appear here.
	Team []MemberInfo `bson:"team"`

	// Assets is the sequence of media assets.
	Assets []AssetInfo `bson:"assets"`

	// Extra holds document fields the core does not interpret.
	Extra bson.M `bson:",inline"`
}

// ProjectInfo is a project row: the document payload plus the denormalized
// index fields.
type ProjectInfo struct {
	// ID is the unique ID of the project.
	ID types.ID `bson:"_id"`

	// Owner is the identity ID of the creating user. Denormalized from the
	// document for indexing.
	Owner types.ID `bson:"owner"`

	// Document is the JSON-shaped project payload.
	Document DocumentInfo `bson:"document"`

	// CreatedAt is the time when the project was created.
	CreatedAt time.Time `bson:"created_at"`

	// UpdatedAt is the time when the project was last written.
	UpdatedAt time.Time `bson:"updated_at"`
}

// FromProject builds a ProjectInfo from the caller-facing aggregate.
func FromProject(project *types.Project) *ProjectInfo {
	info := &ProjectInfo{
		ID:        project.ID,
		Owner:     project.Owner,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
		Document: DocumentInfo{
			Name: project.Name,
		},
	}

	for _, member := range project.Team {
		info.Document.Team = append(info.Document.Team, MemberInfo{
			ID:   member.ID,
			Name: member.Name,
			Role: member.Role,
		})
	}

	for _, asset := range project.Assets {
		assetInfo := AssetInfo{
			ID:        asset.ID,
			Title:     asset.Title,
			Thumbnail: asset.Thumbnail,
			Extra:     bson.M(asset.Extra),
		}
		for _, version := range asset.Versions {
			versionInfo := VersionInfo{
				ID:    version.ID,
				Extra: bson.M(version.Extra),
			}
			for _, comment := range version.Comments {
				versionInfo.Comments = append(versionInfo.Comments, CommentInfo{
					ID:        comment.ID,
					UserID:    comment.UserID,
					UserName:  comment.UserName,
					Text:      comment.Text,
					Timestamp: comment.Timestamp,
					Status:    comment.Status,
					CreatedAt: comment.CreatedAt,
				})
			}
			assetInfo.Versions = append(assetInfo.Versions, versionInfo)
		}
		info.Document.Assets = append(info.Document.Assets, assetInfo)
	}

	return info
}

// ToProject converts the ProjectInfo to a caller-facing Project.
func (i *ProjectInfo) ToProject() *types.Project {
	project := &types.Project{
		ID:        i.ID,
		Name:      i.Document.Name,
		Owner:     i.Owner,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}

	for _, member := range i.Document.Team {
		project.Team = append(project.Team, types.Member{
			ID:   member.ID,
			Name: member.Name,
			Role: member.Role,
		})
	}

	for _, asset := range i.Document.Assets {
		a := types.Asset{
			ID:        asset.ID,
			Title:     asset.Title,
			Thumbnail: asset.Thumbnail,
			Extra:     map[string]interface{}(asset.Extra),
		}
		for _, version := range asset.Versions {
			v := types.Version{
				ID:    version.ID,
				Extra: map[string]interface{}(version.Extra),
			}
			for _, comment := range version.Comments {
				v.Comments = append(v.Comments, types.Comment{
					ID:        comment.ID,
					UserID:    comment.UserID,
					UserName:  comment.UserName,
					Text:      comment.Text,
					Timestamp: comment.Timestamp,
					Status:    comment.Status,
					CreatedAt: comment.CreatedAt,
				})
			}
			a.Versions = append(a.Versions, v)
		}
		project.Assets = append(project.Assets, a)
	}

	return project
}

// DeepCopy returns a deep copy of the ProjectInfo.
func (i *ProjectInfo) DeepCopy() *ProjectInfo {
	if i == nil {
		return nil
	}

	clone := &ProjectInfo{
		ID:        i.ID,
		Owner:     i.Owner,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
		Document: DocumentInfo{
			Name:  i.Document.Name,
			Extra: copyExtra(i.Document.Extra),
		},
	}

	if i.Document.Team != nil {
		clone.Document.Team = make([]MemberInfo, len(i.Document.Team))
		copy(clone.Document.Team, i.Document.Team)
	}

	for _, asset := range i.Document.Assets {
		assetClone := AssetInfo{
			ID:        asset.ID,
			Title:     asset.Title,
			Thumbnail: asset.Thumbnail,
			Extra:     copyExtra(asset.Extra),
		}
		for _, version := range asset.Versions {
			versionClone := VersionInfo{
				ID:    version.ID,
				Extra: copyExtra(version.Extra),
			}
			if version.Comments != nil {
				versionClone.Comments = make([]CommentInfo, len(version.Comments))
				copy(versionClone.Comments, version.Comments)
			}
			assetClone.Versions = append(assetClone.Versions, versionClone)
		}
		clone.Document.Assets = append(clone.Document.Assets, assetClone)
	}

	return clone
}

// HasTeamMember returns whether the given identity ID appears in the team.
func (i *ProjectInfo) HasTeamMember(id types.ID) bool {
	for _, member := range i.Document.Team {
		if member.ID == id {
			return true
		}
	}
	return false
}

// AppendTeamMember appends the member to the team.
func (i *ProjectInfo) AppendTeamMember(member MemberInfo) {
	i.Document.Team = append(i.Document.Team, member)
}

// RemoveTeamMember removes the member with the given identity ID from the
// team, preserving the order of the remaining entries. It returns whether
// an entry was removed.
func (i *ProjectInfo) RemoveTeamMember(id types.ID) bool {
	for idx, member := range i.Document.Team {
		if member.ID == id {
			i.Document.Team = append(i.Document.Team[:idx], i.Document.Team[idx+1:]...)
			return true
		}
	}
	return false
}

// ReplaceTeamMember replaces the entry with the given identity ID in place,
// preserving its position. It returns whether an entry was replaced.
func (i *ProjectInfo) ReplaceTeamMember(id types.ID, member MemberInfo) bool {
	for idx, existing := range i.Document.Team {
		if existing.ID == id {
			i.Document.Team[idx] = member
			return true
		}
	}
	return false
}

// FindAssetInfo returns a pointer to the asset with the given ID so that
// callers can mutate it in place.
func (i *ProjectInfo) FindAssetInfo(assetID types.ID) (*AssetInfo, error) {
	for idx := range i.Document.Assets {
		if i.Document.Assets[idx].ID == assetID {
			return &i.Document.Assets[idx], nil
		}
	}
	return nil, ErrAssetNotFound
}

// FindVersionInfo returns a pointer to the version with the given ID.
func (a *AssetInfo) FindVersionInfo(versionID types.ID) (*VersionInfo, error) {
	for idx := range a.Versions {
		if a.Versions[idx].ID == versionID {
			return &a.Versions[idx], nil
		}
	}
	return nil, ErrVersionNotFound
}

// FindComment returns the index of the comment with the given ID, or -1.
func (v *VersionInfo) FindComment(id types.ID) int {
	for idx := range v.Comments {
		if v.Comments[idx].ID == id {
			return idx
		}
	}
	return -1
}

// AppendComment appends the comment to the version.
func (v *VersionInfo) AppendComment(comment CommentInfo) {
	v.Comments = append(v.Comments, comment)
}

// RemoveCommentAt removes the comment at the given index.
func (v *VersionInfo) RemoveCommentAt(idx int) {
	v.Comments = append(v.Comments[:idx], v.Comments[idx+1:]...)
}

// MigrateIdentity rewrites every reference to guestID in this document to
// the given authenticated identity: the team entry is replaced in place, or
// removed when the authenticated identity is already a member, and comment
// authorship is re-attributed across every asset version. It returns
// whether the document was touched.
func (i *ProjectInfo) MigrateIdentity(guestID types.ID, authenticated *types.Identity) bool {
	touched := false

	if i.HasTeamMember(guestID) {
		if i.HasTeamMember(authenticated.ID) {
			// The authenticated entry wins; drop the guest entry to avoid
			// duplicate membership.
			i.RemoveTeamMember(guestID)
		} else {
			i.ReplaceTeamMember(guestID, MemberInfo{
				ID:   authenticated.ID,
				Name: authenticated.DisplayName,
				Role: authenticated.Role.String(),
			})
		}
		touched = true
	}

	for assetIdx := range i.Document.Assets {
		asset := &i.Document.Assets[assetIdx]
		for versionIdx := range asset.Versions {
			version := &asset.Versions[versionIdx]
			for commentIdx := range version.Comments {
				comment := &version.Comments[commentIdx]
				if comment.UserID == guestID {
					comment.UserID = authenticated.ID
					comment.UserName = authenticated.DisplayName
					touched = true
				}
			}
		}
	}

	return touched
}

func copyExtra(extra bson.M) bson.M {
	if extra == nil {
		return nil
	}

	clone := make(bson.M, len(extra))
	for k, v := range extra {
		clone[k] = v
	}
	return clone
}
