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

const (
	// CommentOpen is the status of a comment that still needs attention.
	CommentOpen CommentStatus = "open"

	// CommentResolved is the status of a comment that has been addressed.
	CommentResolved CommentStatus = "resolved"
)

// CommentStatus represents the review status of a comment.
type CommentStatus string

// String returns the string representation of the status.
func (s CommentStatus) String() string {
	return string(s)
}

// IsValid returns whether the status is one of the known values.
func (s CommentStatus) IsValid() bool {
	return s == CommentOpen || s == CommentResolved
}

// Comment is a timestamped review note attached to an asset version.
// UserID always equals the identity that created the comment; it is
// rewritten only by identity migration.
type Comment struct {
	// ID is the unique ID of the comment.
	ID ID `json:"id"`

	// UserID is the identity ID of the author.
	UserID ID `json:"user_id"`

	// UserName is the display name of the author used for attribution.
	UserName string `json:"user_name"`

	// Text is the comment body.
	Text string `json:"text"`

	// Timestamp is the media position of the comment in seconds.
	Timestamp float64 `json:"timestamp"`

	// Status is the review status of the comment.
	Status CommentStatus `json:"status"`

	// CreatedAt is the server-assigned creation time.
	CreatedAt time.Time `json:"created_at"`
}
