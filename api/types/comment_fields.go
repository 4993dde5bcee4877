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
	"github.com/go-playground/validator/v10"
)

// FieldViolation describes a single bad request field.
type FieldViolation struct {
	// Field is which field of the request is bad.
	Field string

	// Description is why the request element is bad.
	Description string
}

// InvalidFieldsError is used to describe invalid fields.
type InvalidFieldsError struct {
	Violations []*FieldViolation
}

// Error returns the error message.
func (e *InvalidFieldsError) Error() string { return "invalid comment fields" }

// CommentFields is the set of client-provided fields for creating a
// comment. The author is never taken from the client; the engine stamps it
// from the acting identity.
type CommentFields struct {
	// Text is the comment body.
	Text string `bson:"text" validate:"required,max=5000"`

	// Timestamp is the media position of the comment in seconds.
	Timestamp float64 `bson:"timestamp" validate:"gte=0"`

	// Status is the initial review status. Defaults to open when nil.
	Status *CommentStatus `bson:"status,omitempty" validate:"omitempty,commentstatus"`
}

// Validate validates the CommentFields.
func (f *CommentFields) Validate() error {
	return validateFields(f)
}

// CommentPatch is the whitelist of mutable comment fields for update and
// the comment selector for update/delete. Fields outside the whitelist,
// the author in particular, cannot be expressed and therefore cannot be
// overwritten.
type CommentPatch struct {
	// ID selects the comment to mutate.
	ID ID `bson:"id" validate:"required"`

	// Text replaces the comment body when set.
	Text *string `bson:"text,omitempty" validate:"omitempty,max=5000"`

	// Status replaces the review status when set.
	Status *CommentStatus `bson:"status,omitempty" validate:"omitempty,commentstatus"`
}

// Validate validates the CommentPatch. A patch that selects a comment but
// changes nothing is allowed for delete, so emptiness is checked by the
// caller that requires it.
func (p *CommentPatch) Validate() error {
	return validateFields(p)
}

// IsEmpty returns whether the patch carries no mutable field.
func (p *CommentPatch) IsEmpty() bool {
	return p.Text == nil && p.Status == nil
}

func validateFields(s interface{}) error {
	if err := defaultValidator.Struct(s); err != nil {
		invalidFieldsError := &InvalidFieldsError{}
		for _, err := range err.(validator.ValidationErrors) {
			v := &FieldViolation{
				Field:       err.StructField(),
				Description: err.Translate(trans),
			}
			invalidFieldsError.Violations = append(invalidFieldsError.Violations, v)
		}
		return invalidFieldsError
	}

	return nil
}

func init() {
	registerValidation("commentstatus", func(level validator.FieldLevel) bool {
		status := CommentStatus(level.Field().String())
		return status.IsValid()
	})
	registerTranslation("commentstatus", "given {0} is not a valid comment status")
}
