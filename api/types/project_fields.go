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

package types

import (
	"github.com/screenroom-team/screenroom/internal/validation"
)

// ProjectFields is the set of caller-provided fields checked before a
// project document is written.
type ProjectFields struct {
	// ID is the client-chosen project ID.
	ID *string `bson:"id" validate:"required,min=1,max=255"`

	// Name is the name of the project.
	Name *string `bson:"name" validate:"omitempty,max=255"`
}

// Validate validates the ProjectFields.
func (f *ProjectFields) Validate() error {
	return validation.ValidateStruct(f)
}

// FieldsOf extracts the validatable fields of the given project.
func (p *Project) FieldsOf() *ProjectFields {
	id := p.ID.String()
	fields := &ProjectFields{ID: &id}
	if p.Name != "" {
		name := p.Name
		fields.Name = &name
	}
	return fields
}
