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

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenroom-team/screenroom/pkg/errors"
)

func TestStatusErrors(t *testing.T) {
	t.Run("status extraction test", func(t *testing.T) {
		err := errors.NotFound("project not found")
		assert.Equal(t, errors.ErrCodeNotFound, errors.StatusOf(err))
		assert.True(t, errors.IsStatus(err, errors.ErrCodeNotFound))
		assert.True(t, errors.IsClientError(err))
		assert.False(t, errors.IsServerError(err))
	})

	t.Run("wrapped status extraction test", func(t *testing.T) {
		base := errors.PermissionDenied("comment not editable")
		wrapped := fmt.Errorf("mutate comment: %w", base)
		assert.Equal(t, errors.ErrCodePermissionDenied, errors.StatusOf(wrapped))
	})

	t.Run("code test", func(t *testing.T) {
		err := errors.Unavailable("store unavailable").WithCode("ErrStoreUnavailable")
		assert.Equal(t, "ErrStoreUnavailable", err.Code())
		assert.Equal(t, "ErrStoreUnavailable", errors.CodeOf(fmt.Errorf("wrap: %w", err)))
		assert.True(t, errors.IsServerError(err))
	})

	t.Run("plain error has no status test", func(t *testing.T) {
		err := fmt.Errorf("plain failure")
		assert.Equal(t, errors.StatusCode(0), errors.StatusOf(err))
		assert.Equal(t, "", errors.CodeOf(err))
	})

	t.Run("status string test", func(t *testing.T) {
		assert.Equal(t, "unauthenticated", errors.ErrCodeUnauthenticated.String())
		assert.Equal(t, "failed_precondition", errors.ErrCodeFailedPrecondition.String())
		assert.Equal(t, "code_99", errors.StatusCode(99).String())
	})
}
