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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenroom-team/screenroom/server/backend/database/memory"
	"github.com/screenroom-team/screenroom/server/backend/database/testcases"
)

func TestDB(t *testing.T) {
	db, err := memory.New()
	assert.NoError(t, err)
	defer func() {
		assert.NoError(t, db.Close())
	}()

	t.Run("RunFindProjectInfo test", func(t *testing.T) {
		testcases.RunFindProjectInfoTest(t, db)
	})

	t.Run("RunPutProjectInfo test", func(t *testing.T) {
		testcases.RunPutProjectInfoTest(t, db)
	})

	t.Run("RunListProjectInfosForUser test", func(t *testing.T) {
		testcases.RunListProjectInfosForUserTest(t, db)
	})

	t.Run("RunDeleteProjectInfo test", func(t *testing.T) {
		testcases.RunDeleteProjectInfoTest(t, db)
	})

	t.Run("RunListAllProjectInfos test", func(t *testing.T) {
		testcases.RunListAllProjectInfosTest(t, db)
	})
}
