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

package backend_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/server/backend"
	"github.com/screenroom-team/screenroom/server/identity"
	"github.com/screenroom-team/screenroom/server/profiling/prometheus"
)

func setUpBackend(t *testing.T) *backend.Backend {
	t.Helper()

	metrics, err := prometheus.NewMetrics()
	assert.NoError(t, err)

	be, err := backend.New(&backend.Config{
		SecretKey:     "secret",
		TokenDuration: "1h",
		Hostname:      "test",
	}, nil, nil, metrics)
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, be.Shutdown())
	})

	return be
}

func resolutionCount(t *testing.T, metrics *prometheus.Metrics, role string) float64 {
	t.Helper()

	families, err := metrics.Registry().Gather()
	assert.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "screenroom_identity_resolutions_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "role" && label.GetValue() == role {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestResolveIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("guest resolution is counted test", func(t *testing.T) {
		be := setUpBackend(t)

		marker := identity.NewGuestMarker()
		who, err := be.ResolveIdentity(ctx, identity.Credential{GuestMarker: marker})
		assert.NoError(t, err)
		assert.Equal(t, types.RoleGuest, who.Role)
		assert.Equal(t, float64(1), resolutionCount(t, be.Metrics, "guest"))
		assert.Equal(t, float64(0), resolutionCount(t, be.Metrics, "authenticated"))
	})

	t.Run("authenticated resolution is counted test", func(t *testing.T) {
		be := setUpBackend(t)

		bearer, err := identity.NewTokenProvider("secret", time.Hour).Generate("o@x.com", "Olive")
		assert.NoError(t, err)

		who, err := be.ResolveIdentity(ctx, identity.Credential{Bearer: bearer})
		assert.NoError(t, err)
		assert.Equal(t, types.RoleAuthenticated, who.Role)
		assert.Equal(t, float64(1), resolutionCount(t, be.Metrics, "authenticated"))
	})

	t.Run("failed resolution is not counted test", func(t *testing.T) {
		be := setUpBackend(t)

		_, err := be.ResolveIdentity(ctx, identity.Credential{GuestMarker: "o@x.com"})
		assert.ErrorIs(t, err, identity.ErrUnauthenticated)
		assert.Equal(t, float64(0), resolutionCount(t, be.Metrics, "guest"))
		assert.Equal(t, float64(0), resolutionCount(t, be.Metrics, "authenticated"))
	})
}
