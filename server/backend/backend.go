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

// Package backend provides the backend implementation of Screenroom. This
// package is responsible for managing the database and other resources
// required to serve project documents.
package backend

import (
	"context"
	"fmt"
	"os"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/server/backend/blob"
	"github.com/screenroom-team/screenroom/server/backend/database"
	memdb "github.com/screenroom-team/screenroom/server/backend/database/memory"
	"github.com/screenroom-team/screenroom/server/backend/database/mongo"
	"github.com/screenroom-team/screenroom/server/identity"
	"github.com/screenroom-team/screenroom/server/logging"
	"github.com/screenroom-team/screenroom/server/profiling/prometheus"
)

// Backend manages Screenroom's backend such as Database and Blob store.
type Backend struct {
	Config *Config

	// Provider is used to verify bearer tokens.
	Provider identity.Provider

	// Metrics is used to expose metrics.
	Metrics *prometheus.Metrics
	// DB is the database instance.
	DB database.Database
	// Blob is the blob store instance holding asset payloads.
	Blob blob.Store
}

// New creates a new instance of Backend.
func New(
	conf *Config,
	mongoConf *mongo.Config,
	blobConf *blob.Config,
	metrics *prometheus.Metrics,
) (*Backend, error) {
	// 01. Build the server info with the given hostname or the hostname of
	// the current machine.
	if conf.Hostname == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("os.Hostname: %w", err)
		}
		conf.Hostname = hostname
	}

	// 02. Create the database instance. If the MongoDB configuration is
	// given, create a MongoDB instance. Otherwise, create a memory database.
	var db database.Database
	var err error
	if mongoConf != nil {
		db, err = mongo.Dial(mongoConf)
		if err != nil {
			return nil, err
		}
	} else {
		db, err = memdb.New()
		if err != nil {
			return nil, err
		}
	}

	// 03. Create the blob store instance. If the MinIO configuration is
	// given, create a MinIO store. Otherwise, keep payloads in memory.
	var store blob.Store
	if blobConf != nil {
		store, err = blob.NewMinioStore(context.Background(), blobConf)
		if err != nil {
			return nil, err
		}
	} else {
		store = blob.NewMemoryStore()
	}

	// 04. Create the token provider used to verify bearer tokens.
	provider := identity.NewTokenProvider(conf.SecretKey, conf.ParseTokenDuration())

	dbInfo := "memory"
	if mongoConf != nil {
		dbInfo = mongoConf.ConnectionURI
	}
	logging.DefaultLogger().Infof("backend created: db: %s", dbInfo)

	return &Backend{
		Config:   conf,
		Provider: provider,
		Metrics:  metrics,
		DB:       db,
		Blob:     store,
	}, nil
}

// ResolveIdentity resolves the given credential into an identity using the
// backend's provider and counts the resolution by resolved role.
func (b *Backend) ResolveIdentity(ctx context.Context, cred identity.Credential) (*types.Identity, error) {
	who, err := identity.Resolve(ctx, b.Provider, cred)
	if err != nil {
		return nil, err
	}

	if b.Metrics != nil {
		b.Metrics.AddIdentityResolution(who.Role.String())
	}
	return who, nil
}

// Shutdown closes all resources of this instance.
func (b *Backend) Shutdown() error {
	if err := b.DB.Close(); err != nil {
		return err
	}

	logging.DefaultLogger().Infof("backend stopped")
	return nil
}
