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

// Package mongo implements the database interface using MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	gotime "time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/server/backend/database"
	"github.com/screenroom-team/screenroom/server/logging"
)

// codeNamespaceNotFound is the server error code for a query against a
// collection that does not exist. It signals a skipped schema setup, not a
// missing entity.
const codeNamespaceNotFound = 26

// Client is a client that connects to MongoDB and reads or saves
// Screenroom project documents.
type Client struct {
	config *Config
	client *mongo.Client
}

// Dial creates an instance of Client and dials the given MongoDB.
func Dial(conf *Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.ParseConnectionTimeout())
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(conf.ConnectionURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(ctx, conf.ParsePingTimeout())
	defer cancelPing()

	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(conf.ScreenroomDatabase)); err != nil {
		return nil, err
	}

	logging.DefaultLogger().Infof(
		"MongoDB connected, URI: %s, DB: %s",
		conf.ConnectionURI,
		conf.ScreenroomDatabase,
	)

	return &Client{
		config: conf,
		client: client,
	}, nil
}

// Close all resources of this client.
func (c *Client) Close() error {
	if err := c.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("close mongo client: %w", err)
	}

	return nil
}

// FindProjectInfo returns the project of the given ID.
func (c *Client) FindProjectInfo(ctx context.Context, id types.ID) (*database.ProjectInfo, error) {
	result := c.collection(ColProjects).FindOne(ctx, bson.M{
		"_id": id,
	})

	info := database.ProjectInfo{}
	if err := result.Decode(&info); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%s: %w", id, database.ErrProjectNotFound)
		}
		return nil, wrapError(err, "find project info")
	}

	return &info, nil
}

// ListProjectInfosForUser returns all projects where the given user is the
// owner or a team member. The team check is a containment query on the
// embedded document.
func (c *Client) ListProjectInfosForUser(
	ctx context.Context,
	userID types.ID,
) ([]*database.ProjectInfo, error) {
	cursor, err := c.collection(ColProjects).Find(ctx, bson.M{
		"$or": bson.A{
			bson.M{"owner": userID},
			bson.M{"document.team": bson.M{"$elemMatch": bson.M{"id": userID}}},
		},
	})
	if err != nil {
		return nil, wrapError(err, "fetch project infos")
	}

	var infos []*database.ProjectInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, wrapError(err, "fetch project infos")
	}

	return infos, nil
}

// ListAllProjectInfos returns every project in the store.
func (c *Client) ListAllProjectInfos(ctx context.Context) ([]*database.ProjectInfo, error) {
	cursor, err := c.collection(ColProjects).Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapError(err, "fetch project infos")
	}

	var infos []*database.ProjectInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, wrapError(err, "fetch project infos")
	}

	return infos, nil
}

// PutProjectInfo inserts or replaces the project keyed by its ID. The
// update is a single findOneAndUpdate so the created_at preservation does
// not race with a concurrent insert of the same ID.
func (c *Client) PutProjectInfo(
	ctx context.Context,
	info *database.ProjectInfo,
) (*database.ProjectInfo, error) {
	now := gotime.Now()
	createdAt := info.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	result := c.collection(ColProjects).FindOneAndUpdate(ctx, bson.M{
		"_id": info.ID,
	}, bson.M{
		"$set": bson.M{
			"owner":      info.Owner,
			"document":   info.Document,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": createdAt,
		},
	}, options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After))

	stored := database.ProjectInfo{}
	if err := result.Decode(&stored); err != nil {
		return nil, wrapError(err, "put project info")
	}

	return &stored, nil
}

// DeleteProjectInfo deletes the project only if the requester is its
// owner. The owner check is part of the delete filter, so a non-owner
// request simply matches no row.
func (c *Client) DeleteProjectInfo(
	ctx context.Context,
	id types.ID,
	requester types.ID,
) (bool, error) {
	result, err := c.collection(ColProjects).DeleteOne(ctx, bson.M{
		"_id":   id,
		"owner": requester,
	})
	if err != nil {
		return false, wrapError(err, "delete project info")
	}

	return result.DeletedCount > 0, nil
}

func (c *Client) collection(
	name string,
	opts ...options.Lister[options.CollectionOptions],
) *mongo.Collection {
	return c.client.
		Database(c.config.ScreenroomDatabase).
		Collection(name, opts...)
}

// wrapError maps driver failures onto the store's typed errors: a missing
// namespace is a deployment error, timeouts and broken topologies are
// transient unavailability.
func wrapError(err error, msg string) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceNotFound {
		return fmt.Errorf("%s: %w", msg, database.ErrNotInitialized)
	}

	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%s: %w", msg, database.ErrStoreUnavailable)
	}

	return fmt.Errorf("%s: %w", msg, err)
}
