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

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screenroom-team/screenroom/api/types"
	"github.com/screenroom-team/screenroom/server"
	"github.com/screenroom-team/screenroom/server/backend"
	"github.com/screenroom-team/screenroom/server/backend/database/mongo"
	"github.com/screenroom-team/screenroom/server/migration"
)

var (
	migrateGuestID     string
	migrateEmail       string
	migrateDisplayName string
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite a guest identity to an authenticated one across the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mongoConnectionURI == "" {
				return fmt.Errorf("--mongo-connection-uri must be given")
			}
			if !types.IsGuestID(types.ID(migrateGuestID)) {
				return fmt.Errorf("guest id %q lacks the %q prefix", migrateGuestID, types.GuestIDPrefix)
			}

			displayName := migrateDisplayName
			if displayName == "" {
				displayName = migrateEmail
			}

			be, err := backend.New(&backend.Config{
				SecretKey:     server.DefaultSecretKey,
				TokenDuration: server.DefaultTokenDuration.String(),
			}, &mongo.Config{
				ConnectionURI:      mongoConnectionURI,
				ConnectionTimeout:  mongoConnectionTimeout.String(),
				ScreenroomDatabase: mongoScreenroomDatabase,
				PingTimeout:        mongoPingTimeout.String(),
			}, nil, nil)
			if err != nil {
				return err
			}
			defer func() {
				if err := be.Shutdown(); err != nil {
					cmd.PrintErrf("shutdown backend: %v\n", err)
				}
			}()

			result, err := migration.Migrate(
				context.Background(),
				be,
				types.ID(migrateGuestID),
				&types.Identity{
					ID:          types.ID(migrateEmail),
					DisplayName: displayName,
					Verified:    true,
					Role:        types.RoleAuthenticated,
				},
			)
			if err != nil {
				return fmt.Errorf("migrated %d projects before failure: %w", result.MigratedCount, err)
			}

			cmd.Printf("migrated %d projects\n", result.MigratedCount)
			return nil
		},
	}
}

func init() {
	cmd := newMigrateCmd()
	cmd.Flags().StringVar(
		&migrateGuestID,
		"guest-id",
		"",
		"Guest marker to migrate away from",
	)
	cmd.Flags().StringVar(
		&migrateEmail,
		"email",
		"",
		"Email of the authenticated identity",
	)
	cmd.Flags().StringVar(
		&migrateDisplayName,
		"display-name",
		"",
		"Display name of the authenticated identity. Defaults to the email",
	)
	cmd.Flags().StringVar(
		&mongoConnectionURI,
		"mongo-connection-uri",
		"",
		"MongoDB's connection URI",
	)
	cmd.Flags().DurationVar(
		&mongoConnectionTimeout,
		"mongo-connection-timeout",
		server.DefaultMongoConnectionTimeout,
		"Mongo DB's connection timeout",
	)
	cmd.Flags().StringVar(
		&mongoScreenroomDatabase,
		"mongo-screenroom-database",
		server.DefaultMongoScreenroomDatabase,
		"Screenroom's database name in MongoDB",
	)
	cmd.Flags().DurationVar(
		&mongoPingTimeout,
		"mongo-ping-timeout",
		server.DefaultMongoPingTimeout,
		"Mongo DB's ping timeout",
	)

	if err := cmd.MarkFlagRequired("guest-id"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagRequired("email"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(cmd)
}
