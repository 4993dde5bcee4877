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
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/screenroom-team/screenroom/server"
	"github.com/screenroom-team/screenroom/server/backend/blob"
	"github.com/screenroom-team/screenroom/server/backend/database/mongo"
	"github.com/screenroom-team/screenroom/server/logging"
)

var (
	gracefulTimeout = 10 * time.Second
)

var (
	flagConfPath string
	flagLogLevel string

	tokenDuration time.Duration

	mongoConnectionURI      string
	mongoConnectionTimeout  time.Duration
	mongoScreenroomDatabase string
	mongoPingTimeout        time.Duration

	blobEndpoint  string
	blobAccessKey string
	blobSecretKey string
	blobBucket    string
	blobUseSSL    bool

	conf = server.NewConfig()
)

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server [options]",
		Short: "Start Screenroom server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf.Backend.TokenDuration = tokenDuration.String()

			if mongoConnectionURI != "" {
				conf.Mongo = &mongo.Config{
					ConnectionURI:      mongoConnectionURI,
					ConnectionTimeout:  mongoConnectionTimeout.String(),
					ScreenroomDatabase: mongoScreenroomDatabase,
					PingTimeout:        mongoPingTimeout.String(),
				}
			}

			if blobEndpoint != "" {
				conf.Blob = &blob.Config{
					Endpoint:  blobEndpoint,
					AccessKey: blobAccessKey,
					SecretKey: blobSecretKey,
					Bucket:    blobBucket,
					UseSSL:    blobUseSSL,
				}
			}

			// If config file is given, command-line arguments will be overwritten.
			if flagConfPath != "" {
				parsed, err := server.NewConfigFromFile(flagConfPath)
				if err != nil {
					return err
				}
				conf = parsed
			}

			if err := logging.SetLogLevel(flagLogLevel); err != nil {
				return err
			}

			r, err := server.New(conf)
			if err != nil {
				return err
			}

			if err := r.Start(); err != nil {
				return err
			}

			if code := handleSignal(r); code != 0 {
				return fmt.Errorf("exit code: %d", code)
			}

			return nil
		},
	}
}

func handleSignal(r *server.Screenroom) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	var sig os.Signal
	select {
	case s := <-sigCh:
		sig = s
	case <-r.ShutdownCh():
		return 0
	}

	graceful := sig != syscall.SIGHUP
	if graceful {
		logging.DefaultLogger().Infof("shutting down gracefully, wait %s", gracefulTimeout)
		gracefulCh := make(chan struct{})
		go func() {
			if err := r.Shutdown(true); err != nil {
				logging.DefaultLogger().Error(err)
				return
			}
			close(gracefulCh)
		}()

		select {
		case <-time.After(gracefulTimeout):
			return 1
		case <-gracefulCh:
			return 0
		}
	}

	if err := r.Shutdown(false); err != nil {
		logging.DefaultLogger().Error(err)
		return 1
	}

	return 0
}

func init() {
	cmd := newServerCmd()
	cmd.Flags().StringVarP(
		&flagConfPath,
		"config",
		"c",
		"",
		"Config path",
	)
	cmd.Flags().StringVarP(
		&flagLogLevel,
		"log-level",
		"l",
		"info",
		"Log level: debug, info, warn, error, panic, fatal",
	)
	cmd.Flags().IntVar(
		&conf.Profiling.Port,
		"profiling-port",
		server.DefaultProfilingPort,
		"Profiling port",
	)
	cmd.Flags().BoolVar(
		&conf.Profiling.EnablePprof,
		"enable-pprof",
		false,
		"Enable runtime profiling data via HTTP server.",
	)
	cmd.Flags().StringVar(
		&conf.Backend.SecretKey,
		"secret-key",
		server.DefaultSecretKey,
		"Secret key for verifying bearer tokens issued by the built-in token provider",
	)
	cmd.Flags().DurationVar(
		&tokenDuration,
		"token-duration",
		server.DefaultTokenDuration,
		"Lifetime of tokens issued by the built-in token provider",
	)
	cmd.Flags().StringVar(
		&conf.Backend.Hostname,
		"hostname",
		server.DefaultHostname,
		"Server hostname used by metrics. If empty, the machine's hostname will be used",
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
	cmd.Flags().StringVar(
		&blobEndpoint,
		"blob-endpoint",
		"",
		"S3-compatible blob store endpoint. If empty, blobs are kept in memory",
	)
	cmd.Flags().StringVar(
		&blobAccessKey,
		"blob-access-key",
		"",
		"Blob store access key",
	)
	cmd.Flags().StringVar(
		&blobSecretKey,
		"blob-secret-key",
		"",
		"Blob store secret key",
	)
	cmd.Flags().StringVar(
		&blobBucket,
		"blob-bucket",
		"screenroom",
		"Blob store bucket",
	)
	cmd.Flags().BoolVar(
		&blobUseSSL,
		"blob-use-ssl",
		false,
		"Use TLS when talking to the blob store",
	)

	rootCmd.AddCommand(cmd)
}
