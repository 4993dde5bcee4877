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

// Package server provides the Screenroom server which assembles the store
// backend and the profiling listener. Operations are invoked through the
// service packages; the transport that frames them is supplied by the
// embedding application.
package server

import (
	gosync "sync"

	"github.com/screenroom-team/screenroom/server/backend"
	"github.com/screenroom-team/screenroom/server/logging"
	"github.com/screenroom-team/screenroom/server/profiling"
	"github.com/screenroom-team/screenroom/server/profiling/prometheus"
)

// Screenroom is a server of Screenroom. It keeps the project document
// store and exposes operational metrics while it runs.
type Screenroom struct {
	lock gosync.Mutex

	conf            *Config
	backend         *backend.Backend
	profilingServer *profiling.Server

	shutdown   bool
	shutdownCh chan struct{}
}

// New creates a new instance of Screenroom.
func New(conf *Config) (*Screenroom, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	metrics, err := prometheus.NewMetrics()
	if err != nil {
		return nil, err
	}

	be, err := backend.New(conf.Backend, conf.Mongo, conf.Blob, metrics)
	if err != nil {
		return nil, err
	}

	var profilingServer *profiling.Server
	if conf.Profiling != nil {
		profilingServer = profiling.NewServer(conf.Profiling, metrics)
	}

	return &Screenroom{
		conf:            conf,
		backend:         be,
		profilingServer: profilingServer,
		shutdownCh:      make(chan struct{}),
	}, nil
}

// Backend returns the backend of this server for the service packages to
// operate on.
func (r *Screenroom) Backend() *backend.Backend {
	return r.backend
}

// Start starts the server by opening the profiling port.
func (r *Screenroom) Start() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.profilingServer != nil {
		if err := r.profilingServer.Start(); err != nil {
			return err
		}
	}

	logging.DefaultLogger().Infof("server started")
	return nil
}

// Shutdown shuts down this server.
func (r *Screenroom) Shutdown(graceful bool) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.shutdown {
		return nil
	}

	if r.profilingServer != nil {
		r.profilingServer.Shutdown(graceful)
	}

	if err := r.backend.Shutdown(); err != nil {
		return err
	}

	close(r.shutdownCh)
	r.shutdown = true
	return nil
}

// ShutdownCh returns the shutdown channel.
func (r *Screenroom) ShutdownCh() <-chan struct{} {
	return r.shutdownCh
}
