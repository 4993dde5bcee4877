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

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/screenroom-team/screenroom/internal/version"
)

const (
	namespace      = "screenroom"
	operationLabel = "operation"
	statusLabel    = "status"
	roleLabel      = "role"
)

// Metrics manages the metric information that Screenroom is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion *prometheus.GaugeVec

	operationsTotal          *prometheus.CounterVec
	identityResolutionsTotal *prometheus.CounterVec
	migratedDocumentsTotal   prometheus.Counter
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{"server_version"}),
		operationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of store operations handled, regardless of success or failure.",
		}, []string{operationLabel, statusLabel}),
		identityResolutionsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "resolutions_total",
			Help:      "Total number of identity resolutions by resolved role.",
		}, []string{roleLabel}),
		migratedDocumentsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "migration",
			Name:      "migrated_documents_total",
			Help:      "Total number of documents rewritten by identity migration.",
		}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		"server_version": version.Version,
	}).Set(1)

	return metrics, nil
}

// AddOperation adds the result of a store operation.
func (m *Metrics) AddOperation(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operationsTotal.With(prometheus.Labels{
		operationLabel: operation,
		statusLabel:    status,
	}).Inc()
}

// AddIdentityResolution adds an identity resolution with the resolved role.
func (m *Metrics) AddIdentityResolution(role string) {
	m.identityResolutionsTotal.With(prometheus.Labels{
		roleLabel: role,
	}).Inc()
}

// AddMigratedDocuments adds the number of documents rewritten by a migration run.
func (m *Metrics) AddMigratedDocuments(count int) {
	m.migratedDocumentsTotal.Add(float64(count))
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
