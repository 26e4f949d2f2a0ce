/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package metrics exposes the Prometheus collectors of the logout endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "oidc_logout"

var (
	// LogoutDecisions counts the logout decisions by decision type and reason.
	LogoutDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Number of RP-initiated logout decisions by type and reason",
	}, []string{"type", "reason"})

	// IDTokenHintVerifications counts ID token hint verifications by outcome.
	IDTokenHintVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "id_token_hint_verifications_total",
		Help:      "Number of ID token hint verifications by outcome",
	}, []string{"outcome"})

	// SessionInvalidations counts session state invalidations by store and whether an entry existed.
	SessionInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_invalidations_total",
		Help:      "Number of session state invalidations by store and result",
	}, []string{"store", "result"})

	// LogoutDurationMs observes the end to end latency of logout request handling.
	LogoutDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_ms",
		Help:      "Latency of RP-initiated logout handling in milliseconds",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
	})
)

// ObserveDecision records a logout decision.
func ObserveDecision(decisionType, reason string) {
	LogoutDecisions.WithLabelValues(decisionType, reason).Inc()
}

// ObserveHintVerification records an ID token hint verification outcome.
func ObserveHintVerification(outcome string) {
	IDTokenHintVerifications.WithLabelValues(outcome).Inc()
}

// ObserveSessionInvalidation records a session state invalidation.
func ObserveSessionInvalidation(store string, existed bool) {
	result := "absent"
	if existed {
		result = "invalidated"
	}
	SessionInvalidations.WithLabelValues(store, result).Inc()
}

// ObserveDuration records the time elapsed since start.
func ObserveDuration(start time.Time) {
	LogoutDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}
