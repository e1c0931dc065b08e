// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics collects Prometheus counters for authentication and
// account administration events and exposes them for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes used as the "outcome" label.
const (
	LoginSucceeded          = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginAccountInactive    = "inactive"
	LoginFailed             = "error"
)

// Recorder is the set of events the services report.
type Recorder interface {
	RecordLogin(outcome string)
	RecordRegistration()
	RecordResetTokenIssued()
	RecordPasswordSet()
	RecordDeactivation()
	RecordRateLimited(route string)
	RecordResetTokensSwept(count int64)
}

// Collector is the Prometheus implementation of [Recorder].
type Collector struct {
	logins            *prometheus.CounterVec
	registrations     prometheus.Counter
	resetTokensIssued prometheus.Counter
	passwordsSet      prometheus.Counter
	deactivations     prometheus.Counter
	rateLimited       *prometheus.CounterVec
	resetTokensSwept  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_registrations_total",
			Help: "Accounts created through self-registration.",
		}),
		resetTokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_reset_tokens_issued_total",
			Help: "Password reset tokens generated by administrators.",
		}),
		passwordsSet: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_passwords_set_total",
			Help: "Passwords replaced by administrators.",
		}),
		deactivations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_deactivations_total",
			Help: "Accounts deactivated.",
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}, []string{"route"}),
		resetTokensSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_reset_tokens_swept_total",
			Help: "Expired reset tokens cleared by the sweeper.",
		}),
	}

	reg.MustRegister(
		c.logins,
		c.registrations,
		c.resetTokensIssued,
		c.passwordsSet,
		c.deactivations,
		c.rateLimited,
		c.resetTokensSwept,
	)

	return c
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

func (c *Collector) RecordResetTokenIssued() {
	c.resetTokensIssued.Inc()
}

func (c *Collector) RecordPasswordSet() {
	c.passwordsSet.Inc()
}

func (c *Collector) RecordDeactivation() {
	c.deactivations.Inc()
}

func (c *Collector) RecordRateLimited(route string) {
	c.rateLimited.WithLabelValues(route).Inc()
}

func (c *Collector) RecordResetTokensSwept(count int64) {
	c.resetTokensSwept.Add(float64(count))
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type nopRecorder struct{}

// Nop returns a [Recorder] that drops every event.
func Nop() Recorder {
	return nopRecorder{}
}

func (nopRecorder) RecordLogin(string)           {}
func (nopRecorder) RecordRegistration()          {}
func (nopRecorder) RecordResetTokenIssued()      {}
func (nopRecorder) RecordPasswordSet()           {}
func (nopRecorder) RecordDeactivation()          {}
func (nopRecorder) RecordRateLimited(string)     {}
func (nopRecorder) RecordResetTokensSwept(int64) {}
