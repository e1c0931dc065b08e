// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordLogin_ByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(LoginSucceeded)
	c.RecordLogin(LoginSucceeded)
	c.RecordLogin(LoginInvalidCredentials)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.logins.WithLabelValues(LoginSucceeded)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.logins.WithLabelValues(LoginInvalidCredentials)))
	assert.Equal(t, float64(0), testutil.ToFloat64(c.logins.WithLabelValues(LoginAccountInactive)))
}

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration()
	c.RecordResetTokenIssued()
	c.RecordPasswordSet()
	c.RecordPasswordSet()
	c.RecordDeactivation()
	c.RecordRateLimited("login")
	c.RecordResetTokensSwept(4)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.registrations))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.resetTokensIssued))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.passwordsSet))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.deactivations))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.rateLimited.WithLabelValues("login")))
	assert.Equal(t, float64(4), testutil.ToFloat64(c.resetTokensSwept))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin(LoginAccountInactive)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `backoffice_logins_total{outcome="inactive"} 1`))
}

func TestNop_DoesNotPanic(t *testing.T) {
	r := Nop()
	r.RecordLogin(LoginFailed)
	r.RecordRegistration()
	r.RecordResetTokenIssued()
	r.RecordPasswordSet()
	r.RecordDeactivation()
	r.RecordRateLimited("login")
	r.RecordResetTokensSwept(1)
}
