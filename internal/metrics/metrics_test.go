package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkeye/Relay/internal/core"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayCounters(t *testing.T) {
	m := New()

	m.Joined()
	m.Joined()
	m.Published(core.PublishResult{SendTo: 3, Skipped: 1, Dropped: []core.SessionID{"a"}})
	m.SetMembers(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.joins))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chats))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sends))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.members))
}

func TestNilRelayIsNoop(t *testing.T) {
	var m *Relay
	assert.NotPanics(t, func() {
		m.Joined()
		m.Published(core.PublishResult{SendTo: 1})
		m.SetMembers(1)
	})
}

func TestHandlerExposesRelayMetrics(t *testing.T) {
	m := New()
	m.Joined()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "relay_joins_total 1")
	assert.Contains(t, rec.Body.String(), "relay_members 0")
}
