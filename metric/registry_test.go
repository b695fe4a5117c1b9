package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndUnregisterCounter(t *testing.T) {
	r := NewRegistry()

	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meshagent",
		Subsystem: "test",
		Name:      "frames",
		Help:      "test counter",
	})

	require.NoError(t, r.RegisterCounter("transport", "frames", c))

	// Same key again is rejected before it reaches prometheus.
	err := r.RegisterCounter("transport", "frames", c)
	require.Error(t, err)

	assert.True(t, r.Unregister("transport", "frames"))
	assert.False(t, r.Unregister("transport", "frames"))
}

func TestCoreMetricsRegistered(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r.Core)

	r.Core.ResetsTotal.Inc()
	r.Core.SupervisorState.Set(3)
	r.Core.FramesReceived.WithLabelValues("controller").Inc()

	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["meshagent_supervisor_resets_total"])
	assert.True(t, names["meshagent_supervisor_state"])
	assert.True(t, names["meshagent_frames_received_total"])
}
