package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/", "GET", 200, 7*time.Millisecond)
	m.RecordError("/tickets/1/cerrar", "POST", "NOT_FOUND")

	require.EqualValues(t, 2, m.RequestTotal("/", "GET", 200))
	require.EqualValues(t, 0, m.RequestTotal("/", "GET", 500))
	require.EqualValues(t, 1, m.ErrorTotal("/tickets/1/cerrar", "POST", "NOT_FOUND"))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	require.EqualValues(t, 0, m.RequestTotal("/", "GET", 200))
}
