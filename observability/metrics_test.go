package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestModuleMetricsObserve(t *testing.T) {
	m := Module()
	require.Same(t, m, Module())

	okBefore := testutil.ToFloat64(m.requests.WithLabelValues("http", "ledger_entry", "success"))
	errBefore := testutil.ToFloat64(m.errors.WithLabelValues("http", "ledger_entry", "404"))

	m.Observe("http", "ledger_entry", 200, time.Millisecond)
	m.Observe("http", "ledger_entry", 404, time.Millisecond)

	require.Equal(t, okBefore+1, testutil.ToFloat64(m.requests.WithLabelValues("http", "ledger_entry", "success")))
	require.Equal(t, errBefore+1, testutil.ToFloat64(m.errors.WithLabelValues("http", "ledger_entry", "404")))

	before := testutil.ToFloat64(m.throttles.WithLabelValues("unknown", "unspecified"))
	m.RecordThrottle("", "")
	require.Equal(t, before+1, testutil.ToFloat64(m.throttles.WithLabelValues("unknown", "unspecified")))
}

func TestLedgerEntryMetricsDefaultsResult(t *testing.T) {
	m := LedgerEntry()
	before := testutil.ToFloat64(m.requests.WithLabelValues("offer", "success"))
	m.Observe("offer", "", time.Microsecond)
	require.Equal(t, before+1, testutil.ToFloat64(m.requests.WithLabelValues("offer", "success")))

	missBefore := testutil.ToFloat64(m.requests.WithLabelValues("unknown", "entryNotFound"))
	m.Observe("", "entryNotFound", time.Microsecond)
	require.Equal(t, missBefore+1, testutil.ToFloat64(m.requests.WithLabelValues("unknown", "entryNotFound")))
}

func TestGRPCMetricsObserve(t *testing.T) {
	m := GRPC()
	before := testutil.ToFloat64(m.requests.WithLabelValues("GetLedgerEntry", "NotFound"))
	m.Observe("GetLedgerEntry", "NotFound", time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(m.requests.WithLabelValues("GetLedgerEntry", "NotFound")))
}

func TestLedgerMetrics(t *testing.T) {
	m := Ledgers()
	before := testutil.ToFloat64(m.commits.WithLabelValues("true"))
	entriesBefore := testutil.ToFloat64(m.entries)

	m.RecordCommit(3, true)
	m.SetPointers(12, 10)

	require.Equal(t, before+1, testutil.ToFloat64(m.commits.WithLabelValues("true")))
	require.Equal(t, entriesBefore+3, testutil.ToFloat64(m.entries))
	require.Equal(t, float64(12), testutil.ToFloat64(m.latestSeq.WithLabelValues("closed")))
	require.Equal(t, float64(10), testutil.ToFloat64(m.latestSeq.WithLabelValues("validated")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var module *ModuleMetrics
	var entries *LedgerEntryMetrics
	var grpc *GRPCMetrics
	var ledgers *LedgerMetrics
	require.NotPanics(t, func() {
		module.Observe("http", "x", 200, 0)
		module.RecordThrottle("http", "rate_limit")
		entries.Observe("index", "", 0)
		grpc.Observe("m", "OK", 0)
		ledgers.RecordCommit(1, false)
		ledgers.SetPointers(1, 1)
	})
}
