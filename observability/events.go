package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics tracks ledgers committed to the store.
type LedgerMetrics struct {
	commits   *prometheus.CounterVec
	entries   prometheus.Counter
	latestSeq *prometheus.GaugeVec
}

var (
	ledgerMetricsOnce sync.Once
	ledgerRegistry    *LedgerMetrics
)

// Ledgers returns the metrics registry tracking ledger commits.
func Ledgers() *LedgerMetrics {
	ledgerMetricsOnce.Do(func() {
		ledgerRegistry = &LedgerMetrics{
			commits: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "ledgerd",
				Subsystem: "store",
				Name:      "commits_total",
				Help:      "Count of committed ledgers segmented by validation state.",
			}, []string{"validated"}),
			entries: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "ledgerd",
				Subsystem: "store",
				Name:      "entries_written_total",
				Help:      "Count of ledger objects written across all commits.",
			}),
			latestSeq: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "ledgerd",
				Subsystem: "store",
				Name:      "latest_sequence",
				Help:      "Highest committed ledger sequence per pointer.",
			}, []string{"pointer"}),
		}
		prometheus.MustRegister(ledgerRegistry.commits, ledgerRegistry.entries, ledgerRegistry.latestSeq)
	})
	return ledgerRegistry
}

// RecordCommit counts a committed ledger and its objects.
func (m *LedgerMetrics) RecordCommit(entries int, validated bool) {
	if m == nil {
		return
	}
	label := "false"
	if validated {
		label = "true"
	}
	m.commits.WithLabelValues(label).Inc()
	m.entries.Add(float64(entries))
}

// SetPointers publishes the store's closed and validated sequences.
func (m *LedgerMetrics) SetPointers(closed, validated uint32) {
	if m == nil {
		return
	}
	m.latestSeq.WithLabelValues("closed").Set(float64(closed))
	m.latestSeq.WithLabelValues("validated").Set(float64(validated))
}
