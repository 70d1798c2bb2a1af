package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchesTotal counts per-antenna trigger dispatches by outcome.
	DispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ndops_dispatches_total",
			Help: "Total number of noise-diode trigger dispatches to digitisers",
		},
		[]string{"subarray", "status"},
	)

	// SyncFaultsTotal counts fleet dispatches where fewer acknowledgements
	// than dispatched antennas came back.
	SyncFaultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ndops_sync_faults_total",
			Help: "Total number of desynchronized noise-diode activations",
		},
		[]string{"subarray"},
	)

	// OperationsTotal counts completed top-level operations.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ndops_operations_total",
			Help: "Total number of noise-diode operations by outcome",
		},
		[]string{"subarray", "operation", "status"},
	)
)
