package noisediode

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/stat"

	"ndops/internal/metrics"
	"ndops/internal/subarray"
)

// synchronize fans one trigger out over a set of antennas and reconciles
// their acknowledgements into a single representative timestamp.
//
// With setup == nil the dispatch is a plain on/off switch: cycle length 1
// and on fraction equal to switchOn. With cycle true the request
// timestamp advances by cycleLen*onFrac after every accepted dispatch so
// cyclic patterns are phase-staggered across antennas instead of loading
// all digitisers at the same instant.
//
// Antennas are always walked in lexicographic order so the stagger
// offsets are deterministic regardless of input ordering.
func (c *Controller) synchronize(ctx context.Context, run opRun, t0 Timestamp, setup *Setup, switchOn float64, cycle bool) Timestamp {
	var names []string
	onFrac, cycleLen := switchOn, 1.0
	if setup != nil {
		names = setup.antennaNames()
		onFrac, cycleLen = setup.OnFrac, setup.CycleLen
		run.log.Info("repeat noise diode pattern",
			"cycle_len", cycleLen, "on_sec", cycleLen*onFrac, "antennas", names)
	} else {
		names = subarray.Names(c.sub)
	}
	sort.Strings(names)

	t := t0
	var ackTimes []float64
	for _, name := range names {
		ant, ok := subarray.Lookup(c.sub, name)
		if !ok {
			run.log.Warn("antenna not in subarray", "antenna", name)
			continue
		}
		ack, status := c.dispatchOne(ctx, run, ant, t, onFrac, cycleLen)
		if status == dispatchSkipped {
			continue
		}
		if status == dispatchOK {
			ackTimes = append(ackTimes, float64(ack.Timestamp))
		}
		if cycle {
			t = t.Add(cycleLen * onFrac)
		}
	}

	if c.sub.Simulated() {
		// No hardware acknowledgements to reconcile; the requested
		// timestamp stands.
		return t0
	}

	if len(ackTimes) < len(names) {
		run.log.Error("noise diode activation not in sync",
			"acknowledged", len(ackTimes), "dispatched", len(names))
		metrics.SyncFaultsTotal.WithLabelValues(c.sub.ID()).Inc()
	}
	if len(ackTimes) == 0 {
		run.log.Error("no acknowledgements received, keeping requested timestamp",
			"timestamp", t0.String())
		return t0
	}

	// All antennas are assumed to have latched the same trigger; the mean
	// of the acknowledged timestamps stands in for the fleet. Divergent
	// stragglers are not rejected and will skew it.
	reconciled := Timestamp(stat.Mean(ackTimes, nil))
	run.log.Info("set all noise diodes", "timestamp", reconciled.String())
	return reconciled
}
