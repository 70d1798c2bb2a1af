package noisediode

import (
	"context"
	"fmt"
	"math"
	"strings"

	"ndops/internal/logging"
	"ndops/internal/metrics"
	"ndops/internal/subarray"
)

// switchNoiseDiode synchronizes a plain on/off state change across the
// whole subarray.
func (c *Controller) switchNoiseDiode(ctx context.Context, run opRun, t Timestamp, switchOn float64) Timestamp {
	state := "off"
	if switchOn > 0 {
		state = "on"
	}
	logging.Trace(ctx, run.log, "switch noise diode", "state", state, "timestamp", t.String())
	run.log.Info("request: switch noise diode", "state", state, "timestamp", t.String())
	return c.synchronize(ctx, run, t, nil, switchOn, false)
}

// On switches the noise source on across all antennas and blocks until
// the reconciled activation timestamp has passed, so callers observe the
// diode actually being on when the call returns. A zero timestamp means
// now plus lead time.
func (c *Controller) On(ctx context.Context, timestamp Timestamp, leadTime float64) Timestamp {
	run := c.newRun("on")
	if timestamp == 0 {
		timestamp = c.futureTime(ctx, run, leadTime)
	}
	logging.Trace(ctx, run.log, "nd on", "timestamp", timestamp.String())

	actual := c.switchNoiseDiode(ctx, run, timestamp, 1)

	now := c.clock.Now()
	run.log.Debug("waiting for activation", "now", now.String(), "sleep", actual.Sub(now))
	c.clock.SleepUntil(ctx, actual)
	run.log.Info("report: noise diode on", "at", c.clock.Now().String())
	metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "on", "ok").Inc()
	return actual
}

// Off switches the noise source off across all antennas. Unlike On it
// does not wait for the timestamp to pass. A zero timestamp means now
// plus lead time.
func (c *Controller) Off(ctx context.Context, timestamp Timestamp, leadTime float64) Timestamp {
	run := c.newRun("off")
	if timestamp == 0 {
		timestamp = c.futureTime(ctx, run, leadTime)
	}
	logging.Trace(ctx, run.log, "nd off", "timestamp", timestamp.String())

	actual := c.switchNoiseDiode(ctx, run, timestamp, 0)
	metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "off", "ok").Inc()
	return actual
}

// Trigger fires the noise diode for duration seconds ahead of a target
// observation. A non-positive duration is a no-op.
//
// When the duration exceeds the lead time this is a straightforward
// on/sleep/off sequence. A shorter duration cannot be realized that way
// without the on command racing the off window, so it is folded into a
// single duty-cycle pulse sized to the requested duration within one
// maximum-length cycle.
func (c *Controller) Trigger(ctx context.Context, duration, leadTime float64) error {
	if duration <= 0 {
		return nil
	}
	lead := ResolveLeadTime(leadTime)
	run := c.newRun("trigger")
	logging.Trace(ctx, run.log, "trigger", "duration", duration, "lead_time", lead)
	run.log.Info("firing noise diode before target observation",
		"duration", duration, "lead_time", lead)

	var offTime Timestamp
	if duration > lead {
		logging.Trace(ctx, run.log, "duration exceeds lead time, plain on/off sequence")
		onTime := c.clock.Now().Add(lead)
		onTime = c.On(ctx, onTime, lead)
		sleep := math.Min(duration-lead, lead)
		offTime = onTime.Add(duration)
		logging.Trace(ctx, run.log, "holding noise diode",
			"sleep", sleep, "off_time", offTime.String())
		c.clock.SleepUntil(ctx, c.clock.Now().Add(sleep))
	} else {
		logging.Trace(ctx, run.log, "duration within lead time, folding into one pattern cycle")
		maxLen, b, err := c.maxCycleLen()
		if err != nil {
			metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "trigger", "error").Inc()
			return err
		}
		setup := Setup{
			Antennas: AntennasAll,
			CycleLen: maxLen,
			OnFrac:   duration / maxLen,
		}
		run.log.Debug("firing noise diode using pattern", "duration", duration, "band", string(b))
		if err := c.Pattern(ctx, setup, lead); err != nil {
			metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "trigger", "error").Inc()
			return err
		}
		offTime = c.clock.Now().Add(lead)
	}

	run.log.Debug("switching off", "timestamp", offTime.String())
	c.Off(ctx, offTime, lead)
	c.clock.SleepUntil(ctx, offTime)
	run.log.Info("report: noise diode off", "at", c.clock.Now().String())
	metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "trigger", "ok").Inc()
	return nil
}

// Pattern starts a hardware-driven duty-cycle pattern on the selected
// antennas and blocks until the reconciled start time has passed. The
// pattern keeps running autonomously on the digitisers afterwards; this
// call does not switch it off.
func (c *Controller) Pattern(ctx context.Context, setup Setup, leadTime float64) error {
	run := c.newRun("pattern")
	lead := ResolveLeadTime(leadTime)

	if err := setup.Validate(); err != nil {
		metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "pattern", "error").Inc()
		return err
	}
	maxLen, b, err := c.maxCycleLen()
	if err != nil {
		metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "pattern", "error").Inc()
		return err
	}
	if setup.CycleLen > maxLen {
		metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "pattern", "error").Inc()
		return &CycleLengthError{CycleLen: setup.CycleLen, Max: maxLen, Band: b}
	}
	logging.Trace(ctx, run.log, "max cycle length", "band", string(b), "max", maxLen)

	start := c.futureTime(ctx, run, lead)
	run.log.Warn("request: set noise diode pattern",
		"activate_at", start.String(), "lead_time", lead)

	subNames := subarray.Names(c.sub)
	cycle := false
	resolved := setup
	switch setup.Antennas {
	case AntennasAll:
		resolved.Antennas = strings.Join(subNames, ",")
	case AntennasCycle:
		resolved.Antennas = strings.Join(subNames, ",")
		cycle = true
	default:
		var keep []string
		for _, want := range setup.antennaNames() {
			if _, ok := subarray.Lookup(c.sub, want); ok {
				keep = append(keep, want)
			}
		}
		resolved.Antennas = strings.Join(keep, ",")
	}
	if resolved.Antennas == "" {
		metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "pattern", "error").Inc()
		return fmt.Errorf("pattern: none of the requested antennas %q are in subarray %s",
			setup.Antennas, c.sub.ID())
	}
	run.log.Info("antennas found in subarray", "antennas", resolved.Antennas)

	actual := c.synchronize(ctx, run, start, &resolved, 0, cycle)
	run.log.Info("report: pattern set", "now", c.clock.Now().String())
	c.clock.SleepUntil(ctx, actual)
	run.log.Info("noise diode pattern active", "timestamp", actual.String())
	metrics.OperationsTotal.WithLabelValues(c.sub.ID(), "pattern", "ok").Inc()
	return nil
}
