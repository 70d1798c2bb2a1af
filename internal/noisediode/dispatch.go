package noisediode

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ndops/internal/events"
	"ndops/internal/katcp"
	"ndops/internal/logging"
	"ndops/internal/subarray"
)

// Ack is one antenna's acknowledgement of a trigger command, carrying
// the values the hardware actually latched (which may differ slightly
// from the requested ones).
type Ack struct {
	Antenna   string
	Timestamp Timestamp
	OnFrac    float64
	CycleLen  float64
}

type dispatchStatus int

const (
	// dispatchOK: command accepted and acknowledgement parsed.
	dispatchOK dispatchStatus = iota
	// dispatchSkipped: endpoint rejected the command; antenna excluded.
	dispatchSkipped
	// dispatchNoAck: command accepted but the reply was unusable.
	dispatchNoAck
	// dispatchSimulated: offline mode, intent logged only.
	dispatchSimulated
)

// dispatchOne sends a single trigger command to one antenna's digitiser.
// Failures are absorbed here: a rejected command or a malformed reply
// only excludes this antenna from reconciliation, never the fleet.
func (c *Controller) dispatchOne(ctx context.Context, run opRun, ant subarray.Antenna, t Timestamp, onFrac, cycleLen float64) (Ack, dispatchStatus) {
	if c.sub.Simulated() {
		run.log.Debug("simulated: set noise diode",
			"antenna", ant.Name, "timestamp", t.String(), "on_frac", onFrac, "cycle_len", cycleLen)
		c.emit(run, ant.Name, t, 0, onFrac, cycleLen, events.StatusSimulated)
		return Ack{}, dispatchSimulated
	}

	reply, informs, err := ant.Dig.NoiseSource(ctx, float64(t), onFrac, cycleLen)
	if err != nil {
		var ve *katcp.ValidationError
		if errors.As(err, &ve) {
			run.log.Warn("digitiser rejected noise source arguments", "antenna", ant.Name, "err", err)
		} else {
			run.log.Warn("noise source request failed", "antenna", ant.Name, "err", err)
		}
		c.emit(run, ant.Name, t, 0, onFrac, cycleLen, events.StatusSkipped)
		return Ack{}, dispatchSkipped
	}

	logging.Trace(ctx, run.log, "digitiser reply",
		"antenna", ant.Name, "arguments", reply.Arguments, "informs", len(informs))

	ack, err := parseAck(ant.Name, reply, onFrac, cycleLen)
	if err != nil {
		run.log.Warn("unexpected response after noise diode instruction", "antenna", ant.Name, "err", err)
		run.log.Debug("reply arguments", "antenna", ant.Name, "arguments", reply.Arguments)
		c.emit(run, ant.Name, t, 0, onFrac, cycleLen, events.StatusNoAck)
		return Ack{}, dispatchNoAck
	}

	run.log.Debug("noise diode set", "antenna", ant.Name, "actual_time", ack.Timestamp.String())
	run.log.Debug("pattern latched",
		"antenna", ant.Name, "on_sec", ack.OnFrac*ack.CycleLen, "cycle_len", ack.CycleLen)
	c.emit(run, ant.Name, t, float64(ack.Timestamp), ack.OnFrac, ack.CycleLen, events.StatusOK)
	return ack, dispatchOK
}

// parseAck extracts the actual trigger values from a reply. At least two
// positional arguments (status, timestamp) are required; on fraction and
// cycle length fall back to the requested values when the hardware does
// not echo them.
func parseAck(name string, reply katcp.Message, reqOnFrac, reqCycleLen float64) (Ack, error) {
	args := reply.Arguments
	if len(args) < 2 {
		return Ack{}, fmt.Errorf("reply has %d arguments, need at least 2", len(args))
	}
	ts, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return Ack{}, fmt.Errorf("bad timestamp argument %q", args[1])
	}
	ack := Ack{Antenna: name, Timestamp: Timestamp(ts), OnFrac: reqOnFrac, CycleLen: reqCycleLen}
	if len(args) > 2 {
		if v, err := strconv.ParseFloat(args[2], 64); err == nil {
			ack.OnFrac = v
		}
	}
	if len(args) > 3 {
		if v, err := strconv.ParseFloat(args[3], 64); err == nil {
			ack.CycleLen = v
		}
	}
	return ack, nil
}
