package noisediode

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ndops/internal/band"
	"ndops/internal/events"
	"ndops/internal/logging"
	"ndops/internal/metrics"
	"ndops/internal/subarray"
)

// Controller runs noise-diode operations against one subarray. All state
// is request-scoped; the controller itself only holds collaborators.
// Concurrent operations on the same subarray are not coordinated here
// and must be serialized by the caller.
type Controller struct {
	sub    subarray.Context
	clock  Clock
	log    *slog.Logger
	events events.Writer
}

// NewController wires a controller. clock may be nil for the system
// clock, log may be nil for slog.Default, w may be nil to disable event
// records.
func NewController(sub subarray.Context, clock Clock, log *slog.Logger, w events.Writer) *Controller {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{sub: sub, clock: clock, log: log, events: w}
}

// Subarray returns the subarray the controller operates on.
func (c *Controller) Subarray() subarray.Context {
	return c.sub
}

// opRun scopes one operation invocation: a correlation ID plus a logger
// tagged with it.
type opRun struct {
	op    string
	runID string
	log   *slog.Logger
}

func (c *Controller) newRun(op string) opRun {
	id := uuid.New().String()
	return opRun{op: op, runID: id, log: c.log.With("op", op, "run_id", id)}
}

// futureTime returns now plus the resolved lead time.
func (c *Controller) futureTime(ctx context.Context, run opRun, leadTime float64) Timestamp {
	lead := ResolveLeadTime(leadTime)
	logging.Trace(ctx, run.log, "adding lead time", "lead_time", lead)
	return c.clock.Now().Add(lead)
}

// maxCycleLen resolves the cycle-length ceiling for the active sub-band.
// An unknown band propagates as a hard error; there is no safe default.
func (c *Controller) maxCycleLen() (float64, band.Band, error) {
	b, err := c.sub.SubBand()
	if err != nil {
		return 0, "", err
	}
	m, err := band.MaxCycleLen(b)
	if err != nil {
		return 0, b, err
	}
	return m, b, nil
}

// emit records one dispatch outcome to metrics and the event sink.
func (c *Controller) emit(run opRun, antenna string, requested Timestamp, actual, onFrac, cycleLen float64, status string) {
	metrics.DispatchesTotal.WithLabelValues(c.sub.ID(), status).Inc()
	if c.events == nil {
		return
	}
	row := events.Row{
		SubarrayID: c.sub.ID(),
		RunID:      run.runID,
		Operation:  run.op,
		Antenna:    antenna,
		Requested:  float64(requested),
		Actual:     actual,
		OnFrac:     onFrac,
		CycleLen:   cycleLen,
		Status:     status,
		Timestamp:  time.Now().UTC(),
	}
	if err := c.events.Write(row); err != nil {
		run.log.Warn("event write failed", "antenna", antenna, "err", err)
	}
}
