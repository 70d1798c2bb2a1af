package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ndops/internal/config"
	"ndops/internal/events"
	"ndops/internal/noisediode"
	"ndops/internal/subarray"
)

type stubClock struct {
	now noisediode.Timestamp
}

func (c *stubClock) Now() noisediode.Timestamp { return c.now }

func (c *stubClock) SleepUntil(ctx context.Context, target noisediode.Timestamp) {
	if target > c.now {
		c.now = target
	}
}

type recordWriter struct {
	rows []events.Row
}

func (r *recordWriter) Write(row events.Row) error {
	r.rows = append(r.rows, row)
	return nil
}

func planFixture(t *testing.T) (*noisediode.Controller, *recordWriter) {
	t.Helper()
	sub := subarray.NewSimulated("array_1", []string{"m000", "m011"})
	rec := &recordWriter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctl := noisediode.NewController(sub, &stubClock{now: 1000}, logger, rec)
	return ctl, rec
}

// A config may set both a duty-cycle pattern and a timed trigger; the
// plan runs them in sequence rather than picking one.
func TestRunPlanExecutesPatternAndTrigger(t *testing.T) {
	ctl, rec := planFixture(t)
	nd := config.NoiseDiodeConfig{
		Setup:     &noisediode.Setup{Antennas: noisediode.AntennasAll, CycleLen: 18, OnFrac: 0.1},
		Trigger:   20,
		LeadTime:  5,
		SwitchOff: true,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := runPlan(context.Background(), ctl, nd, logger); err != nil {
		t.Fatalf("runPlan: %v", err)
	}

	counts := map[string]int{}
	for _, row := range rec.rows {
		counts[row.Operation]++
	}
	if counts["pattern"] != 2 {
		t.Errorf("pattern dispatches = %d, want 2", counts["pattern"])
	}
	if counts["on"] != 2 {
		t.Errorf("trigger on dispatches = %d, want 2", counts["on"])
	}
	// One off from the trigger window, one from the final switch-off.
	if counts["off"] != 4 {
		t.Errorf("off dispatches = %d, want 4", counts["off"])
	}
	if rec.rows[0].Operation != "pattern" {
		t.Errorf("first dispatch op = %q, want pattern", rec.rows[0].Operation)
	}
}

func TestRunPlanEmptyIsNoOp(t *testing.T) {
	ctl, rec := planFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := runPlan(context.Background(), ctl, config.NoiseDiodeConfig{}, logger); err != nil {
		t.Fatalf("runPlan: %v", err)
	}
	if len(rec.rows) != 0 {
		t.Errorf("dispatched %d rows from an empty plan", len(rec.rows))
	}
}
