package noisediode

import (
	"context"
	"strconv"

	"ndops/internal/band"
	"ndops/internal/katcp"
	"ndops/internal/subarray"
)

// virtualClock runs operations on a synthetic timeline: SleepUntil jumps
// the clock forward instead of blocking.
type virtualClock struct {
	now    Timestamp
	sleeps []float64
}

func (c *virtualClock) Now() Timestamp { return c.now }

func (c *virtualClock) SleepUntil(_ context.Context, target Timestamp) {
	d := target.Sub(c.now)
	if d < 0 {
		d = 0
	}
	c.sleeps = append(c.sleeps, d)
	if target > c.now {
		c.now = target
	}
}

type dispatchCall struct {
	timestamp float64
	onFrac    float64
	cycleLen  float64
}

// fakeDigitiser records dispatches and answers via a configurable reply
// function. The default echoes the request like well-behaved hardware.
type fakeDigitiser struct {
	calls []dispatchCall
	reply func(t, onFrac, cycleLen float64) (katcp.Message, []katcp.Message, error)
}

func (d *fakeDigitiser) NoiseSource(_ context.Context, t, onFrac, cycleLen float64) (katcp.Message, []katcp.Message, error) {
	d.calls = append(d.calls, dispatchCall{timestamp: t, onFrac: onFrac, cycleLen: cycleLen})
	if d.reply != nil {
		return d.reply(t, onFrac, cycleLen)
	}
	return echoReply(t, onFrac, cycleLen), nil, nil
}

func echoReply(t, onFrac, cycleLen float64) katcp.Message {
	return katcp.NewReply("dig-noise-source", katcp.StatusOK,
		strconv.FormatFloat(t, 'f', -1, 64),
		strconv.FormatFloat(onFrac, 'f', -1, 64),
		strconv.FormatFloat(cycleLen, 'f', -1, 64))
}

func ackReply(t float64) func(_, onFrac, cycleLen float64) (katcp.Message, []katcp.Message, error) {
	return func(_, onFrac, cycleLen float64) (katcp.Message, []katcp.Message, error) {
		return echoReply(t, onFrac, cycleLen), nil, nil
	}
}

// fakeSub is an in-memory subarray context.
type fakeSub struct {
	id   string
	ants []subarray.Antenna
	band band.Band
	sim  bool
}

func (f *fakeSub) ID() string                   { return f.id }
func (f *fakeSub) Antennas() []subarray.Antenna { return f.ants }
func (f *fakeSub) SubBand() (band.Band, error)  { return f.band, nil }
func (f *fakeSub) Simulated() bool              { return f.sim }

// newFakeSub builds a live-mode fake with one echoing digitiser per name.
func newFakeSub(names ...string) (*fakeSub, map[string]*fakeDigitiser) {
	sub := &fakeSub{id: "array_1", band: band.L}
	digs := make(map[string]*fakeDigitiser, len(names))
	for _, n := range names {
		d := &fakeDigitiser{}
		digs[n] = d
		sub.ants = append(sub.ants, subarray.Antenna{Name: n, Dig: d})
	}
	return sub, digs
}

func totalCalls(digs map[string]*fakeDigitiser) int {
	n := 0
	for _, d := range digs {
		n += len(d.calls)
	}
	return n
}
