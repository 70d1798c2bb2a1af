package subarray

import (
	"context"
	"testing"
	"time"

	"ndops/internal/band"
	"ndops/internal/katcp"
)

func TestNewSimulatedSortsAntennas(t *testing.T) {
	sub := NewSimulated("array_1", []string{"m022", "m000", "m011"})
	names := Names(sub)
	want := []string{"m000", "m011", "m022"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if !sub.Simulated() {
		t.Error("simulated context reports live")
	}
	if b, err := sub.SubBand(); err != nil || b != band.Default {
		t.Errorf("SubBand = %v, %v", b, err)
	}
}

func TestLookup(t *testing.T) {
	sub := NewSimulated("array_1", []string{"m000", "m011"})
	if _, ok := Lookup(sub, "m011"); !ok {
		t.Error("known antenna not found")
	}
	if _, ok := Lookup(sub, "m062"); ok {
		t.Error("unknown antenna found")
	}
}

func startServer(t *testing.T, handler katcp.Handler) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv := katcp.NewServer(handler)
	addr, err := srv.Listen(ctx, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(srv.Close)
	return addr
}

func TestLiveConnectAndDispatch(t *testing.T) {
	sensorAddr := startServer(t, func(req katcp.Message) (katcp.Message, []katcp.Message) {
		if req.Name == "sensor-value" && len(req.Arguments) > 0 && req.Arguments[0] == "sub-band" {
			return katcp.NewReply(req.Name, katcp.StatusOK, "u"), nil
		}
		return katcp.NewReply(req.Name, katcp.StatusFail, "unknown request"), nil
	})
	digAddr := startServer(t, func(req katcp.Message) (katcp.Message, []katcp.Message) {
		if req.Name != "dig-noise-source" || len(req.Arguments) != 3 {
			return katcp.NewReply(req.Name, katcp.StatusInvalid, "bad arguments"), nil
		}
		return katcp.NewReply(req.Name, katcp.StatusOK,
			req.Arguments[0], req.Arguments[1], req.Arguments[2]), nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	live, err := Connect(ctx, "array_1", sensorAddr, []Endpoint{{Name: "m000", Addr: digAddr}})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer live.Close()

	if live.Simulated() {
		t.Error("live context reports simulated")
	}
	b, err := live.SubBand()
	if err != nil {
		t.Fatalf("SubBand: %v", err)
	}
	if b != band.UHF {
		t.Errorf("SubBand = %q, want u", b)
	}

	ant, ok := Lookup(live, "m000")
	if !ok {
		t.Fatal("antenna missing from live context")
	}
	reply, _, err := ant.Dig.NoiseSource(ctx, 1234567890.5, 0.5, 20)
	if err != nil {
		t.Fatalf("NoiseSource: %v", err)
	}
	if !reply.OK() || reply.Arguments[1] != "1234567890.5" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestConnectFailsWhenDigitiserUnreachable(t *testing.T) {
	sensorAddr := startServer(t, func(req katcp.Message) (katcp.Message, []katcp.Message) {
		return katcp.NewReply(req.Name, katcp.StatusOK, "l"), nil
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := Connect(ctx, "array_1", sensorAddr, []Endpoint{{Name: "m000", Addr: "127.0.0.1:1"}})
	if err == nil {
		t.Fatal("expected connect failure for dead digitiser endpoint")
	}
}
