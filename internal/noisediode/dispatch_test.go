package noisediode

import (
	"testing"

	"ndops/internal/katcp"
)

func TestParseAck(t *testing.T) {
	reply := katcp.NewReply("dig-noise-source", katcp.StatusOK, "1000.25", "0.5", "20")
	ack, err := parseAck("m000", reply, 0.4, 10)
	if err != nil {
		t.Fatalf("parseAck: %v", err)
	}
	if ack.Timestamp != 1000.25 || ack.OnFrac != 0.5 || ack.CycleLen != 20 {
		t.Errorf("ack = %+v", ack)
	}
}

func TestParseAckShortReply(t *testing.T) {
	reply := katcp.NewReply("dig-noise-source", katcp.StatusOK)
	if _, err := parseAck("m000", reply, 0.4, 10); err == nil {
		t.Fatal("expected error for reply with fewer than two arguments")
	}
}

func TestParseAckBadTimestamp(t *testing.T) {
	reply := katcp.NewReply("dig-noise-source", katcp.StatusOK, "soon")
	if _, err := parseAck("m000", reply, 0.4, 10); err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
}

func TestParseAckFallsBackToRequested(t *testing.T) {
	reply := katcp.NewReply("dig-noise-source", katcp.StatusOK, "1000.25")
	ack, err := parseAck("m000", reply, 0.4, 10)
	if err != nil {
		t.Fatalf("parseAck: %v", err)
	}
	if ack.OnFrac != 0.4 || ack.CycleLen != 10 {
		t.Errorf("fallback values = %+v, want requested 0.4/10", ack)
	}
}
