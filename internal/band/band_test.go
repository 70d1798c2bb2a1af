package band

import (
	"errors"
	"testing"
)

func TestMaxCycleLen(t *testing.T) {
	cases := []struct {
		band Band
		want float64
	}{
		{L, 20},
		{UHF, 20},
		{S, 10},
		{X, 10},
	}
	for _, c := range cases {
		got, err := MaxCycleLen(c.band)
		if err != nil {
			t.Fatalf("MaxCycleLen(%q): %v", c.band, err)
		}
		if got != c.want {
			t.Errorf("MaxCycleLen(%q) = %v, want %v", c.band, got, c.want)
		}
	}
}

func TestMaxCycleLenUnknownBand(t *testing.T) {
	_, err := MaxCycleLen("ka")
	if err == nil {
		t.Fatal("expected error for unknown band")
	}
	var ub *UnknownBandError
	if !errors.As(err, &ub) {
		t.Fatalf("expected UnknownBandError, got %T", err)
	}
	if ub.Band != "ka" {
		t.Errorf("error carries band %q, want %q", ub.Band, "ka")
	}
}
