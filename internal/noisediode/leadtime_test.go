package noisediode

import "testing"

func TestResolveLeadTime(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, DefaultLeadTime},
		{-3, DefaultLeadTime},
		{0.5, 0.5},
		{5, 5},
		{120, 120},
	}
	for _, c := range cases {
		if got := ResolveLeadTime(c.in); got != c.want {
			t.Errorf("ResolveLeadTime(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := Timestamp(1234567890.123456)
	back := FromTime(ts.Time())
	if d := back.Sub(ts); d > 1e-6 || d < -1e-6 {
		t.Errorf("round trip drifted by %v seconds", d)
	}
}

func TestTimestampAddSub(t *testing.T) {
	ts := Timestamp(1000)
	if got := ts.Add(2.5); got != 1002.5 {
		t.Errorf("Add = %v", got)
	}
	if got := ts.Add(2.5).Sub(ts); got != 2.5 {
		t.Errorf("Sub = %v", got)
	}
}
