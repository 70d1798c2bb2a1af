// Noise-diode trigger synchronization across the digitisers of a subarray.
package noisediode

import (
	"fmt"
	"math"
	"time"
)

// Timestamp is an absolute instant as floating-point seconds since the
// Unix epoch. Hardware trigger commands carry this representation on the
// wire; float64 keeps sub-microsecond resolution at current epoch
// magnitudes, which is well inside digitiser setup tolerances.
type Timestamp float64

// FromTime converts a time.Time.
func FromTime(t time.Time) Timestamp {
	return Timestamp(float64(t.UnixNano()) / 1e9)
}

// Time converts back to a time.Time, keeping sub-second precision.
func (t Timestamp) Time() time.Time {
	sec := math.Floor(float64(t))
	return time.Unix(int64(sec), int64((float64(t)-sec)*1e9))
}

// Add offsets the timestamp by a number of seconds.
func (t Timestamp) Add(seconds float64) Timestamp {
	return t + Timestamp(seconds)
}

// Sub returns t - o in seconds.
func (t Timestamp) Sub(o Timestamp) float64 {
	return float64(t - o)
}

// String renders the epoch value together with a readable instant.
func (t Timestamp) String() string {
	return fmt.Sprintf("%.3f (%s)", float64(t), t.Time().UTC().Format(time.RFC3339Nano))
}
