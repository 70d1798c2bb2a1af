// Subarray access layer: the antennas allocated to an observation and
// the per-antenna digitiser control handles.
package subarray

import (
	"context"

	"ndops/internal/band"
	"ndops/internal/katcp"
)

// Digitiser is the single control operation the noise-diode layer needs
// from an antenna: arm the noise-source trigger with a start timestamp,
// an on fraction, and a cycle length (both in seconds).
type Digitiser interface {
	NoiseSource(ctx context.Context, timestamp, onFrac, cycleLen float64) (katcp.Message, []katcp.Message, error)
}

// Antenna pairs a receptor name with its digitiser handle.
type Antenna struct {
	Name string
	Dig  Digitiser
}

// Context exposes the subarray capabilities consumed by the noise-diode
// layer. Two variants exist: Live (KATCP-backed) and Simulated.
type Context interface {
	// ID names the subarray, used for log and event correlation.
	ID() string
	// Antennas returns the receptors allocated to this subarray.
	Antennas() []Antenna
	// SubBand reports the currently selected receiver sub-band.
	SubBand() (band.Band, error)
	// Simulated reports whether dispatch is log-only (no hardware).
	Simulated() bool
}

// Names returns the antenna names of sub in their stored order.
func Names(sub Context) []string {
	ants := sub.Antennas()
	names := make([]string, 0, len(ants))
	for _, a := range ants {
		names = append(names, a.Name)
	}
	return names
}

// Lookup finds an antenna by name.
func Lookup(sub Context, name string) (Antenna, bool) {
	for _, a := range sub.Antennas() {
		if a.Name == name {
			return a, true
		}
	}
	return Antenna{}, false
}
