package subarray

import (
	"sort"

	"ndops/internal/band"
)

// Simulated is an offline subarray: the antenna list is fixed, the
// sub-band is the default band, and dispatch never reaches hardware.
type Simulated struct {
	id       string
	antennas []Antenna
}

// NewSimulated builds an offline subarray from antenna names.
func NewSimulated(id string, names []string) *Simulated {
	s := &Simulated{id: id}
	for _, n := range names {
		s.antennas = append(s.antennas, Antenna{Name: n})
	}
	sort.Slice(s.antennas, func(i, j int) bool { return s.antennas[i].Name < s.antennas[j].Name })
	return s
}

func (s *Simulated) ID() string          { return s.id }
func (s *Simulated) Antennas() []Antenna { return s.antennas }
func (s *Simulated) Simulated() bool     { return true }

// SubBand always reports the default band when no hardware is attached.
func (s *Simulated) SubBand() (band.Band, error) {
	return band.Default, nil
}
