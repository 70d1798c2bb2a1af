package noisediode

import (
	"fmt"
	"strings"
)

// Antenna selection sentinels for Setup.Antennas. Anything else is read
// as a comma-separated list of receptor names.
const (
	AntennasAll   = "all"
	AntennasCycle = "cycle"
)

// Setup describes a repeating noise-diode duty-cycle pattern: which
// antennas run it, the repeat period, and the on fraction of each cycle.
type Setup struct {
	Antennas string  `yaml:"antennas"`
	CycleLen float64 `yaml:"cycle_len"`
	OnFrac   float64 `yaml:"on_frac"`
}

// Validate checks field ranges before any hardware is touched.
func (s Setup) Validate() error {
	if strings.TrimSpace(s.Antennas) == "" {
		return fmt.Errorf("noise diode setup: no antennas selected")
	}
	if s.CycleLen <= 0 {
		return fmt.Errorf("noise diode setup: cycle length %v must be positive", s.CycleLen)
	}
	if s.OnFrac < 0 || s.OnFrac > 1 {
		return fmt.Errorf("noise diode setup: on fraction %v outside [0,1]", s.OnFrac)
	}
	return nil
}

// antennaNames splits the antenna selection into individual names.
func (s Setup) antennaNames() []string {
	parts := strings.Split(s.Antennas, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
