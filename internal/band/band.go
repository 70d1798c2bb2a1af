// Receiver band parameters for digitiser noise-source patterns.
package band

import "fmt"

// Band identifies a receiver frequency sub-band.
type Band string

// Known sub-bands.
const (
	L    Band = "l"
	UHF  Band = "u"
	S    Band = "s"
	X    Band = "x"
)

// Default is the band assumed when no live sub-band sensor is available.
const Default = L

// Maximum repeat period the digitiser pattern generator accepts, per band.
var maxCycleLen = map[Band]float64{
	L:   20,
	UHF: 20,
	S:   10,
	X:   10,
}

// UnknownBandError reports a sub-band identifier with no configured
// cycle-length ceiling. Operating without a ceiling risks commanding an
// invalid hardware state, so callers must treat this as fatal.
type UnknownBandError struct {
	Band Band
}

func (e *UnknownBandError) Error() string {
	return fmt.Sprintf("unknown sub-band %q: no maximum cycle length configured", string(e.Band))
}

// MaxCycleLen returns the maximum noise-source cycle length in seconds
// for the given sub-band.
func MaxCycleLen(b Band) (float64, error) {
	m, ok := maxCycleLen[b]
	if !ok {
		return 0, &UnknownBandError{Band: b}
	}
	return m, nil
}
