package noisediode

import (
	"fmt"

	"ndops/internal/band"
)

// CycleLengthError is the fatal precondition failure raised when a
// requested pattern period exceeds what the active sub-band's digitisers
// accept. It is returned before any dispatch happens.
type CycleLengthError struct {
	CycleLen float64
	Max      float64
	Band     band.Band
}

func (e *CycleLengthError) Error() string {
	return fmt.Sprintf("cycle length %gs exceeds the %gs maximum for sub-band %q",
		e.CycleLen, e.Max, string(e.Band))
}
