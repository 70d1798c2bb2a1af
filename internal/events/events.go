// Dispatch event records and the writers that sink them.
package events

import (
	"os"
	"time"
)

// Dispatch outcome values for Row.Status.
const (
	StatusOK        = "ok"
	StatusSkipped   = "skipped"
	StatusNoAck     = "no_ack"
	StatusSimulated = "simulated"
)

// Row is one noise-diode dispatch event: a single trigger command sent
// to (or simulated for) one antenna.
type Row struct {
	SubarrayID string    `json:"subarray_id"` // TAG
	RunID      string    `json:"run_id"`      // TAG
	Operation  string    `json:"operation"`   // TAG
	Antenna    string    `json:"antenna"`     // TAG
	Requested  float64   `json:"requested"`   // FIELD, epoch seconds
	Actual     float64   `json:"actual"`      // FIELD, epoch seconds
	OnFrac     float64   `json:"on_frac"`     // FIELD
	CycleLen   float64   `json:"cycle_len"`   // FIELD
	Status     string    `json:"status"`      // FIELD
	Timestamp  time.Time `json:"ts"`          // TIME INDEX
}

// TableName holds the table used when writing to GreptimeDB. It defaults
// to "nd_dispatch" but can be overridden via the GREPTIMEDB_TABLE
// environment variable.
var TableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "nd_dispatch"
}()

// Writer is an interface to support different event sinks.
type Writer interface {
	Write(Row) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]Row) error
}
