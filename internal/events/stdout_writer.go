// Writer implementation printing dispatch events to STDOUT
package events

import (
	"encoding/json"
	"fmt"
)

// StdoutWriter prints event rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// Write outputs a single event row.
func (w *StdoutWriter) Write(row Row) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple event rows.
func (w *StdoutWriter) WriteBatch(rows []Row) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}
