package events

import (
	"encoding/json"
	"os"
)

// FileWriter appends dispatch events to a JSONL file.
type FileWriter struct {
	f   *os.File
	enc *json.Encoder
}

// NewFileWriter opens path for appending, creating it if needed, and
// returns a FileWriter.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileWriter{f: f, enc: json.NewEncoder(f)}, nil
}

// Write logs a single event row.
func (w *FileWriter) Write(row Row) error {
	return w.enc.Encode(row)
}

// WriteBatch logs multiple event rows.
func (w *FileWriter) WriteBatch(rows []Row) error {
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *FileWriter) Close() error {
	return w.f.Close()
}
