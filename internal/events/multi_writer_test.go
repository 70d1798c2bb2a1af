package events

import "testing"

type countWriter struct {
	rows    int
	batches int
}

func (c *countWriter) Write(Row) error { c.rows++; return nil }

type countBatchWriter struct {
	countWriter
}

func (c *countBatchWriter) WriteBatch(rows []Row) error {
	c.batches++
	c.rows += len(rows)
	return nil
}

func TestMultiWriterFansOut(t *testing.T) {
	a := &countWriter{}
	b := &countWriter{}
	mw := NewMultiWriter(a, b)
	if err := mw.Write(Row{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if a.rows != 1 || b.rows != 1 {
		t.Errorf("rows = %d/%d, want 1/1", a.rows, b.rows)
	}
}

func TestMultiWriterBatchUpgrade(t *testing.T) {
	plain := &countWriter{}
	batch := &countBatchWriter{}
	mw := NewMultiWriter(plain, batch)

	if err := mw.WriteBatch([]Row{{}, {}, {}}); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if plain.rows != 3 {
		t.Errorf("plain writer rows = %d, want 3 individual writes", plain.rows)
	}
	if batch.batches != 1 || batch.rows != 3 {
		t.Errorf("batch writer = %d batches / %d rows, want 1/3", batch.batches, batch.rows)
	}
}
