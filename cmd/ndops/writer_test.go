package main

import (
	"path/filepath"
	"testing"

	"ndops/internal/config"
	"ndops/internal/events"
)

func TestNewEventsWriterPrintOnly(t *testing.T) {
	w, cleanup, err := newEventsWriter(&config.Config{}, true, nil)
	if err != nil {
		t.Fatalf("newEventsWriter returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*events.StdoutWriter); !ok {
		t.Fatalf("expected *events.StdoutWriter, got %T", w)
	}
}

func TestNewEventsWriterGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	w, cleanup, err := newEventsWriter(&config.Config{}, false, nil)
	if err != nil {
		t.Fatalf("newEventsWriter returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*events.StdoutWriter); !ok {
		t.Fatalf("expected *events.StdoutWriter, got %T", w)
	}
}

func TestNewEventsWriterLogFile(t *testing.T) {
	cfg := &config.Config{}
	cfg.Events.LogFile = filepath.Join(t.TempDir(), "dispatch.jsonl")
	w, cleanup, err := newEventsWriter(cfg, true, nil)
	if err != nil {
		t.Fatalf("newEventsWriter returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*events.MultiWriter); !ok {
		t.Fatalf("expected *events.MultiWriter, got %T", w)
	}
}
