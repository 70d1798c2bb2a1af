package main

import (
	"log/slog"
	"os"

	"ndops/internal/config"
	"ndops/internal/events"
)

// newEventsWriter sets up the dispatch-event sinks based on flags, env
// vars and the observation config. It returns the writer and a cleanup
// function to close any resources.
func newEventsWriter(cfg *config.Config, printOnly bool, logger *slog.Logger) (events.Writer, func(), error) {
	cleanup := func() {}

	var base events.Writer
	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		base = &events.StdoutWriter{}
	} else {
		endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
		database := os.Getenv("GREPTIMEDB_DB")
		if database == "" {
			database = "public"
		}
		gw, err := events.NewGreptimeWriter(endpoint, database, logger)
		if err != nil {
			return nil, nil, err
		}
		base = gw
	}

	if cfg.Events.LogFile == "" {
		return base, cleanup, nil
	}
	fw, err := events.NewFileWriter(cfg.Events.LogFile)
	if err != nil {
		return nil, nil, err
	}
	cleanup = func() { fw.Close() }
	return events.NewMultiWriter(base, fw), cleanup, nil
}
