package main

import (
	"context"
	"log/slog"

	"ndops/internal/config"
	"ndops/internal/logging"
	"ndops/internal/noisediode"
	"ndops/internal/subarray"
)

// session bundles everything a subcommand needs to drive the noise diodes.
type session struct {
	cfg     *config.Config
	log     *slog.Logger
	ctl     *noisediode.Controller
	cleanup func()
}

// newSession loads the observation config, connects (or simulates) the
// subarray and wires the dispatch-event writers into a controller.
func newSession(ctx context.Context) (*session, error) {
	level, err := parseLevel(rootLogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)
	slog.SetDefault(logger)

	cfg, err := config.Load(rootConfigPath, rootSchemaPath)
	if err != nil {
		return nil, err
	}

	writer, wcleanup, err := newEventsWriter(cfg, rootPrintOnly, logger)
	if err != nil {
		return nil, err
	}

	var sub subarray.Context
	scleanup := func() {}
	if rootSimulated || cfg.Subarray.Simulated {
		logger.Info("simulated subarray, no digitiser connections",
			"subarray", cfg.Subarray.ID, "antennas", len(cfg.Subarray.Antennas))
		sub = subarray.NewSimulated(cfg.Subarray.ID, cfg.AntennaNames())
	} else {
		live, err := subarray.Connect(ctx, cfg.Subarray.ID, cfg.Subarray.SensorAddr, cfg.Endpoints())
		if err != nil {
			wcleanup()
			return nil, err
		}
		sub = live
		scleanup = func() { live.Close() }
	}

	return &session{
		cfg: cfg,
		log: logger,
		ctl: noisediode.NewController(sub, nil, logger, writer),
		cleanup: func() {
			scleanup()
			wcleanup()
		},
	}, nil
}

func (s *session) leadTime(flagValue float64) float64 {
	if flagValue > 0 {
		return flagValue
	}
	return s.cfg.NoiseDiode.LeadTime
}
