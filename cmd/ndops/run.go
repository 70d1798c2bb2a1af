package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ndops/internal/admin"
	"ndops/internal/config"
	"ndops/internal/noisediode"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the noise-diode plan of the observation config",
	Long:  "run executes the configured noise-diode sequence: an optional duty-cycle pattern, an optional timed trigger before the target, and an optional switch-off afterwards.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer s.cleanup()

		if s.cfg.AdminAddr != "" {
			srv := admin.NewServer(s.ctl.Subarray(), s.log)
			go func() {
				if err := srv.Start(ctx, s.cfg.AdminAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("admin server", "err", err)
				}
			}()
			s.log.Info("admin server listening", "addr", s.cfg.AdminAddr)
		}

		if err := runPlan(ctx, s.ctl, s.cfg.NoiseDiode, s.log); err != nil {
			return err
		}
		return ctx.Err()
	},
}

// runPlan executes the noise-diode steps of an observation in order.
// Pattern and trigger are independent: a config may program a slow
// background duty cycle and still fire the diode before the target.
func runPlan(ctx context.Context, ctl *noisediode.Controller, nd config.NoiseDiodeConfig, log *slog.Logger) error {
	ran := false
	if nd.Setup != nil {
		if err := ctl.Pattern(ctx, *nd.Setup, nd.LeadTime); err != nil {
			return err
		}
		ran = true
	}
	if nd.Trigger > 0 {
		if err := ctl.Trigger(ctx, nd.Trigger, nd.LeadTime); err != nil {
			return err
		}
		ran = true
	}
	if !ran {
		log.Info("no noise-diode plan in config, nothing to do")
	}
	if nd.SwitchOff {
		actual := ctl.Off(ctx, 0, nd.LeadTime)
		log.Info("noise diode off", "subarray", ctl.Subarray().ID(), "timestamp", actual)
	}
	return nil
}
