package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ndops/internal/noisediode"
)

var (
	onTimestamp float64
	onLeadTime  float64
)

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Switch the noise diodes of all antennas on",
	Long:  "on fires the noise diode on every antenna of the subarray and blocks until the source is radiating.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer s.cleanup()

		actual := s.ctl.On(ctx, noisediode.Timestamp(onTimestamp), s.leadTime(onLeadTime))
		s.log.Info("noise diode on", "subarray", s.cfg.Subarray.ID, "timestamp", actual)
		return nil
	},
}

func init() {
	onCmd.Flags().Float64Var(&onTimestamp, "timestamp", 0, "Epoch seconds to switch on (0 schedules lead-time ahead)")
	onCmd.Flags().Float64Var(&onLeadTime, "lead-time", 0, "Lead time in seconds before the switch takes effect")
}
