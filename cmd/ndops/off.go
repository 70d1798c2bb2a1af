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
	offTimestamp float64
	offLeadTime  float64
)

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Switch the noise diodes of all antennas off",
	Long:  "off schedules the noise diode on every antenna to stop radiating and returns without waiting.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer s.cleanup()

		actual := s.ctl.Off(ctx, noisediode.Timestamp(offTimestamp), s.leadTime(offLeadTime))
		s.log.Info("noise diode off", "subarray", s.cfg.Subarray.ID, "timestamp", actual)
		return nil
	},
}

func init() {
	offCmd.Flags().Float64Var(&offTimestamp, "timestamp", 0, "Epoch seconds to switch off (0 schedules lead-time ahead)")
	offCmd.Flags().Float64Var(&offLeadTime, "lead-time", 0, "Lead time in seconds before the switch takes effect")
}
