package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	triggerDuration float64
	triggerLeadTime float64
)

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Fire the noise diodes for a fixed duration",
	Long:  "trigger switches the noise diodes on for the requested number of seconds and off again, picking a duty-cycle pattern when the window is shorter than the scheduling lead time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer s.cleanup()

		return s.ctl.Trigger(ctx, triggerDuration, s.leadTime(triggerLeadTime))
	},
}

func init() {
	triggerCmd.Flags().Float64Var(&triggerDuration, "duration", 0, "Seconds the noise diode should radiate")
	triggerCmd.Flags().Float64Var(&triggerLeadTime, "lead-time", 0, "Lead time in seconds before the switch takes effect")
	_ = triggerCmd.MarkFlagRequired("duration")
}
