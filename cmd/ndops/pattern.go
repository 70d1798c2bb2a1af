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
	patternAntennas string
	patternCycleLen float64
	patternOnFrac   float64
	patternLeadTime float64
)

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Run a periodic noise-diode duty cycle",
	Long:  "pattern programs a repeating on/off duty cycle on the selected antennas, either simultaneously or staggered one cycle apart.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer s.cleanup()

		setup := noisediode.Setup{
			Antennas: patternAntennas,
			CycleLen: patternCycleLen,
			OnFrac:   patternOnFrac,
		}
		return s.ctl.Pattern(ctx, setup, s.leadTime(patternLeadTime))
	},
}

func init() {
	patternCmd.Flags().StringVar(&patternAntennas, "antennas", noisediode.AntennasAll, "Antenna selection: all, cycle, or a comma-separated list")
	patternCmd.Flags().Float64Var(&patternCycleLen, "cycle-len", 0, "Duty-cycle period in seconds")
	patternCmd.Flags().Float64Var(&patternOnFrac, "on-frac", 0.5, "Fraction of each cycle the diode radiates")
	patternCmd.Flags().Float64Var(&patternLeadTime, "lead-time", 0, "Lead time in seconds before the pattern starts")
	_ = patternCmd.MarkFlagRequired("cycle-len")
}
