package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ndops/internal/subarray"
)

var discoverTimeout time.Duration

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Browse mDNS for digitiser control endpoints",
	Long:  "discover lists katcp control endpoints announced on the local network, in a form that can be pasted into the observation config.",
	RunE: func(cmd *cobra.Command, args []string) error {
		eps, err := subarray.Discover(context.Background(), discoverTimeout)
		if err != nil {
			return err
		}
		if len(eps) == 0 {
			fmt.Println("no digitiser endpoints found")
			return nil
		}
		for _, ep := range eps {
			fmt.Printf("  - name: %s\n    addr: %s\n", ep.Name, ep.Addr)
		}
		return nil
	},
}

func init() {
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", 5*time.Second, "How long to browse for announcements")
}
