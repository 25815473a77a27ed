package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var outputIPRoot string

var outputCmd = &cobra.Command{
	Use:   "output",
	Short: "Print the resolved IP root directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "Your IPs will be installed at %s\n", resolveIPRoot(outputIPRoot))
		return nil
	},
}

func init() {
	outputCmd.Flags().StringVar(&outputIPRoot, "ip-root", "", "IP root to report (default $IP_ROOT or ~/.ipm)")
	rootCmd.AddCommand(outputCmd)
}
