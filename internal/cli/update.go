package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	updateIP   string
	updateAll  bool
	updateTech string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update installed IPs to their latest catalog release",
	Long: `Reinstall outdated IPs at the latest version published in the remote
catalog. Use --ip for a single IP or --all for every installed one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch {
		case updateIP != "":
			_, err := mgr.Update(cmd.Context(), updateIP, updateTech)
			return err
		case updateAll:
			sum, err := mgr.UpdateAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(sum.Results) == 0 {
				fmt.Fprintln(out, "No IPs installed yet.")
				return nil
			}
			if sum.Updated == 0 {
				fmt.Fprintln(out, "All installed IPs are up to date.")
			} else {
				fmt.Fprintf(out, "Updated %d of %d installed IPs.\n", sum.Updated, len(sum.Results))
			}
			return nil
		default:
			return errors.New("either --ip or --all is required")
		}
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateIP, "ip", "", "Update a single IP")
	updateCmd.Flags().BoolVar(&updateAll, "all", false, "Update every installed IP")
	updateCmd.Flags().StringVar(&updateTech, "technology", "sky130", "Target technology")
	rootCmd.AddCommand(updateCmd)
}
