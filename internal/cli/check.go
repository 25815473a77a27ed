package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	checkIP   string
	checkTech string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check installed IPs for newer catalog releases",
	Long: `Compare every installed IP's version against the latest release in the
remote catalog. Pass --ip to check a single IP instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if checkIP != "" {
			res, err := mgr.Check(cmd.Context(), checkIP, checkTech)
			if err != nil {
				return err
			}
			if res.LocalVersion == res.RemoteVersion {
				fmt.Fprintf(out, "The IP %s is up to date; version %s\n", res.Name, res.LocalVersion)
			} else {
				fmt.Fprintf(out, "The IP %s has a newer version %s; run 'ipm update --ip %s'\n", res.Name, res.RemoteVersion, res.Name)
			}
			return nil
		}

		sum, err := mgr.CheckAll(cmd.Context())
		if err != nil {
			return err
		}
		if len(sum.Results) == 0 {
			fmt.Fprintln(out, "No IPs installed yet.")
			return nil
		}
		if sum.Outdated == 0 {
			fmt.Fprintln(out, "All installed IPs are up to date.")
		} else {
			fmt.Fprintf(out, "%d of %d installed IPs have updates available.\n", sum.Outdated, len(sum.Results))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkIP, "ip", "", "Check a single IP instead of all installed IPs")
	checkCmd.Flags().StringVar(&checkTech, "technology", "sky130", "Target technology")
	rootCmd.AddCommand(checkCmd)
}
