package cli

import (
	"github.com/spf13/cobra"
)

var (
	uninstallTech    string
	uninstallIPRoot  string
	uninstallDepFile string
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <ip>",
	Short: "Remove an installed IP",
	Long: `Delete an IP's directory from the IP root and drop its entries from the
local registry and the dependencies file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mgr.Uninstall(args[0], uninstallTech,
			resolveIPRoot(uninstallIPRoot), uninstallDepFile)
	},
}

func init() {
	uninstallCmd.Flags().StringVar(&uninstallTech, "technology", "sky130", "Target technology")
	uninstallCmd.Flags().StringVar(&uninstallIPRoot, "ip-root", "", "Directory the IP was installed into (default $IP_ROOT or ~/.ipm)")
	uninstallCmd.Flags().StringVar(&uninstallDepFile, "dep-file", "", "Directory holding the dependencies file (default the IP root)")
	rootCmd.AddCommand(uninstallCmd)
}
