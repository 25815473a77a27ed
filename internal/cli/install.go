package cli

import (
	"github.com/spf13/cobra"
)

var (
	installVersion   string
	installTech      string
	installIPRoot    string
	installDepsFile  string
	installOverwrite bool
)

var installCmd = &cobra.Command{
	Use:   "install <ip>",
	Short: "Install an IP from the remote catalog",
	Long: `Resolve an IP against the remote catalog, download its release archive and
place it under the IP root. The install is recorded in the local registry and
in the project's dependencies file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mgr.Install(cmd.Context(), args[0], installVersion, installTech,
			resolveIPRoot(installIPRoot), installDepsFile, installOverwrite)
	},
}

func init() {
	installCmd.Flags().StringVar(&installVersion, "version", "", "Install a specific release instead of the latest")
	installCmd.Flags().StringVar(&installTech, "technology", "sky130", "Target technology")
	installCmd.Flags().StringVar(&installIPRoot, "ip-root", "", "Directory to install IPs into (default $IP_ROOT or ~/.ipm)")
	installCmd.Flags().StringVar(&installDepsFile, "deps-file", "", "Directory holding the dependencies file (default the IP root)")
	installCmd.Flags().BoolVar(&installOverwrite, "overwrite", false, "Reinstall even if the IP directory already exists")
	rootCmd.AddCommand(installCmd)
}
