package cli

import (
	"github.com/spf13/cobra"
)

var (
	installDepIPRoot    string
	installDepFile      string
	installDepOverwrite bool
)

var installDepCmd = &cobra.Command{
	Use:   "install-dep",
	Short: "Install every IP listed in the dependencies file",
	Long: `Read the project's dependencies file and install each IP it lists at the
recorded version. The file itself is never modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mgr.InstallDeps(cmd.Context(), resolveIPRoot(installDepIPRoot),
			installDepFile, installDepOverwrite)
	},
}

func init() {
	installDepCmd.Flags().StringVar(&installDepIPRoot, "ip-root", "", "Directory to install IPs into (default $IP_ROOT or ~/.ipm)")
	installDepCmd.Flags().StringVar(&installDepFile, "dep-file", "", "Directory holding the dependencies file (default the IP root)")
	installDepCmd.Flags().BoolVar(&installDepOverwrite, "overwrite", false, "Reinstall IPs whose directories already exist")
	rootCmd.AddCommand(installDepCmd)
}
