package cli

import (
	"github.com/spf13/cobra"

	"github.com/chipfoundry/ipm/internal/branding"
	"github.com/chipfoundry/ipm/internal/config"
	"github.com/chipfoundry/ipm/internal/manager"
	"github.com/chipfoundry/ipm/internal/userdata"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	// settings and mgr are resolved once in the persistent pre-run and
	// shared by every command.
	settings *config.Settings
	mgr      *manager.Manager
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves verified hardware IP blocks against the remote catalog,
installs their release archives locally, and tracks what is installed where.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.NewSettings()
		if err != nil {
			return err
		}
		if err := userdata.EnsureHome(settings.Home); err != nil {
			return err
		}
		mgr = manager.New(settings)
		mgr.Out = cmd.OutOrStdout()
		return mgr.Store.Ensure()
	},
}

// resolveIPRoot prefers an explicit --ip-root flag over the configured
// default.
func resolveIPRoot(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return settings.IPRoot
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
