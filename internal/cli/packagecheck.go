package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chipfoundry/ipm/internal/precheck"
)

var (
	packageCheckName    string
	packageCheckVersion string
	packageCheckURL     string
)

var packageCheckCmd = &cobra.Command{
	Use:   "package-check",
	Short: "Validate a candidate package before submission",
	Long: `Run the pre-submission checks against a candidate package: the repository
and release tag must be reachable, the tarball must download and extract,
the metadata file must satisfy the schema, and the directory layout must
match the template for the package type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if packageCheckName == "" || packageCheckVersion == "" || packageCheckURL == "" {
			return errors.New("--name, --version and --url are all required")
		}

		checker := &precheck.Checker{
			Home:      settings.Home,
			Installer: mgr.Installer,
			Out:       cmd.OutOrStdout(),
		}
		res, err := checker.Run(cmd.Context(), packageCheckName, packageCheckVersion, packageCheckURL)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "WARNING: %s\n", w)
		}
		if !res.OK() {
			for _, f := range res.Failures {
				fmt.Fprintf(out, "FAIL: %s\n", f)
			}
			return fmt.Errorf("package %s failed %d check(s)", packageCheckName, len(res.Failures))
		}
		fmt.Fprintf(out, "Package %s %s passed all checks.\n", packageCheckName, packageCheckVersion)
		return nil
	},
}

func init() {
	packageCheckCmd.Flags().StringVar(&packageCheckName, "name", "", "Package name (must match the metadata file)")
	packageCheckCmd.Flags().StringVar(&packageCheckVersion, "version", "", "Release tag to validate")
	packageCheckCmd.Flags().StringVar(&packageCheckURL, "url", "", "Repository URL, e.g. github.com/org/repo")
	rootCmd.AddCommand(packageCheckCmd)
}
