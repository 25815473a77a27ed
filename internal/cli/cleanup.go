package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cleanupIPRoot string
	cleanupForce  bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Drop registry entries that point outside the current IP root",
	Long: `Remove registry entries whose recorded ip_root differs from the active
one. Only the registry is touched; no files are deleted.`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupIPRoot, "ip-root", "", "IP root to keep entries for (default $IP_ROOT or ~/.ipm)")
	cleanupCmd.Flags().BoolVar(&cleanupForce, "force", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	targetRoot := resolveIPRoot(cleanupIPRoot)
	candidates, err := mgr.Store.CleanupCandidates(targetRoot)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(candidates) == 0 {
		fmt.Fprintf(out, "Registry is clean; every entry points at %s\n", targetRoot)
		return nil
	}

	fmt.Fprintf(out, "Found %d entr(ies) outside %s:\n", len(candidates), targetRoot)
	for _, c := range candidates {
		fmt.Fprintf(out, "  %s (%s) at %s\n", c.Name, c.Version, c.IPRoot)
	}

	if !cleanupForce {
		fmt.Fprint(out, "? Remove these entries from the registry? (y/N) ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(out, "Cleanup cancelled.")
				return nil
			}
		}
	}

	if err := mgr.Store.RemoveEntries(candidates); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %d entr(ies).\n", len(candidates))
	return nil
}
