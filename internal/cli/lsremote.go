package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	lsRemoteCategory string
	lsRemoteTech     string
	lsRemoteJSON     bool
)

var lsRemoteCmd = &cobra.Command{
	Use:   "ls-remote",
	Short: "List IPs available in the remote catalog",
	Long: `Fetch the remote catalog and list every IP with its latest published
release. Draft releases are not counted as latest.`,
	RunE: runLsRemote,
}

func init() {
	lsRemoteCmd.Flags().StringVar(&lsRemoteCategory, "category", "", "Filter by category")
	lsRemoteCmd.Flags().StringVar(&lsRemoteTech, "technology", "", "Filter by technology")
	lsRemoteCmd.Flags().BoolVar(&lsRemoteJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(lsRemoteCmd)
}

// remoteEntry is one catalog row for display.
type remoteEntry struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Technology string `json:"technology,omitempty"`
	Version    string `json:"version"`
	Maturity   string `json:"maturity,omitempty"`
	Repo       string `json:"repo"`
}

func runLsRemote(cmd *cobra.Command, args []string) error {
	cat, err := mgr.Catalog.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	var entries []remoteEntry
	for i := range cat.IPs {
		ip := &cat.IPs[i]
		if lsRemoteCategory != "" && ip.Category != lsRemoteCategory {
			continue
		}
		if lsRemoteTech != "" && ip.Technology != "" && ip.Technology != lsRemoteTech {
			continue
		}
		rel, ok := ip.LatestRelease()
		if !ok {
			continue
		}
		entries = append(entries, remoteEntry{
			Name:       ip.Name,
			Category:   ip.Category,
			Technology: ip.Technology,
			Version:    rel.Version,
			Maturity:   rel.Maturity,
			Repo:       ip.Repo,
		})
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No IPs matched.")
		return nil
	}

	if lsRemoteJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tTECHNOLOGY\tLATEST\tMATURITY")
	for _, e := range entries {
		tech := e.Technology
		if tech == "" {
			tech = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Category, tech, e.Version, e.Maturity)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal: %d IP(s)\n", len(entries))
	return nil
}
