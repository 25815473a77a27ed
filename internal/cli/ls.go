package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chipfoundry/ipm/internal/registry"
)

var (
	lsCategory string
	lsTech     string
	lsJSON     bool
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List installed IPs",
	Long:  `List every IP recorded in the local registry.`,
	RunE:  runLs,
}

func init() {
	lsCmd.Flags().StringVar(&lsCategory, "category", "", "Filter by category (analog, comm, dataconv, digital, technolgy)")
	lsCmd.Flags().StringVar(&lsTech, "technology", "", "Filter by technology")
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	all, err := mgr.Store.List()
	if err != nil {
		return err
	}

	var entries []registry.InstalledIP
	for _, e := range all {
		if lsCategory != "" && e.Category != lsCategory {
			continue
		}
		if lsTech != "" && e.Technology != lsTech {
			continue
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No IPs installed yet.")
		return nil
	}

	if lsJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tTECHNOLOGY\tVERSION\tIP ROOT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Category, e.Technology, e.Version, e.IPRoot)
	}
	return w.Flush()
}
