package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var infoTech string

var infoCmd = &cobra.Command{
	Use:   "info <ip>",
	Short: "Show catalog details for an IP",
	Long:  `Print an IP's catalog record and every release it has published.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := mgr.Catalog.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		ip, err := cat.Find(args[0], infoTech)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:        %s\n", ip.Name)
		if ip.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", ip.Description)
		}
		fmt.Fprintf(out, "Repository:  %s\n", ip.Repo)
		fmt.Fprintf(out, "Author:      %s <%s>\n", ip.Author, ip.Email)
		fmt.Fprintf(out, "Category:    %s\n", ip.Category)
		if ip.Technology != "" {
			fmt.Fprintf(out, "Technology:  %s\n", ip.Technology)
		}
		fmt.Fprintf(out, "License:     %s\n", ip.License)
		if len(ip.Tags) > 0 {
			fmt.Fprintf(out, "Tags:        %s\n", strings.Join(ip.Tags, ", "))
		}

		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "VERSION\tDATE\tMATURITY\tTYPE\tDRAFT")
		for _, r := range ip.Releases {
			draft := ""
			if r.Draft {
				draft = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Version, r.Date, r.Maturity, r.Type, draft)
		}
		return w.Flush()
	},
}

func init() {
	infoCmd.Flags().StringVar(&infoTech, "technology", "sky130", "Target technology")
	rootCmd.AddCommand(infoCmd)
}
