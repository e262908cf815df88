package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage saved adjustment presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.EnsureDefaultPreset(cmd.Context()); err != nil {
			return err
		}
		presets, err := db.ListPresets(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tADJUSTMENTS")
		fmt.Fprintln(w, "--\t----\t-----------")
		for _, p := range presets {
			fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, p.Adjustments)
		}
		return w.Flush()
	},
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	rootCmd.AddCommand(presetsCmd)
}
