package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"camera-studio/internal/store"
)

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Inspect recorded photos",
}

var photosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded photos, optionally only those with --faces faces",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		var recs []store.PhotoRecord
		if cmd.Flags().Changed("faces") {
			faces, _ := cmd.Flags().GetInt("faces")
			recs = db.PhotosByFaceCount(faces)
		} else {
			for _, n := range db.FaceCounts() {
				recs = append(recs, db.PhotosByFaceCount(n)...)
			}
		}

		if len(recs) == 0 {
			fmt.Println("No photos found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tFACES\tNAME\tPATH")
		fmt.Fprintln(w, "--\t-----\t----\t----")
		for _, rec := range recs {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", rec.ID, rec.Faces, rec.Name, rec.Path)
		}
		return w.Flush()
	},
}

func init() {
	photosListCmd.Flags().Int("faces", 0, "Only list photos with exactly this many faces")
	photosCmd.AddCommand(photosListCmd)
	rootCmd.AddCommand(photosCmd)
}
