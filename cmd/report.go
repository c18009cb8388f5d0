package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jsphweid/ctransposer/db"
	"github.com/jsphweid/ctransposer/file"
	"github.com/spf13/cobra"
)

var reportEncoding string

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportEncoding, "encoding", "", "charset of the song file, e.g. latin1 (default utf-8)")
}

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Lists the recorded transpositions of a song",
	Long: `Lists the difficulty reports saved with --record for a song. Songs are
matched by content, so renamed copies share their reports.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.Open(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return report(cmd.Context(), cmd.OutOrStdout(), store, args[0], reportEncoding)
	},
}

func report(ctx context.Context, w io.Writer, store db.Store, path, encoding string) error {
	lines, err := file.ReadLines(path, encoding)
	if err != nil {
		return err
	}

	reports, err := store.GetReports(ctx, file.Digest(lines))
	if errors.Is(err, db.ErrNotFound) {
		fmt.Fprintf(w, "no reports for %s\n", path)
		return nil
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEMITONES\tBEFORE\tAFTER\tCHORDS\tNAME\tRECORDED")
	for _, r := range reports {
		fmt.Fprintf(tw, "%+d\t%d\t%d\t%d\t%s\t%s\n",
			r.Semitones, r.DifficultyBefore, r.DifficultyAfter, r.Chords, r.Name, r.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
