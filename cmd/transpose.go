package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jsphweid/ctransposer/db"
	"github.com/jsphweid/ctransposer/file"
	"github.com/jsphweid/ctransposer/logging"
	"github.com/jsphweid/ctransposer/song"
	"github.com/spf13/cobra"
)

type TransposeOptions struct {
	Semitones int
	Auto      bool
	Flats     bool
	Encoding  string
	// Out defaults to the input name with the shift added, e.g. song[+2].txt.
	Out    string
	Record bool
}

var transposeOpts TransposeOptions

func init() {
	rootCmd.AddCommand(transposeCmd)
	flags := transposeCmd.Flags()
	flags.IntVarP(&transposeOpts.Semitones, "semitones", "s", 0, "positive or negative semitones to transpose by")
	flags.BoolVarP(&transposeOpts.Auto, "auto", "a", false, "pick the easiest key to play with open chords, ignoring --semitones")
	flags.BoolVar(&transposeOpts.Flats, "flats", false, "spell roots with flats instead of sharps")
	flags.StringVar(&transposeOpts.Encoding, "encoding", "", "charset of the song file, e.g. latin1 (default utf-8)")
	flags.StringVarP(&transposeOpts.Out, "out", "o", "", "where to write the transposed song")
	flags.BoolVar(&transposeOpts.Record, "record", false, "save a difficulty report for this transposition")
}

var transposeCmd = &cobra.Command{
	Use:   "transpose <file>",
	Short: "Transposes a song file",
	Long: `Transposes every chord line in a song file and writes the result next to it
as name[+N].ext. Files ending in .xz are read and written compressed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _, err := TransposeFile(cmd.Context(), args[0], transposeOpts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// TransposeFile transposes the song at path and returns where it was written.
func TransposeFile(ctx context.Context, path string, opts TransposeOptions) (string, song.Result, error) {
	lines, err := file.ReadLines(path, opts.Encoding)
	if err != nil {
		return "", song.Result{}, err
	}

	res := transposeLines(lines, opts.Semitones, opts.Auto, song.Options{Flats: opts.Flats})
	logging.Warnings(ctx, path, res.Warnings)
	logging.Info("transposed song",
		"song", path,
		"semitones", res.Semitones,
		"chords", res.Chords,
		"difficulty_before", res.DifficultyBefore,
		"difficulty_after", res.DifficultyAfter,
	)

	out := opts.Out
	if out == "" {
		out = file.TransposedName(path, res.Semitones)
	}
	if err := file.WriteLines(out, res.Lines); err != nil {
		return "", res, err
	}
	logging.Debug("wrote transposed song", "path", out, "lines", len(res.Lines))

	if opts.Record {
		store, err := db.Open(ctx)
		if err != nil {
			return out, res, err
		}
		defer store.Close()
		if err := store.SaveReport(ctx, newReport(filepath.Base(path), file.Digest(lines), res)); err != nil {
			return out, res, err
		}
	}
	return out, res, nil
}
