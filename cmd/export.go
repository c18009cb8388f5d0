package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jsphweid/ctransposer/constants"
	"github.com/jsphweid/ctransposer/file"
	"github.com/jsphweid/ctransposer/logging"
	"github.com/jsphweid/ctransposer/midi"
	"github.com/jsphweid/ctransposer/song"
	"github.com/spf13/cobra"
)

type ExportOptions struct {
	Semitones int
	Auto      bool
	BPM       float64
	Encoding  string
	// Out defaults to the transposed song name with a .mid extension.
	Out string
}

var exportOpts ExportOptions

func init() {
	rootCmd.AddCommand(exportCmd)
	flags := exportCmd.Flags()
	flags.IntVarP(&exportOpts.Semitones, "semitones", "s", 0, "positive or negative semitones to transpose by")
	flags.BoolVarP(&exportOpts.Auto, "auto", "a", false, "export in the easiest key, ignoring --semitones")
	flags.Float64Var(&exportOpts.BPM, "bpm", constants.DefaultBPM, "tempo of the exported progression")
	flags.StringVar(&exportOpts.Encoding, "encoding", "", "charset of the song file, e.g. latin1 (default utf-8)")
	flags.StringVarP(&exportOpts.Out, "out", "o", "", "where to write the midi file")
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Exports a song's chords as a midi file",
	Long: `Writes every chord of the (optionally transposed) song as one bar of block
chord in a standard midi file. Invalid chords become a bar of rest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := ExportFile(args[0], exportOpts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func midiName(path string, semitones int) string {
	name := strings.TrimSuffix(file.TransposedName(path, semitones), ".xz")
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".mid"
}

// ExportFile writes the chords of the song at path as midi and returns where.
func ExportFile(path string, opts ExportOptions) (string, error) {
	if opts.BPM <= 0 {
		return "", fmt.Errorf("bpm must be positive, got %v", opts.BPM)
	}
	lines, err := file.ReadLines(path, opts.Encoding)
	if err != nil {
		return "", err
	}

	idx := song.ExtractChords(lines)
	semitones := opts.Semitones
	if opts.Auto {
		semitones = song.EasiestKey(song.RankKeys(idx)).Semitones
	}
	song.TransposeChords(idx, semitones)

	out := opts.Out
	if out == "" {
		out = midiName(path, semitones)
	}
	if err := midi.WriteMidiFile(out, midi.Progression(idx, opts.BPM)); err != nil {
		return "", err
	}
	logging.Info("exported progression", "song", path, "path", out, "chords", song.CountChords(idx), "semitones", semitones)
	return out, nil
}
