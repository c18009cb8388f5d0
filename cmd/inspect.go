package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/ctransposer/file"
	"github.com/jsphweid/ctransposer/midi"
	"github.com/jsphweid/ctransposer/song"
	"github.com/jsphweid/ctransposer/util"
	"github.com/spf13/cobra"
)

var inspectEncoding string

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectEncoding, "encoding", "", "charset of the song file, e.g. latin1 (default utf-8)")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Shows the chords found in a song",
	Long: `Lists every chord line with its chords, columns and difficulty, then the
difficulty of the song in each key. Given a .mid file it lists the notes of
each chord instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.HasSuffix(strings.ToLower(args[0]), ".mid") {
			return inspectMidi(cmd.OutOrStdout(), args[0])
		}
		return inspect(cmd.OutOrStdout(), args[0], inspectEncoding)
	},
}

func inspect(w io.Writer, path, encoding string) error {
	lines, err := file.ReadLines(path, encoding)
	if err != nil {
		return err
	}

	idx := song.ExtractChords(lines)
	for _, n := range util.SortedKeys(idx) {
		fmt.Fprintf(w, "line %d:", n+1)
		for _, o := range idx[n] {
			if o.Chord.IsValid() {
				fmt.Fprintf(w, " %s@%d(%d)", o.Chord.Text(), o.Column, o.Chord.Difficulty())
			} else {
				fmt.Fprintf(w, " %s@%d(invalid)", o.Chord.Text(), o.Column)
			}
		}
		fmt.Fprintln(w)
	}
	for _, warning := range song.Warnings(idx) {
		fmt.Fprintf(w, "warning: %v\n", warning)
	}
	if len(idx) == 0 {
		return nil
	}

	scores := song.RankKeys(idx)
	easiest := song.EasiestKey(scores)
	fmt.Fprintf(w, "chords: %d\n", song.CountChords(idx))
	for _, s := range scores {
		marker := ""
		if s == easiest {
			marker = " *"
		}
		fmt.Fprintf(w, "%+3d difficulty %d%s\n", s.Semitones, s.Difficulty, marker)
	}
	return nil
}

func inspectMidi(w io.Writer, path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	for i, notes := range midi.Chords(s) {
		fmt.Fprintf(w, "bar %d: %v\n", i+1, notes)
	}
	return nil
}
