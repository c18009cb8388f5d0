package song

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jsphweid/ctransposer/chord"
	"github.com/jsphweid/ctransposer/model"
	"github.com/jsphweid/ctransposer/pitch"
	"github.com/jsphweid/ctransposer/util"
)

var ErrNoChords = errors.New("could not find any chords in song")

// SplitChordLine finds the chords on a chord line together with the column
// where each one starts. Within a token the chord starts at the first note
// letter and runs to the end of the token.
func SplitChordLine(line string) []model.ChordOccurrence {
	var res []model.ChordOccurrence
	for _, w := range words(line) {
		offset := 0
		for i, r := range w.text {
			if pitch.IsRootLetter(r) {
				res = append(res, model.ChordOccurrence{
					Chord:  chord.Parse(w.text[i:]),
					Column: w.column + offset,
					Width:  utf8.RuneCountInString(w.text[i:]),
				})
				break
			}
			offset++
		}
	}
	return res
}

// ExtractChords indexes the chords of every chord line in lines. The index
// is empty when the song has no chord lines.
func ExtractChords(lines []string) model.ChordIndex {
	idx := make(model.ChordIndex)
	for n, line := range lines {
		if IsChordLine(line) {
			idx[n] = SplitChordLine(line)
		}
	}
	return idx
}

// TransposeChords shifts every chord in idx in place.
func TransposeChords(idx model.ChordIndex, semitones int) {
	if semitones == 0 {
		return
	}
	for _, occurrences := range idx {
		for _, o := range occurrences {
			o.Chord.Transpose(semitones)
		}
	}
}

// Reassemble writes the chords of idx back over a copy of lines, each at the
// column its original text started. Columns of the original text that the
// new spelling no longer reaches are blanked; other columns are left alone.
// A chord spelled longer than the original overwrites what follows it.
func Reassemble(lines []string, idx model.ChordIndex) []string {
	return ReassembleWith(lines, idx, false)
}

// ReassembleWith is Reassemble with a choice of flat or sharp spellings.
func ReassembleWith(lines []string, idx model.ChordIndex, flats bool) []string {
	res := make([]string, len(lines))
	copy(res, lines)

	for _, n := range util.SortedKeys(idx) {
		if n < 0 || n >= len(res) {
			continue
		}
		line := []rune(res[n])
		for _, o := range idx[n] {
			text := []rune(o.Chord.Spell(flats))
			for offset, r := range text {
				pos := o.Column + offset
				if pos < len(line) {
					line[pos] = r
				} else {
					line = append(line, r)
				}
			}
			for pos := o.Column + len(text); pos < o.Column+o.Width && pos < len(line); pos++ {
				line[pos] = ' '
			}
		}
		res[n] = string(line)
	}
	return res
}

// TotalDifficulty sums the difficulty of every chord occurrence. Totals are
// only comparable between transpositions of the same song.
func TotalDifficulty(idx model.ChordIndex) int {
	total := 0
	for _, occurrences := range idx {
		for _, o := range occurrences {
			total += o.Chord.Difficulty()
		}
	}
	return total
}

// CountChords returns the number of chord occurrences in idx.
func CountChords(idx model.ChordIndex) int {
	counts := make([]int, 0, len(idx))
	for _, occurrences := range idx {
		counts = append(counts, len(occurrences))
	}
	return util.Sum(counts)
}

// CloneIndex deep copies idx so it can be transposed independently.
func CloneIndex(idx model.ChordIndex) model.ChordIndex {
	clone := make(model.ChordIndex, len(idx))
	for n, occurrences := range idx {
		copied := make([]model.ChordOccurrence, len(occurrences))
		for i, o := range occurrences {
			copied[i] = model.ChordOccurrence{Chord: o.Chord.Clone(), Column: o.Column, Width: o.Width}
		}
		clone[n] = copied
	}
	return clone
}

// Warnings lists the recoverable problems in idx: invalid chords, or no
// chords at all.
func Warnings(idx model.ChordIndex) []error {
	if len(idx) == 0 {
		return []error{ErrNoChords}
	}
	var res []error
	for _, n := range util.SortedKeys(idx) {
		for _, o := range idx[n] {
			for c := o.Chord; c != nil; c = c.SubChord() {
				if err := c.Err(); err != nil {
					res = append(res, fmt.Errorf("line %d column %d: %w", n+1, o.Column+1, err))
					break
				}
			}
		}
	}
	return res
}

type Options struct {
	// Flats spells roots with flats instead of sharps.
	Flats bool
}

// Result is a transposed song plus what was learned along the way.
type Result struct {
	Lines            []string
	Semitones        int
	DifficultyBefore int
	DifficultyAfter  int
	Chords           int
	Warnings         []error
}

// Transpose moves every chord in lines by semitones. lines is not modified.
// When no chords are found the lines come back unchanged with ErrNoChords
// among the warnings.
func Transpose(lines []string, semitones int, opts Options) Result {
	idx := ExtractChords(lines)
	res := Result{
		Semitones:        semitones,
		DifficultyBefore: TotalDifficulty(idx),
		Chords:           CountChords(idx),
		Warnings:         Warnings(idx),
	}
	TransposeChords(idx, semitones)
	res.DifficultyAfter = TotalDifficulty(idx)
	res.Lines = ReassembleWith(lines, idx, opts.Flats)
	return res
}
