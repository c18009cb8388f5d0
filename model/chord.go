package model

import "github.com/jsphweid/ctransposer/chord"

// ChordOccurrence is a chord and the zero-based column where its text began
// in the source line. Width is the rune length of that original text.
type ChordOccurrence struct {
	Chord  *chord.Chord
	Column int
	Width  int
}

// ChordIndex maps a line number to the chords found on that line, in column
// order. Only chord lines are present.
type ChordIndex = map[int][]ChordOccurrence
