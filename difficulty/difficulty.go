// Package difficulty scores how hard a chord is to play on a guitar, from 0
// (open shape) to 5 (awkward barre).
package difficulty

// DefaultScore is used when neither the chord, its root nor its letter is known.
const DefaultScore = 3

// Table maps a chord spelling to its difficulty.
type Table map[string]int

// Default is the built-in table. Keys use sharp spellings; a few common flat
// spellings are listed as well for direct lookups.
var Default = Table{
	// majors
	"A":  1,
	"A#": 3,
	"Bb": 3,
	"B":  5,
	"C":  0,
	"C#": 5,
	"Db": 5,
	"D":  0,
	"D#": 5,
	"Eb": 5,
	"E":  0,
	"F":  1,
	"F#": 5,
	"Gb": 5,
	"G":  0,
	"G#": 4,
	"Ab": 4,

	// minors
	"Am":  0,
	"A#m": 3,
	"Bbm": 3,
	"Bm":  2,
	"Cm":  4,
	"C#m": 5,
	"Dm":  0,
	"D#m": 5,
	"Ebm": 5,
	"Em":  0,
	"Fm":  4,
	"F#m": 5,
	"Gbm": 5,
	"Gm":  4,
	"G#m": 5,

	// sevenths
	"A7":    0,
	"B7":    1,
	"C7":    1,
	"D7":    0,
	"E7":    0,
	"F7":    3,
	"G7":    0,
	"Am7":   0,
	"Bm7":   2,
	"Dm7":   1,
	"Em7":   0,
	"Amaj7": 1,
	"Cmaj7": 0,
	"Dmaj7": 1,
	"Emaj7": 1,
	"Fmaj7": 1,
	"Gmaj7": 1,

	// suspended and added
	"Asus4": 1,
	"Csus2": 1,
	"Dsus2": 0,
	"Dsus4": 0,
	"Esus4": 0,
	"Gsus4": 1,
	"Cadd9": 0,
	"Gadd9": 1,
}

// Lookup returns the score stored for name.
func (t Table) Lookup(name string) (int, bool) {
	score, ok := t[name]
	return score, ok
}

// Lookup consults the Default table.
func Lookup(name string) (int, bool) {
	return Default.Lookup(name)
}
