package pitch

// SemitonesInOctave is the size of the pitch class cycle. Indexes run 1..12.
const SemitonesInOctave = 12

// index -> {sharp, flat}; naturals repeat their only spelling
var scale = [SemitonesInOctave + 1][2]string{
	{"", ""},
	{"A", "A"},
	{"A#", "Bb"},
	{"B", "B"},
	{"C", "C"},
	{"C#", "Db"},
	{"D", "D"},
	{"D#", "Eb"},
	{"E", "E"},
	{"F", "F"},
	{"F#", "Gb"},
	{"G", "G"},
	{"G#", "Ab"},
}

var indexes = map[string]int{
	"A":  1,
	"A#": 2,
	"Bb": 2,
	"Hb": 2, // German notation
	"B":  3,
	"H":  3, // German notation
	"C":  4,
	"C#": 5,
	"Db": 5,
	"D":  6,
	"D#": 7,
	"Eb": 7,
	"E":  8,
	"F":  9,
	"F#": 10,
	"Gb": 10,
	"G":  11,
	"G#": 12,
	"Ab": 12,
}

var (
	rootLetters     = make(map[rune]bool)
	spellingLetters = make(map[rune]bool)
)

func init() {
	for _, names := range scale[1:] {
		rootLetters[rune(names[0][0])] = true
	}
	for name := range indexes {
		spellingLetters[rune(name[0])] = true
	}
}

// Index returns the semitone index (1..12) of a root spelling such as "C#", "Eb" or "H".
func Index(name string) (int, bool) {
	i, ok := indexes[name]
	return i, ok
}

// Names returns the sharp and flat spellings of index. Both are the same
// string for natural notes.
func Names(index int) (sharp string, flat string, ok bool) {
	if index < 1 || index > SemitonesInOctave {
		return "", "", false
	}
	return scale[index][0], scale[index][1], true
}

// Shift moves index by semitones, wrapping within the octave. The -1/+1
// keeps the result in 1..12 instead of 0..11.
func Shift(index, semitones int) int {
	m := (index - 1 + semitones%SemitonesInOctave) % SemitonesInOctave
	if m < 0 {
		m += SemitonesInOctave
	}
	return m + 1
}

// IsRootLetter reports whether r is one of the upper case letters A-G that
// start a scale spelling. Line scanning uses this set.
func IsRootLetter(r rune) bool {
	return rootLetters[r]
}

// IsSpellingLetter reports whether r starts any accepted root spelling,
// which also admits the German H.
func IsSpellingLetter(r rune) bool {
	return spellingLetters[r]
}

// OffsetFromC returns how many semitones index lies above C (C=0 .. B=11).
func OffsetFromC(index int) int {
	c := indexes["C"]
	return Shift(index, -(c-1)) - 1
}
