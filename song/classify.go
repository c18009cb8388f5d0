package song

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jsphweid/ctransposer/pitch"
)

// Section labels that look like chords to the heuristic.
var illegalChordNames = []string{"Chorus", "Bridge", "Capo"}

// IsChordLine reports whether line holds chords rather than lyrics. It looks
// at the first character of every space-separated token: chord-looking
// tokens must outnumber the others by more than two to one. This is a
// heuristic and existing song files depend on its exact thresholds.
func IsChordLine(line string) bool {
	for _, name := range illegalChordNames {
		if strings.Contains(line, name) {
			return false
		}
	}

	var chordy, nonChordy int
	for _, w := range words(line) {
		r, _ := utf8.DecodeRuneInString(w.text)
		if pitch.IsRootLetter(unicode.ToUpper(r)) {
			chordy++
		} else if r >= 33 && r <= 126 {
			nonChordy++
		}
	}
	return chordy >= 1+nonChordy*2
}
