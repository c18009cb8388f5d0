// Package chord parses, spells and transposes chord symbols such as "C#m7"
// or "G/B".
package chord

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jsphweid/ctransposer/difficulty"
	"github.com/jsphweid/ctransposer/logging"
	"github.com/jsphweid/ctransposer/pitch"
)

// SubChordSeparator splits a chord from the chord played over it, as in "C/G".
const SubChordSeparator = "/"

var (
	ErrInvalidChord = errors.New("invalid chord")
	ErrInvalidIndex = errors.New("invalid index")
	ErrNoDifficulty = errors.New("no difficulty entry")
)

// Chord is a root (semitone index plus its sharp and flat spellings), a free
// form suffix and an optional sub-chord. A Chord that failed to parse is
// still usable: it reports IsValid() == false and keeps its original text.
type Chord struct {
	index     int // 1..12, 0 when invalid
	sharpName string
	flatName  string
	suffixes  string
	sub       *Chord
	err       error
}

// Parse builds a chord from text like "Bbm7" or "C/G".
func Parse(text string) *Chord {
	text = strings.TrimSpace(text)
	c := &Chord{suffixes: text}
	if text == "" {
		c.err = fmt.Errorf("%w: empty text", ErrInvalidChord)
		return c
	}

	runes := []rune(text)
	first := unicode.ToUpper(runes[0])
	if !pitch.IsSpellingLetter(first) {
		c.err = fmt.Errorf("%w: %q does not start with a note", ErrInvalidChord, text)
		return c
	}

	name := string(first)
	rest := runes[1:]
	if len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		name += string(rest[0])
		rest = rest[1:]
	}

	index, ok := pitch.Index(name)
	if !ok {
		c.err = fmt.Errorf("%w: unknown root %q in %q", ErrInvalidChord, name, text)
		return c
	}
	c.setup(index, string(rest))
	return c
}

// New builds a chord from a semitone index (1..12) and a suffix. The suffix
// may carry a sub-chord after the separator.
func New(index int, suffixes string) *Chord {
	c := &Chord{suffixes: suffixes}
	if _, _, ok := pitch.Names(index); !ok {
		c.err = fmt.Errorf("%w: %d", ErrInvalidIndex, index)
		return c
	}
	c.setup(index, suffixes)
	return c
}

func (c *Chord) setup(index int, suffixes string) {
	c.setIndex(index)
	c.err = nil
	c.sub = nil
	if before, after, found := strings.Cut(suffixes, SubChordSeparator); found {
		c.suffixes = before
		c.sub = Parse(after)
		return
	}
	c.suffixes = suffixes
}

func (c *Chord) setIndex(index int) {
	c.index = index
	c.sharpName, c.flatName, _ = pitch.Names(index)
}

func (c *Chord) IsValid() bool {
	return c.err == nil
}

// Err explains why the chord is invalid, or returns nil.
func (c *Chord) Err() error {
	return c.err
}

func (c *Chord) Index() int {
	return c.index
}

func (c *Chord) SubChord() *Chord {
	return c.sub
}

// Text is the chord spelled with a sharp root. This is the default spelling.
func (c *Chord) Text() string {
	return c.sharpName + c.Suffixes()
}

func (c *Chord) SharpName() string {
	return c.sharpName + c.Suffixes()
}

func (c *Chord) FlatName() string {
	return c.flatName + c.Suffixes()
}

// Suffixes returns everything after the root, including any sub-chord.
func (c *Chord) Suffixes() string {
	if c.sub == nil {
		return c.suffixes
	}
	return c.suffixes + SubChordSeparator + c.sub.Text()
}

// Spell renders the chord with flat or sharp roots, sub-chords included.
func (c *Chord) Spell(flats bool) string {
	root := c.sharpName
	if flats {
		root = c.flatName
	}
	if c.sub == nil {
		return root + c.suffixes
	}
	return root + c.suffixes + SubChordSeparator + c.sub.Spell(flats)
}

// Transpose shifts the chord and its sub-chord by semitones, which may be
// negative or larger than an octave. Invalid chords are left as they are.
func (c *Chord) Transpose(semitones int) {
	if !c.IsValid() {
		return
	}
	c.setIndex(pitch.Shift(c.index, semitones))
	if c.sub != nil {
		c.sub.Transpose(semitones)
	}
}

// Difficulty scores the chord against the default table, falling back to
// difficulty.DefaultScore with a warning when nothing matches.
func (c *Chord) Difficulty() int {
	score, err := c.Score(difficulty.Default)
	if err != nil {
		logging.Warn("using default difficulty", "chord", c.Text(), "score", score)
	}
	return score
}

// Score looks up the full chord text, then the root, then the root letter.
func (c *Chord) Score(t difficulty.Table) (int, error) {
	if score, ok := t.Lookup(c.Text()); ok {
		return score, nil
	}
	if c.sharpName != "" {
		if score, ok := t.Lookup(c.sharpName); ok {
			return score, nil
		}
		if score, ok := t.Lookup(c.sharpName[:1]); ok {
			return score, nil
		}
	}
	return difficulty.DefaultScore, fmt.Errorf("%w: %q", ErrNoDifficulty, c.Text())
}

// Clone returns a deep copy, sub-chord included.
func (c *Chord) Clone() *Chord {
	clone := *c
	if c.sub != nil {
		clone.sub = c.sub.Clone()
	}
	return &clone
}

func (c *Chord) String() string {
	return "Chord " + c.Text()
}
