package song

import (
	"errors"
	"testing"

	"github.com/jsphweid/ctransposer/chord"
	"github.com/jsphweid/ctransposer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sheet = []string{
	"Verse 1",
	"Am      C       G",
	"Hello darkness my old friend",
	"",
	"Chorus",
	"F    C/B   G",
	"(Am)  E#m  E7  G",
}

func TestIsChordLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"Am C G", true},
		{"Am      C       G", true},
		{"   F    C/B   G   ", true},
		{"Hello darkness my old friend", false},
		{"Verse 1", false},
		{"", false},
		{"     ", false},
		{"Chorus", false},
		{"C  G  Capo 2", false},
		{"Bridge: Am F", false},
		// lyric lines full of note letters are mistaken for chords
		{"All day", true},
		{"Am C G la", true},
		{"Am C la la", false},
		{"H H H", false},
		{"am c g", true},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.want, IsChordLine(tc.line))
		})
	}
}

func TestSplitChordLine(t *testing.T) {
	got := SplitChordLine("  (Am)  E#m  E7\tx  N.C.")

	texts := make([]string, 0, len(got))
	cols := make([]int, 0, len(got))
	widths := make([]int, 0, len(got))
	for _, o := range got {
		texts = append(texts, o.Chord.Text())
		cols = append(cols, o.Column)
		widths = append(widths, o.Width)
	}

	assert := assert.New(t)
	// chords may start mid-token, so "N.C." yields "C."
	assert.Equal([]string{"Am)", "E#m", "E7\tx", "C."}, texts)
	assert.Equal([]int{3, 8, 13, 21}, cols)
	assert.Equal([]int{3, 3, 4, 2}, widths)
	assert.True(got[0].Chord.IsValid())
	assert.False(got[1].Chord.IsValid())
	assert.True(got[3].Chord.IsValid())
}

func TestSplitChordLineCountsRunes(t *testing.T) {
	got := SplitChordLine("é C")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Column)
}

func TestExtractChords(t *testing.T) {
	idx := ExtractChords(sheet)

	assert := assert.New(t)
	assert.Len(idx, 3)
	require.Contains(t, idx, 1)
	require.Contains(t, idx, 5)

	line1 := idx[1]
	require.Len(t, line1, 3)
	assert.Equal("Am", line1[0].Chord.Text())
	assert.Equal(0, line1[0].Column)
	assert.Equal("C", line1[1].Chord.Text())
	assert.Equal(8, line1[1].Column)
	assert.Equal("G", line1[2].Chord.Text())
	assert.Equal(16, line1[2].Column)

	line5 := idx[5]
	require.Len(t, line5, 3)
	assert.Equal("C/B", line5[1].Chord.Text())
	assert.Equal(5, line5[1].Column)
}

func TestExtractChordsFindsNothing(t *testing.T) {
	idx := ExtractChords([]string{"just words here", "and more words"})
	assert.Empty(t, idx)

	warnings := Warnings(idx)
	if assert.Len(t, warnings, 1) {
		assert.True(t, errors.Is(warnings[0], ErrNoChords))
	}
}

func TestTransposeAndReassemble(t *testing.T) {
	idx := ExtractChords(sheet)
	TransposeChords(idx, 2)
	got := Reassemble(sheet, idx)

	assert := assert.New(t)
	require.Len(t, got, len(sheet))
	assert.Equal("Verse 1", got[0])
	assert.Equal("Bm      D       A", got[1])
	assert.Equal("Hello darkness my old friend", got[2])
	assert.Equal("G    D/C#  A", got[5])
	assert.Equal("(Bm)  E#m  F#7 A", got[6])

	// input is untouched
	assert.Equal("Am      C       G", sheet[1])
}

func TestReassemblePreservesLengthForSameLengthSpellings(t *testing.T) {
	lines := []string{"Am  C   G  lyric-free", "Em    D    A"}
	idx := ExtractChords(lines)
	TransposeChords(idx, 12)
	got := Reassemble(lines, idx)
	assert.Equal(t, lines, got)

	TransposeChords(idx, 5) // Am->Dm C->F G->C Em->Am D->G A->D
	got = Reassemble(lines, idx)
	for i := range lines {
		assert.Equal(t, len(lines[i]), len(got[i]))
	}
	assert.Equal(t, "Am    G    D", got[1])
}

func TestReassembleOverwritesWhenLonger(t *testing.T) {
	lines := []string{"C G", "C"}
	idx := ExtractChords(lines)
	TransposeChords(idx, 1)
	got := Reassemble(lines, idx)

	assert.Equal(t, "C#G#", got[0])
	assert.Equal(t, "C#", got[1])
}

func TestReassembleBlanksShorterSpellings(t *testing.T) {
	lines := []string{"C#m  F#m7  G#"}
	idx := ExtractChords(lines)
	TransposeChords(idx, -1)
	got := Reassemble(lines, idx)

	assert.Equal(t, "Cm   Fm7   G ", got[0])
	assert.Equal(t, len(lines[0]), len(got[0]))
}

func TestReassembleWithFlats(t *testing.T) {
	lines := []string{"C#m   F#/A#"}
	idx := ExtractChords(lines)
	got := ReassembleWith(lines, idx, true)
	assert.Equal(t, "Dbm   Gb/Bb", got[0])
}

func TestTransposeZeroIsNoop(t *testing.T) {
	idx := ExtractChords([]string{"Bb  Eb"})
	TransposeChords(idx, 0)
	assert.Equal(t, "Bb", idx[0][0].Chord.FlatName())
	assert.Equal(t, []string{"A#  D#"}, Reassemble([]string{"Bb  Eb"}, idx))
}

func TestTransposeResult(t *testing.T) {
	res := Transpose(sheet, -2, Options{})

	assert := assert.New(t)
	assert.Equal(-2, res.Semitones)
	assert.Equal(10, res.Chords)
	assert.Equal("Gm      A#      F", res.Lines[1])
	assert.Equal("D#   A#/A  F", res.Lines[5])
	if assert.Len(res.Warnings, 1) {
		assert.True(errors.Is(res.Warnings[0], chord.ErrInvalidChord))
		assert.Contains(res.Warnings[0].Error(), "line 7 column 7")
	}
	assert.Greater(res.DifficultyAfter, res.DifficultyBefore)
}

func TestWarningsIncludeInvalidSubChords(t *testing.T) {
	w := Warnings(ExtractChords([]string{"C/x  G  D"}))

	require.Len(t, w, 1)
	assert.True(t, errors.Is(w[0], chord.ErrInvalidChord))
	assert.Contains(t, w[0].Error(), "line 1 column 1")
}

func TestTransposeWithoutChords(t *testing.T) {
	lines := []string{"just words here", "and more words"}
	res := Transpose(lines, 3, Options{})

	assert := assert.New(t)
	assert.Equal(lines, res.Lines)
	assert.Equal(0, res.Chords)
	assert.Equal(0, res.DifficultyBefore)
	require.Len(t, res.Warnings, 1)
	assert.True(errors.Is(res.Warnings[0], ErrNoChords))
}

// testSong is an easy song with C, F, G and Am chords on ten chord lines.
var testSong = map[int][]struct {
	text   string
	column int
}{
	6:  {{"Am", 11}, {"C", 25}, {"G", 35}, {"Am(*)", 44}},
	15: {{"F", 8}, {"C", 18}, {"F", 29}, {"C", 50}, {"C/B", 55}, {"F", 63}},
	17: {{"C", 19}, {"Am(*)", 29}},
	19: {{"F", 8}, {"C", 19}, {"F", 30}, {"C", 53}, {"C/B", 58}, {"F", 65}},
	21: {{"C", 15}, {"G", 26}},
	24: {{"Am", 18}, {"C", 34}, {"G", 51}, {"F", 62}, {"Am", 71}, {"C", 75}, {"G", 78}},
	27: {{"F", 8}, {"C", 20}, {"F", 26}, {"C", 53}, {"F", 61}},
	29: {{"C", 19}, {"Am(*)", 26}},
	31: {{"F", 15}, {"C", 28}, {"Am", 40}, {"G", 50}, {"F", 58}},
	33: {{"Am", 15}, {"C", 28}, {"G", 43}},
}

func testSongIndex() model.ChordIndex {
	idx := make(model.ChordIndex)
	for n, chords := range testSong {
		for _, c := range chords {
			idx[n] = append(idx[n], model.ChordOccurrence{Chord: chord.Parse(c.text), Column: c.column})
		}
	}
	return idx
}

func TestTotalDifficulty(t *testing.T) {
	cases := []struct {
		name      string
		semitones int
		want      int
	}{
		{"easy song", 0, 15},
		{"easy song plus two", 2, 31},
		{"easy song plus three", 3, 166},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx := testSongIndex()
			TransposeChords(idx, tc.semitones)
			assert.Equal(t, tc.want, TotalDifficulty(idx))
		})
	}
}

func TestCloneIndexIsIndependent(t *testing.T) {
	idx := testSongIndex()
	clone := CloneIndex(idx)
	TransposeChords(clone, 3)

	assert.Equal(t, 15, TotalDifficulty(idx))
	assert.Equal(t, 166, TotalDifficulty(clone))
	assert.Equal(t, CountChords(idx), CountChords(clone))
	assert.Equal(t, 42, CountChords(idx))
}

func TestRankKeys(t *testing.T) {
	scores := RankKeys(testSongIndex())

	assert := assert.New(t)
	require.Len(t, scores, MaxKeyShift-MinKeyShift+1)
	assert.Equal(MinKeyShift, scores[0].Semitones)
	assert.Equal(MaxKeyShift, scores[len(scores)-1].Semitones)
	for _, s := range scores {
		switch s.Semitones {
		case 0:
			assert.Equal(15, s.Difficulty)
		case 2:
			assert.Equal(31, s.Difficulty)
		case 3:
			assert.Equal(166, s.Difficulty)
		case -5:
			assert.Equal(0, s.Difficulty)
		}
	}
	assert.Equal(model.KeyScore{Semitones: -5, Difficulty: 0}, EasiestKey(scores))
}

func TestEasiestKeyTieBreaks(t *testing.T) {
	scores := []model.KeyScore{
		{Semitones: -3, Difficulty: 4},
		{Semitones: 5, Difficulty: 2},
		{Semitones: 2, Difficulty: 2},
		{Semitones: -2, Difficulty: 2},
	}
	assert.Equal(t, model.KeyScore{Semitones: -2, Difficulty: 2}, EasiestKey(scores))
	assert.Equal(t, model.KeyScore{}, EasiestKey(nil))
}

func TestAutoTranspose(t *testing.T) {
	lines := []string{"G#m   E    B    F#"}
	res := AutoTranspose(lines, Options{})

	assert := assert.New(t)
	assert.Less(res.DifficultyAfter, res.DifficultyBefore)
	assert.Equal(-4, res.Semitones)
	assert.Equal("Em    C    G    D ", res.Lines[0])
}
