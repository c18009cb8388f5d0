package song

import (
	"github.com/jsphweid/ctransposer/model"
	"github.com/jsphweid/ctransposer/pitch"
	"github.com/jsphweid/ctransposer/util"
)

// Every key is reachable by a shift in this range.
const (
	MinKeyShift = -(pitch.SemitonesInOctave/2 - 1)
	MaxKeyShift = pitch.SemitonesInOctave / 2
)

// RankKeys scores each shift from MinKeyShift to MaxKeyShift by the total
// difficulty of the song in that key. idx is left untouched.
func RankKeys(idx model.ChordIndex) []model.KeyScore {
	scores := make([]model.KeyScore, 0, MaxKeyShift-MinKeyShift+1)
	for s := MinKeyShift; s <= MaxKeyShift; s++ {
		shifted := CloneIndex(idx)
		TransposeChords(shifted, s)
		scores = append(scores, model.KeyScore{Semitones: s, Difficulty: TotalDifficulty(shifted)})
	}
	return scores
}

// EasiestKey picks the lowest difficulty. Ties go to the smaller shift, and
// between equal shifts in either direction, to the downward one.
func EasiestKey(scores []model.KeyScore) model.KeyScore {
	var best model.KeyScore
	for i, s := range scores {
		if i == 0 || easier(s, best) {
			best = s
		}
	}
	return best
}

func easier(a, b model.KeyScore) bool {
	if a.Difficulty != b.Difficulty {
		return a.Difficulty < b.Difficulty
	}
	if util.Abs(a.Semitones) != util.Abs(b.Semitones) {
		return util.Abs(a.Semitones) < util.Abs(b.Semitones)
	}
	return a.Semitones < b.Semitones
}

// AutoTranspose moves lines into their easiest key.
func AutoTranspose(lines []string, opts Options) Result {
	best := EasiestKey(RankKeys(ExtractChords(lines)))
	return Transpose(lines, best.Semitones, opts)
}
