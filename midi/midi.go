package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jsphweid/ctransposer/chord"
	"github.com/jsphweid/ctransposer/model"
	"github.com/jsphweid/ctransposer/pitch"
	"github.com/jsphweid/ctransposer/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	TicksPerQuarter = 480
	TicksPerBar     = 4 * TicksPerQuarter

	// Chords sit around middle C.
	DefaultOctave = 4

	channel  = 0
	velocity = 90
)

// intervals returns the semitones above the root for a chord suffix. Only
// the common qualities and extensions are understood; anything else is
// played as a major triad.
func intervals(suffix string) []int {
	third, fifth := 4, 7
	switch {
	case strings.HasPrefix(suffix, "maj"):
	case strings.HasPrefix(suffix, "dim"):
		third, fifth = 3, 6
	case strings.HasPrefix(suffix, "aug"), strings.HasPrefix(suffix, "+"):
		fifth = 8
	case strings.HasPrefix(suffix, "m"):
		third = 3
	}
	switch {
	case strings.Contains(suffix, "sus2"):
		third = 2
	case strings.Contains(suffix, "sus"):
		third = 5
	}

	res := []int{0, third, fifth}
	hasNinth := strings.Contains(suffix, "9")
	switch {
	case strings.Contains(suffix, "maj7"), strings.Contains(suffix, "maj9"):
		res = append(res, 11)
	case strings.Contains(suffix, "dim7"):
		res = append(res, 9)
	case strings.Contains(suffix, "7"),
		hasNinth && !strings.Contains(suffix, "add9"),
		strings.Contains(suffix, "11"),
		strings.Contains(suffix, "13"):
		res = append(res, 10)
	}
	if strings.Contains(suffix, "6") {
		res = append(res, 9)
	}
	if hasNinth {
		res = append(res, 14)
	}
	if strings.Contains(suffix, "11") {
		res = append(res, 17)
	}
	if strings.Contains(suffix, "13") {
		res = append(res, 21)
	}
	return res
}

func noteNumber(index, octave int) uint8 {
	return uint8(pitch.SemitonesInOctave*(octave+1) + pitch.OffsetFromC(index))
}

// ChordNotes voices c as MIDI note numbers with its root in octave. The root
// of a sub-chord is added as a bass note an octave lower. Invalid chords
// have no notes.
func ChordNotes(c *chord.Chord, octave int) []uint8 {
	if !c.IsValid() {
		return nil
	}

	var res []uint8
	if sub := c.SubChord(); sub != nil && sub.IsValid() {
		res = append(res, noteNumber(sub.Index(), octave-1))
	}
	root := noteNumber(c.Index(), octave)
	own, _, _ := strings.Cut(c.Suffixes(), chord.SubChordSeparator)
	for _, interval := range intervals(own) {
		res = append(res, root+uint8(interval))
	}
	return res
}

// Progression renders every chord of idx, in line then column order, as one
// bar of block chord in a type 1 file with a tempo track and a chord track.
func Progression(idx model.ChordIndex, bpm float64) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var conductor smf.Track
	conductor.Add(0, smf.MetaMeter(4, 4))
	conductor.Add(0, smf.MetaTempo(bpm))
	conductor.Close(0)
	s.Add(conductor)

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("chords"))
	var rest uint32
	for _, n := range util.SortedKeys(idx) {
		for _, o := range idx[n] {
			notes := ChordNotes(o.Chord, DefaultOctave)
			if len(notes) == 0 {
				rest += TicksPerBar
				continue
			}
			for i, key := range notes {
				delta := uint32(0)
				if i == 0 {
					delta = rest
				}
				track.Add(delta, midi.NoteOn(channel, key, velocity))
			}
			for i, key := range notes {
				delta := uint32(0)
				if i == 0 {
					delta = TicksPerBar
				}
				track.Add(delta, midi.NoteOff(channel, key))
			}
			rest = 0
		}
	}
	track.Close(rest)
	s.Add(track)

	return s
}

func WriteMidiFile(path string, s *smf.SMF) error {
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create midi file: %w", err)
	}
	defer f.Close()

	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("could not write midi file: %w", err)
	}
	return f.Close()
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, fmt.Errorf("error parsing midi file... %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file... %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file... %w", err)
	}
	if len(res.Tracks) == 0 {
		return nil, errors.New("midi file has no tracks")
	}
	return res, nil
}

// Chords groups the note-ons of s by the tick they start on, in time order.
// Notes within a chord are sorted ascending.
func Chords(s *smf.SMF) [][]uint8 {
	starts := make(map[int64][]uint8)
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var ch, key, vel uint8
			if event.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				starts[absTicks] = append(starts[absTicks], key)
			}
		}
	}

	res := make([][]uint8, 0, len(starts))
	for _, tick := range util.SortedKeys(starts) {
		notes := starts[tick]
		sort.Slice(notes, func(i, j int) bool { return notes[i] < notes[j] })
		res = append(res, notes)
	}
	return res
}
