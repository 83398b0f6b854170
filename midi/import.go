package midi

import (
	"sort"

	"github.com/jsphweid/incipitdex/logger"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pitch"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

type ImportOptions struct {
	// notes starting before this tick are skipped
	TicksOffset uint64
	MaxNotes    int
	Key         int
	Clef        model.Clef
	Time        model.TimeSignature
}

var DefaultImportOptions = ImportOptions{
	MaxNotes: 10,
	Clef:     model.TrebleClef,
	Time:     model.CommonTime,
}

type sounding struct {
	start, end uint64
	key        uint8
}

type noteValue struct {
	duration int
	dotted   bool
	ticks    uint64
}

// quantize returns the allowed value closest to ticks, preferring undotted
// values on ties.
func quantize(ticks uint64, tpq uint64) noteValue {
	var best noteValue
	var bestDiff uint64
	first := true
	for _, dotted := range []bool{false, true} {
		for _, d := range model.Durations {
			t := 4 * tpq / uint64(d)
			if dotted {
				t += t / 2
			}
			diff := t - ticks
			if ticks > t {
				diff = ticks - t
			}
			if first || diff < bestDiff {
				best, bestDiff, first = noteValue{d, dotted, t}, diff, false
			}
		}
	}
	return best
}

var (
	lowestKey  = pitch.MIDI(model.C, pitch.MinOctave, 0)
	highestKey = pitch.MIDI(model.B, pitch.MaxOctave, 0)
)

// foldKey moves a key by whole octaves into the range PAE octave marks can
// write.
func foldKey(k int) int {
	for k < lowestKey {
		k += 12
	}
	for k > highestKey {
		k -= 12
	}
	return k
}

func melody(track smf.Track) []sounding {
	var res []sounding
	var abs uint64
	open := make(map[uint8]int)
	for _, ev := range track {
		abs += uint64(ev.Delta)
		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
			open[key] = len(res)
			res = append(res, sounding{start: abs, end: abs, key: key})
		case ev.Message.GetNoteOn(&ch, &key, &vel), ev.Message.GetNoteOff(&ch, &key, &vel):
			if i, ok := open[key]; ok {
				res[i].end = abs
				delete(open, key)
			}
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].start < res[j].start
	})
	return res
}

// Import reads the first track that has notes and turns its opening into an
// incipit. Overlapping notes keep only the first one to start.
func Import(s *smf.SMF, opts ImportOptions) (model.Incipit, error) {
	inc := model.Incipit{Header: model.Header{Clef: opts.Clef, Key: opts.Key, Time: opts.Time}}
	tpq, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return inc, errors.New("only metric time formats can be imported")
	}
	ticksPerQuarter := uint64(tpq.Resolution())

	var notes []sounding
	for _, tr := range s.Tracks {
		if notes = melody(tr); len(notes) > 0 {
			break
		}
	}
	if len(notes) == 0 {
		return inc, errors.New("no notes found")
	}
	logger.MIDI.Printf("importing from %s", describe(s))

	// no bar lines are imported, so accidentals hold for the whole phrase
	sp := pitch.NewSpeller(opts.Key)
	cursor := opts.TicksOffset
	for _, n := range notes {
		if n.start < opts.TicksOffset || n.start < cursor {
			continue
		}
		if opts.MaxNotes > 0 && len(inc.Notes()) >= opts.MaxNotes {
			break
		}
		if gap := n.start - cursor; gap > 0 && cursor > opts.TicksOffset {
			// gaps under half a 32nd are articulation, not rests
			if gap >= ticksPerQuarter/16 {
				inc.Events = append(inc.Events, model.Rest{Duration: quantize(gap, ticksPerQuarter).duration})
			}
		}
		v := quantize(n.end-n.start, ticksPerQuarter)
		k := foldKey(int(n.key))
		if k != int(n.key) {
			logger.MIDI.Printf("key %d moved to %d to stay within octaves %d-%d", n.key, k, pitch.MinOctave, pitch.MaxOctave)
		}
		note := sp.Spell(k)
		note.Duration, note.Dotted = v.duration, v.dotted
		inc.Events = append(inc.Events, note)
		cursor = n.end
	}
	return inc, nil
}
