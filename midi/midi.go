// Package midi exports incipits as standard MIDI files and pulls an opening
// phrase back out of one.
package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pitch"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	TicksPerQuarter = 480
	channel         = 0
	velocity        = 90
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// the reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, errors.Errorf("parsing midi file %s: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

// Ticks is the length of a note value, dotted or not.
func Ticks(duration int, dotted bool) uint32 {
	t := uint32(4 * TicksPerQuarter / duration)
	if dotted {
		t += t / 2
	}
	return t
}

// Export builds a single track: meter, then notes with key signature and
// bar-scoped accidentals applied. Rests only advance time; ties are ignored.
func Export(inc model.Incipit) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("incipit"))
	tr.Add(0, smf.MetaMeter(uint8(inc.Time.Numerator), uint8(inc.Time.Denominator)))

	sp := pitch.NewSpeller(inc.Key)
	var delta uint32
	for _, ev := range inc.Events {
		switch e := ev.(type) {
		case model.Note:
			k := sp.Pitch(e)
			if k < 0 || k > 127 {
				return nil, errors.Errorf("note %s%d is outside the midi range", e.Step, e.Octave)
			}
			tr.Add(delta, midi.NoteOn(channel, uint8(k), velocity))
			tr.Add(Ticks(e.Duration, e.Dotted), midi.NoteOff(channel, uint8(k)))
			delta = 0
		case model.Rest:
			delta += Ticks(e.Duration, false)
		case model.Bar:
			sp.Bar()
		}
	}
	tr.Close(delta)

	if err := s.Add(tr); err != nil {
		return nil, errors.Wrap(err, "adding track")
	}
	return s, nil
}

func Write(w io.Writer, inc model.Incipit) error {
	s, err := Export(inc)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return errors.Wrap(err, "writing midi")
}

func WriteFile(path string, inc model.Incipit) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating midi file")
	}
	defer f.Close()
	if err := Write(f, inc); err != nil {
		return err
	}
	return f.Close()
}

func describe(s *smf.SMF) string {
	return fmt.Sprintf("%d track(s), time format %v", len(s.Tracks), s.TimeFormat)
}
