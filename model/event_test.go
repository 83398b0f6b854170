package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsReadBackWhatTheyWrite(t *testing.T) {
	state := SessionState{ID: "s1", Events: Events{
		Note{Step: F, Octave: 5, Duration: 8, Accidental: Sharp, Dotted: true},
		Rest{Duration: 16},
		Bar{Kind: RepeatClose},
		Tie{},
		Note{Step: C, Octave: 3, Duration: 4},
	}}
	data, err := json.Marshal(state)
	require.NoError(t, err)

	var got SessionState
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, state.Events, got.Events)
}

func TestEventsRejectUnknownShapes(t *testing.T) {
	for _, body := range []string{
		`[{"type":"chord"}]`,
		`[{"type":"note","step":"H","octave":4,"duration":4}]`,
		`[{"type":"note","step":"C","accidental":"double-sharp"}]`,
		`[{"type":"bar","code":"|"}]`,
	} {
		var evs Events
		assert.Error(t, json.Unmarshal([]byte(body), &evs), body)
	}
}
