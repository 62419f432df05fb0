package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionPhase(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ppq           float64
		expectedBeat  int64
		expectedPhase float64
	}{
		{0, 1, 0},
		{0.25, 1, 0.25},
		{3.75, 4, 0.75},
		// pre-roll counts towards the next beat boundary
		{-0.25, 0, 0.75},
		{-1, 0, 0},
	}

	for _, tc := range testCases {
		pos := Position{Tempo: 120, PpqPosition: tc.ppq}
		assert.Equal(t, tc.expectedBeat, pos.GetBeat(), "ppq=%v", tc.ppq)
		assert.InDelta(t, tc.expectedPhase, pos.GetBeatPhase(), 1e-12, "ppq=%v", tc.ppq)
	}
}

func TestSamplesSinceBeat(t *testing.T) {
	t.Parallel()

	pos := Position{Tempo: 120, PpqPosition: 16.5, IsPlaying: true}
	assert.Equal(t, 24000.0, pos.SamplesPerBeat(48000))
	assert.Equal(t, 12000.0, pos.SamplesSinceBeat(48000))

	// no tempo, no samples
	pos.Tempo = 0
	assert.Equal(t, 0.0, pos.SamplesPerBeat(48000))
	assert.Equal(t, 0.0, pos.SamplesSinceBeat(48000))
}

func TestIsActive(t *testing.T) {
	t.Parallel()

	assert.False(t, Position{}.IsActive())
	assert.True(t, Position{IsPlaying: true}.IsActive())
	assert.True(t, Position{IsRecording: true}.IsActive())
	assert.True(t, Position{IsLooping: true}.IsActive())
}
