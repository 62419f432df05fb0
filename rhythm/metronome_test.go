package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetronome(t *testing.T) {
	t.Parallel()

	// Create a new metronome with a default of 120 bpm
	m := NewMetronome(48000)

	// The beat interval should be every 500ms
	assert.Equal(t, 500.0, m.GetBeatInterval())
	assert.Equal(t, 24000.0, m.GetBeatIntervalSamples())

	// Try to change the tempo
	m.SetTempo(128.0)

	// The beat interval should change to be 468.75ms
	assert.Equal(t, 468.75, m.GetBeatInterval())
	assert.Equal(t, 128.0, m.GetTempo())
}

func TestAdvance(t *testing.T) {
	t.Parallel()

	m := NewMetronome(48000)

	// stopped transports don't move
	m.Advance(24000)
	pos := m.GetPosition()
	assert.Equal(t, 0.0, pos.PpqPosition)
	assert.False(t, pos.IsActive())

	m.Play()
	m.Advance(36000)
	pos = m.GetPosition()
	assert.InDelta(t, 1.5, pos.PpqPosition, 1e-12)
	assert.True(t, pos.IsActive())
	assert.Equal(t, int64(2), pos.GetBeat())
	assert.InDelta(t, 0.5, pos.GetBeatPhase(), 1e-12)
	assert.InDelta(t, 12000, pos.SamplesSinceBeat(48000), 1e-6)
}

func TestSetTempoKeepsBeatPosition(t *testing.T) {
	t.Parallel()

	m := NewMetronome(48000)
	m.Play()
	m.Advance(30000) // 1.25 beats at 120bpm

	m.SetTempo(60)
	pos := m.GetPosition()
	assert.InDelta(t, 1.25, pos.PpqPosition, 1e-12)

	// beats are now twice as long
	m.Advance(30000)
	assert.InDelta(t, 1.875, m.GetPosition().PpqPosition, 1e-12)
}

func TestLoop(t *testing.T) {
	t.Parallel()

	m := NewMetronome(48000)
	m.SetLoop(4, 8)
	m.Seek(7.5)
	m.Play()

	// one beat forward runs half a beat past the loop end
	m.Advance(24000)
	pos := m.GetPosition()
	assert.InDelta(t, 4.5, pos.PpqPosition, 1e-12)
	assert.True(t, pos.IsLooping)

	// many loops later we are still inside the region
	for i := 0; i < 100; i++ {
		m.Advance(17777)
		ppq := m.GetPosition().PpqPosition
		require.GreaterOrEqual(t, ppq, 4.0)
		require.Less(t, ppq, 8.0)
	}

	// an inverted region disables looping
	m.SetLoop(8, 4)
	assert.False(t, m.GetPosition().IsLooping)

	m.SetLoop(0, 1)
	m.ClearLoop()
	m.Seek(10)
	assert.Equal(t, 10.0, m.GetPosition().PpqPosition)
}

func TestStopAndRecord(t *testing.T) {
	t.Parallel()

	m := NewMetronome(44100)
	m.SetLoop(0, 4)

	// a loop region on its own doesn't roll the transport
	assert.False(t, m.GetPosition().IsActive())

	m.Record(true)
	pos := m.GetPosition()
	assert.True(t, pos.IsRecording)
	assert.True(t, pos.IsActive())

	m.Stop()
	pos = m.GetPosition()
	assert.False(t, pos.IsRecording)
	assert.False(t, pos.IsActive())
}

func TestCopyMetronome(t *testing.T) {
	t.Parallel()

	m := NewMetronome(48000)
	m.SetTempo(90)
	m.Seek(3.25)
	m.Play()

	c := CopyMetronome(m)
	assert.Equal(t, m.GetPosition(), c.GetPosition())

	// copies move independently
	c.Advance(48000)
	assert.NotEqual(t, m.GetPosition(), c.GetPosition())
}
