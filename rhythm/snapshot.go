package rhythm

import "math"

// PlayHead is anything that can report where the host transport is, e.g. a DAW play head or a Metronome.
type PlayHead interface {
	// GetPosition takes a snapshot of the transport at the start of the next block.
	GetPosition() Position
}

// Position is a snapshot of the host transport taken once per processing block.
type Position struct {
	// Tempo is the transport tempo in bpm.
	Tempo float64

	// PpqPosition is the number of quarter notes since the start of the timeline. It is negative during a
	// pre-roll.
	PpqPosition float64

	IsPlaying   bool
	IsRecording bool
	IsLooping   bool
}

// IsActive reports whether audio should be produced for the block.
func (p Position) IsActive() bool {
	return p.IsPlaying || p.IsRecording || p.IsLooping
}

// GetBeat returns the 1-based number of the beat the snapshot falls in.
func (p Position) GetBeat() int64 {
	return markerNumber(p.PpqPosition)
}

// GetBeatPhase returns how far the snapshot is through its beat, in [0, 1).
func (p Position) GetBeatPhase() float64 {
	return markerPhase(p.PpqPosition)
}

// SamplesPerBeat returns the length of one quarter note in samples, or 0 without a usable tempo.
func (p Position) SamplesPerBeat(sampleRate float64) float64 {
	return BeatsToSamples(1, p.Tempo, sampleRate)
}

// SamplesSinceBeat returns the number of samples elapsed since the most recent beat boundary.
func (p Position) SamplesSinceBeat(sampleRate float64) float64 {
	return p.GetBeatPhase() * p.SamplesPerBeat(sampleRate)
}

// BeatsToMilliseconds calculates milliseconds for given beats and tempo.
func BeatsToMilliseconds(beats float64, tempo float64) float64 {
	if !(tempo > 0) {
		return 0
	}
	return (60000.0 / tempo) * beats
}

// BeatsToSamples calculates the number of samples for given beats, tempo and sample rate.
func BeatsToSamples(beats float64, tempo float64, sampleRate float64) float64 {
	return BeatsToMilliseconds(beats, tempo) * sampleRate / 1000.0
}

// markerNumber calculates the 1-based marker number at a position measured in markers.
func markerNumber(position float64) int64 {
	return int64(math.Floor(position)) + 1
}

// markerPhase calculates how far through its marker a position is.
func markerPhase(position float64) float64 {
	phase := position - math.Floor(position)
	// x - floor(x) rounds up to 1 for tiny negative x
	if phase >= 1 {
		return 0
	}
	return phase
}
