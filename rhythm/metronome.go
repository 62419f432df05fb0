package rhythm

import (
	"math"
	"sync"
)

// Metronome simulates a host transport that is advanced by the audio renderer one block at a time.
// Positions are counted in samples rather than wall clock time, so a rendered timeline is reproducible.
//
// Loosely modelled on https://github.com/Deep-Symmetry/electro/blob/main/src/main/java/org/deepsymmetry/electro/Metronome.java
type Metronome struct {
	mu          sync.Mutex
	sampleRate  float64
	tempo       float64
	ppqPosition float64

	playing   bool
	recording bool

	looping   bool
	loopStart float64
	loopEnd   float64
}

// NewMetronome creates a new stopped Metronome at 120 bpm, positioned at the start of the timeline.
func NewMetronome(sampleRate float64) *Metronome {
	return &Metronome{
		sampleRate: sampleRate,
		tempo:      120.0,
	}
}

// CopyMetronome creates a new Metronome as a copy of another
func CopyMetronome(m *Metronome) *Metronome {
	m.mu.Lock()
	defer m.mu.Unlock()

	return &Metronome{
		sampleRate:  m.sampleRate,
		tempo:       m.tempo,
		ppqPosition: m.ppqPosition,
		playing:     m.playing,
		recording:   m.recording,
		looping:     m.looping,
		loopStart:   m.loopStart,
		loopEnd:     m.loopEnd,
	}
}

func (m *Metronome) GetTempo() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.tempo
}

// SetTempo sets a new tempo for the Metronome. Positions are kept in beats, so the current beat and phase
// are unaffected by the tempo change; only the rate at which Advance moves through them changes.
func (m *Metronome) SetTempo(bpm float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tempo = bpm
}

// GetBeatInterval returns the number of milliseconds a beat lasts.
func (m *Metronome) GetBeatInterval() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return BeatsToMilliseconds(1, m.tempo)
}

// GetBeatIntervalSamples returns the number of samples a beat lasts.
func (m *Metronome) GetBeatIntervalSamples() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return BeatsToSamples(1, m.tempo, m.sampleRate)
}

func (m *Metronome) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.playing = true
}

// Stop halts the transport. Recording stops with it.
func (m *Metronome) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.playing = false
	m.recording = false
}

func (m *Metronome) Record(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recording = enabled
}

// SetLoop loops playback between two positions measured in beats. An empty or inverted region clears the
// loop.
func (m *Metronome) SetLoop(start, end float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if end <= start {
		m.looping = false
		return
	}
	m.looping = true
	m.loopStart = start
	m.loopEnd = end
	m.ppqPosition = m.wrap(m.ppqPosition)
}

func (m *Metronome) ClearLoop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.looping = false
}

// Seek jumps to a position measured in beats.
func (m *Metronome) Seek(ppq float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ppqPosition = m.wrap(ppq)
}

// Advance moves the transport forward by a number of samples. It is a no-op while the transport is stopped.
func (m *Metronome) Advance(samples int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.rolling() {
		return
	}

	samplesPerBeat := BeatsToSamples(1, m.tempo, m.sampleRate)
	if samplesPerBeat <= 0 {
		return
	}
	m.ppqPosition = m.wrap(m.ppqPosition + float64(samples)/samplesPerBeat)
}

// GetPosition returns a snapshot of the transport.
func (m *Metronome) GetPosition() Position {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Position{
		Tempo:       m.tempo,
		PpqPosition: m.ppqPosition,
		IsPlaying:   m.playing,
		IsRecording: m.recording,
		IsLooping:   m.looping && m.rolling(),
	}
}

func (m *Metronome) rolling() bool {
	return m.playing || m.recording
}

// wrap folds a position that ran past the loop end back into the loop region.
func (m *Metronome) wrap(ppq float64) float64 {
	if !m.looping || ppq < m.loopEnd {
		return ppq
	}
	length := m.loopEnd - m.loopStart
	return m.loopStart + math.Mod(ppq-m.loopStart, length)
}
