// Package clock generates a pulse wave clock signal locked to a host tempo.
//
// A Clock is a continuous-phase oscillator. Its rate is derived from the tempo, the pulses per quarter note
// and a multiply/divide control. Once per block the renderer resynchronizes the phase from the host
// position with SetTimeAdvance, then pulls one sample per frame with Process.
//
// A Clock is not safe for concurrent use. Process and SetTimeAdvance never allocate.
package clock

import "math"

const (
	// TwoPi is one full pulse cycle in radians.
	TwoPi = 2 * math.Pi

	// MinTempo is the floor applied to non-positive or NaN tempos reported by a host.
	MinTempo = 1.0
)

// Clock generates a bipolar 50% duty pulse wave.
type Clock struct {
	// The audio sample rate.
	sampleRate float64

	// The tempo in bpm.
	tempo float64

	// Pulses per quarter note.
	ppqn int

	// The raw multiply/divide control as set by the caller.
	mulDiv int

	// The effective frequency scale derived from mulDiv.
	scale float64

	// The current phase, always in [0, TwoPi).
	phase float64

	// The amount added to the phase for every sample.
	delta float64
}

// New returns a silent Clock at unity scale. Init must be called before rendering.
func New() *Clock {
	return &Clock{scale: 1}
}

// Init prepares the clock for playback at the given audio rate. The phase is reset to zero.
func (c *Clock) Init(sampleRate float64) {
	c.sampleRate = sampleRate
	c.Reset()
	c.updateDelta()
}

// Reset moves the phase back to the start of a pulse.
func (c *Clock) Reset() {
	c.phase = 0
}

// SetTempo sets the clock tempo in bpm.
func (c *Clock) SetTempo(bpm float64) {
	if !(bpm > 0) {
		bpm = MinTempo
	}
	c.tempo = bpm
	c.updateDelta()
}

// SetPpqn sets the pulses per quarter note.
func (c *Clock) SetPpqn(ppqn int) {
	if ppqn < 0 {
		ppqn = 0
	}
	c.ppqn = ppqn
	c.updateDelta()
}

// SetMulDiv sets the clock multiplier/divider.
// Values of 2 and above multiply, values of -2 and below divide and -1, 0 and 1 all mean unity.
func (c *Clock) SetMulDiv(mulDiv int) {
	c.mulDiv = mulDiv
	c.scale = MulDivScale(mulDiv)
	c.updateDelta()
}

// SetTimeAdvance sets the phase to where the clock would be after timeSamples samples from a pulse
// boundary. The previous phase is discarded.
func (c *Clock) SetTimeAdvance(timeSamples int) {
	phase := math.Mod(c.delta*float64(timeSamples), TwoPi)
	if phase < 0 {
		phase += TwoPi
	}
	if phase >= TwoPi {
		phase = 0
	}
	c.phase = phase
}

// Process renders a single sample and advances the phase.
func (c *Clock) Process() float32 {
	var sample float32 = -1
	if c.phase < math.Pi {
		sample = 1
	}

	c.phase += c.delta
	if c.phase >= TwoPi {
		c.phase -= TwoPi
	}

	return sample
}

// ProcessBlock fills out with consecutive samples.
func (c *Clock) ProcessBlock(out []float32) {
	for i := range out {
		out[i] = c.Process()
	}
}

func (c *Clock) Phase() float64      { return c.phase }
func (c *Clock) Delta() float64      { return c.delta }
func (c *Clock) SampleRate() float64 { return c.sampleRate }
func (c *Clock) Tempo() float64      { return c.tempo }
func (c *Clock) Ppqn() int           { return c.ppqn }
func (c *Clock) MulDiv() int         { return c.mulDiv }

// Scale returns the effective multiply/divide factor.
func (c *Clock) Scale() float64 {
	// zero value Clock
	if c.scale == 0 {
		return 1
	}
	return c.scale
}

// Frequency returns the pulse rate in Hz.
func (c *Clock) Frequency() float64 {
	return Frequency(c.tempo, c.ppqn, c.Scale())
}

func (c *Clock) updateDelta() {
	c.delta = PhaseDelta(c.tempo, c.ppqn, c.Scale(), c.sampleRate)
}

// MulDivScale maps a multiply/divide control to its frequency factor.
func MulDivScale(mulDiv int) float64 {
	switch {
	case mulDiv < -1:
		return 1 / float64(-mulDiv)
	case mulDiv > 1:
		return float64(mulDiv)
	default:
		return 1
	}
}

// Frequency returns the pulse rate in Hz for a tempo, ppqn and scale.
func Frequency(tempo float64, ppqn int, scale float64) float64 {
	return tempo * float64(ppqn) * scale / 60
}

// PhaseDelta returns the per-sample phase increment. It is zero when sampleRate is not positive.
func PhaseDelta(tempo float64, ppqn int, scale, sampleRate float64) float64 {
	if !(sampleRate > 0) {
		return 0
	}
	return TwoPi * Frequency(tempo, ppqn, scale) / sampleRate
}
