package clock

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newProperties(t *testing.T) *gopter.Properties {
	t.Helper()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func TestPropertyPhaseStaysInRange(t *testing.T) {
	properties := newProperties(t)

	properties.Property("phase stays in [0, 2pi) for any delta and start phase", prop.ForAll(
		func(delta, start float64, steps int) bool {
			c := &Clock{scale: 1, delta: delta, phase: start}
			for i := 0; i < steps; i++ {
				c.Process()
				if c.phase < 0 || c.phase >= TwoPi {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1e-9, TwoPi-1e-9),
		gen.Float64Range(0, TwoPi-1e-9),
		gen.IntRange(1, 5000),
	))

	properties.TestingRun(t)
}

func TestPropertyDutyCycle(t *testing.T) {
	properties := newProperties(t)

	properties.Property("one cycle is high exactly while the phase is below pi", prop.ForAll(
		func(samplesPerCycle int) bool {
			c := &Clock{scale: 1, delta: TwoPi / float64(samplesPerCycle)}

			high, belowPi := 0, 0
			for i := 0; i < samplesPerCycle; i++ {
				if c.phase < math.Pi {
					belowPi++
				}
				if c.Process() > 0 {
					high++
				}
			}

			half := float64(samplesPerCycle) / 2
			return high == belowPi && math.Abs(float64(high)-half) <= 1
		},
		gen.IntRange(2, 4000),
	))

	properties.TestingRun(t)
}

func TestPropertyMulDivMapping(t *testing.T) {
	properties := newProperties(t)

	properties.Property("multiply above 1, divide below -1, unity in between", prop.ForAll(
		func(mulDiv int) bool {
			c := New()
			c.Init(48000)
			c.SetTempo(120)
			c.SetPpqn(24)
			c.SetMulDiv(mulDiv)

			switch {
			case mulDiv >= 2:
				return c.Scale() == float64(mulDiv)
			case mulDiv <= -2:
				return c.Scale() == 1/float64(-mulDiv)
			default:
				return c.Scale() == 1 && c.Delta() == PhaseDelta(120, 24, 1, 48000)
			}
		},
		gen.IntRange(-64, 64),
	))

	properties.TestingRun(t)
}

func TestPropertyTimeAdvanceIsAbsolute(t *testing.T) {
	properties := newProperties(t)

	properties.Property("resync ignores the previous phase", prop.ForAll(
		func(prior float64, samples int, tempo float64, ppqn int) bool {
			a := New()
			a.Init(48000)
			a.SetTempo(tempo)
			a.SetPpqn(ppqn)

			b := *a
			a.phase = prior

			a.SetTimeAdvance(samples)
			b.SetTimeAdvance(samples)
			return a.phase == b.phase && a.phase >= 0 && a.phase < TwoPi
		},
		gen.Float64Range(0, TwoPi-1e-9),
		gen.IntRange(-1<<20, 1<<20),
		gen.Float64Range(20, 300),
		gen.IntRange(2, 96),
	))

	properties.TestingRun(t)
}
