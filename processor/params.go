package processor

import (
	"sync/atomic"

	"github.com/robmorgan/clockmaker/config"
)

// Params is an immutable snapshot of the host-facing parameters.
type Params struct {
	Ppqn   int
	MulDiv int
}

// DefaultParams returns the parameter defaults.
func DefaultParams() Params {
	return Params{
		Ppqn:   config.PpqnParameter.Default,
		MulDiv: config.MulDivParameter.Default,
	}
}

// ParamStore hands parameter changes from a control goroutine to the audio goroutine. Writers publish a new
// snapshot, the renderer picks it up at the next block boundary. Neither side ever blocks.
type ParamStore struct {
	current atomic.Pointer[Params]
}

// NewParamStore returns a store seeded with initial, clamped to the parameter ranges.
func NewParamStore(initial Params) *ParamStore {
	s := &ParamStore{}
	s.Store(initial)
	return s
}

// Load returns the latest snapshot. The returned value must not be modified.
func (s *ParamStore) Load() *Params {
	return s.current.Load()
}

// Store publishes p, clamped to the parameter ranges.
func (s *ParamStore) Store(p Params) {
	p.Ppqn = config.PpqnParameter.Clamp(p.Ppqn)
	p.MulDiv = config.MulDivParameter.Clamp(p.MulDiv)
	s.current.Store(&p)
}

// SetPpqn publishes a new pulses per quarter note value, keeping the other parameters.
func (s *ParamStore) SetPpqn(ppqn int) {
	p := *s.Load()
	p.Ppqn = ppqn
	s.Store(p)
}

// SetMulDiv publishes a new multiplier/divider value, keeping the other parameters.
func (s *ParamStore) SetMulDiv(mulDiv int) {
	p := *s.Load()
	p.MulDiv = mulDiv
	s.Store(p)
}
