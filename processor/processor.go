// Package processor renders blocks of clock audio against a host transport.
package processor

import (
	"math"

	"github.com/google/uuid"
	"github.com/robmorgan/clockmaker/clock"
	"github.com/robmorgan/clockmaker/rhythm"
	"github.com/sirupsen/logrus"
)

// Processor is the block renderer wrapped around a clock.Clock. Prepare must be called before the first
// block. ProcessBlock is meant to run on the audio goroutine only; parameter changes arrive through the
// ParamStore.
type Processor struct {
	clock  *clock.Clock
	params *ParamStore

	// the snapshot currently applied to the clock
	applied *Params

	sampleRate float64
	blockSize  int
	session    uuid.UUID
	logger     *logrus.Logger
}

// New creates a Processor reading its parameters from params.
func New(params *ParamStore, logger *logrus.Logger) *Processor {
	return &Processor{
		clock:  clock.New(),
		params: params,
		logger: logger,
	}
}

// Prepare initializes the clock for a new playback session.
func (p *Processor) Prepare(sampleRate float64, blockSize int) {
	p.sampleRate = sampleRate
	p.blockSize = blockSize
	p.session = uuid.New()

	p.clock.Init(sampleRate)
	p.applied = nil
	p.applyParams()

	p.logger.WithFields(logrus.Fields{
		"session":     p.session.String(),
		"sample_rate": sampleRate,
		"block_size":  blockSize,
		"ppqn":        p.applied.Ppqn,
		"mul_div":     p.applied.MulDiv,
	}).Info("Prepared clock")
}

// ProcessBlock renders one block into every channel. The clock is resynchronized to pos before rendering,
// so each channel receives the identical pulse train. Channels are silent while the transport is inactive.
func (p *Processor) ProcessBlock(channels [][]float32, pos rhythm.Position) {
	p.applyParams()
	p.clock.SetTempo(pos.Tempo)

	// clear the buffers so a stopped transport outputs silence
	for _, ch := range channels {
		for i := range ch {
			ch[i] = 0
		}
	}

	if !pos.IsActive() {
		return
	}

	// samples elapsed since the last beat boundary, rounded to the nearest whole sample
	sampleOffset := int(math.Round(pos.SamplesSinceBeat(p.sampleRate)))
	for _, ch := range channels {
		p.clock.SetTimeAdvance(sampleOffset)
		p.clock.ProcessBlock(ch)
	}
}

// applyParams pushes a new parameter snapshot into the clock if one was published since the last block.
func (p *Processor) applyParams() {
	latest := p.params.Load()
	if latest == p.applied {
		return
	}
	if p.applied == nil || latest.Ppqn != p.applied.Ppqn {
		p.clock.SetPpqn(latest.Ppqn)
	}
	if p.applied == nil || latest.MulDiv != p.applied.MulDiv {
		p.clock.SetMulDiv(latest.MulDiv)
	}
	p.applied = latest
}

// Clock returns the underlying clock. It must not be mutated while blocks are being rendered.
func (p *Processor) Clock() *clock.Clock { return p.clock }

func (p *Processor) SampleRate() float64 { return p.sampleRate }
func (p *Processor) BlockSize() int      { return p.blockSize }
func (p *Processor) Session() uuid.UUID  { return p.session }
