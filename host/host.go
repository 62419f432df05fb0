// Package host drives a block renderer in wall clock time, the way an audio device callback would.
package host

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/robmorgan/clockmaker/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// BlockSource renders the next block of audio. processor.Streamer satisfies it.
type BlockSource interface {
	RenderBlock() [][]float32
}

// Sink consumes rendered blocks. The buffers are only valid for the duration of the call.
type Sink interface {
	WriteBlock(channels [][]float32) error
}

// Host pulls one block from its source every block period and hands it to its sink.
type Host struct {
	clock         clock.Clock
	source        BlockSource
	sink          Sink
	blockDuration time.Duration

	mu       sync.Mutex
	blocks   int64
	failures int64
}

// New creates a Host. blockDuration is normally blockSize / sampleRate.
func New(clk clock.Clock, source BlockSource, sink Sink, blockDuration time.Duration) *Host {
	return &Host{
		clock:         clk,
		source:        source,
		sink:          sink,
		blockDuration: blockDuration,
	}
}

// BlockDuration returns how long a block of numSamples lasts at sampleRate.
func BlockDuration(numSamples int, sampleRate float64) time.Duration {
	return time.Duration(math.Round(float64(numSamples) * float64(time.Second) / sampleRate))
}

// RenderBlock renders a single block and delivers it to the sink.
func (h *Host) RenderBlock() error {
	channels := h.source.RenderBlock()
	err := h.sink.WriteBlock(channels)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.blocks++
	if err != nil {
		h.failures++
	}
	return err
}

// Run renders blocks until ctx is cancelled. Sink errors are logged and counted, a late or failing sink
// never stops the clock.
func (h *Host) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := logger.GetProjectLogger()
	logger.WithField("block_duration", h.blockDuration).Info("Host started")

	t := h.clock.NewTimer(h.blockDuration)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WithFields(logrus.Fields{"blocks": h.Blocks(), "failures": h.Failures()}).Info("Host shutdown")
			return
		case <-t.C():
			if err := h.RenderBlock(); err != nil {
				logger.Errorf("error writing block: %v", err)
			}
			t.Reset(h.blockDuration)
		}
	}
}

// Blocks returns the number of blocks rendered so far.
func (h *Host) Blocks() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.blocks
}

// Failures returns the number of blocks the sink failed to accept.
func (h *Host) Failures() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failures
}
