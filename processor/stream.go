package processor

import (
	"github.com/faiface/beep"
	"github.com/robmorgan/clockmaker/rhythm"
)

// DefaultBlockSize is used when a Streamer wraps a Processor that was prepared without a block size.
const DefaultBlockSize = 512

// Transport is a host transport the renderer can move forward, such as rhythm.Metronome.
type Transport interface {
	rhythm.PlayHead

	// Advance moves the transport forward by the number of samples just rendered.
	Advance(samples int)
}

// Streamer renders clock audio block by block against a transport. It implements beep.Streamer, so the
// clock can be encoded or mixed with anything beep supports.
type Streamer struct {
	proc      *Processor
	transport Transport
	channels  [][]float32
	blockSize int

	// read offset into the current block
	offset int
}

var _ beep.Streamer = (*Streamer)(nil)

// NewStreamer creates a Streamer rendering numChannels channels. proc must already be prepared.
func NewStreamer(proc *Processor, transport Transport, numChannels int) *Streamer {
	blockSize := proc.BlockSize()
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if numChannels < 1 {
		numChannels = 1
	}

	channels := make([][]float32, numChannels)
	for i := range channels {
		channels[i] = make([]float32, blockSize)
	}

	return &Streamer{
		proc:      proc,
		transport: transport,
		channels:  channels,
		blockSize: blockSize,
		offset:    blockSize,
	}
}

// RenderBlock renders the next block and advances the transport past it. The returned buffers are reused by
// the next call.
func (s *Streamer) RenderBlock() [][]float32 {
	s.proc.ProcessBlock(s.channels, s.transport.GetPosition())
	s.transport.Advance(s.blockSize)
	s.offset = 0
	return s.channels
}

// Stream fills samples with the first two channels, duplicating a mono clock to both sides.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	left := 0
	right := 0
	if len(s.channels) > 1 {
		right = 1
	}

	for n < len(samples) {
		if s.offset >= s.blockSize {
			s.RenderBlock()
		}
		samples[n][0] = float64(s.channels[left][s.offset])
		samples[n][1] = float64(s.channels[right][s.offset])
		s.offset++
		n++
	}
	return n, true
}

// Err always returns nil, rendering cannot fail.
func (s *Streamer) Err() error {
	return nil
}

// Format returns a 16 bit beep format matching the processor sample rate. beep carries at most two channels.
func (s *Streamer) Format() beep.Format {
	numChannels := len(s.channels)
	if numChannels > 2 {
		numChannels = 2
	}
	return beep.Format{
		SampleRate:  beep.SampleRate(int(s.proc.SampleRate())),
		NumChannels: numChannels,
		Precision:   2,
	}
}
