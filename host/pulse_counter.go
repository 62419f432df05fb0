package host

import "sync"

// PulseCounter is a Sink that counts rising edges on the first channel.
type PulseCounter struct {
	mu sync.Mutex

	last        float32
	pulses      int64
	blockPulses int64
	samples     int64
}

func NewPulseCounter() *PulseCounter {
	return &PulseCounter{}
}

// WriteBlock counts the pulses in a block. Silence between pulses resets edge detection.
func (pc *PulseCounter) WriteBlock(channels [][]float32) error {
	if len(channels) == 0 {
		return nil
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.blockPulses = 0
	for _, s := range channels[0] {
		if s > 0 && pc.last <= 0 {
			pc.blockPulses++
		}
		pc.last = s
	}
	pc.pulses += pc.blockPulses
	pc.samples += int64(len(channels[0]))
	return nil
}

// Pulses returns the total number of rising edges seen.
func (pc *PulseCounter) Pulses() int64 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.pulses
}

// BlockPulses returns the rising edges in the most recent block.
func (pc *PulseCounter) BlockPulses() int64 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.blockPulses
}

// Samples returns the total number of samples seen.
func (pc *PulseCounter) Samples() int64 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.samples
}
