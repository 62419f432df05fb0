package config

import (
	"fmt"
	"time"

	"github.com/robmorgan/clockmaker/logger"
	"github.com/sirupsen/logrus"
)

// GetClockmakerConfig returns the default configuration
func GetClockmakerConfig() ClockmakerConfig {
	val, _ := NewClockmakerConfig()
	return val
}

// ClockmakerConfig represents options that configure the global behavior of the program
type ClockmakerConfig struct {
	// Project logger
	Logger *logrus.Logger `yaml:"-"`

	// LogLevel is a logrus level name, e.g. "debug"
	LogLevel string `yaml:"log_level"`

	// The audio sample rate in Hz
	SampleRate float64 `yaml:"sample_rate"`

	// The number of samples rendered per block
	BlockSize int `yaml:"block_size"`

	// The number of output channels. Every channel carries the same clock.
	Channels int `yaml:"channels"`

	// The transport tempo in bpm
	Tempo float64 `yaml:"tempo"`

	// Pulses per quarter note
	Ppqn int `yaml:"ppqn"`

	// The clock multiplier/divider
	MulDiv int `yaml:"mul_div"`

	// Where the transport starts, in beats
	StartPosition float64 `yaml:"start_position"`

	// An optional loop region
	Loop LoopConfig `yaml:"loop"`

	// How much audio to render
	Duration time.Duration `yaml:"duration"`

	// The WAV file written by the render command
	Output string `yaml:"output"`
}

// LoopConfig is a transport loop region measured in beats. A zero value disables looping.
type LoopConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Enabled reports whether a loop region was configured.
func (l LoopConfig) Enabled() bool {
	return l.Start != 0 || l.End != 0
}

// Create a new ClockmakerConfig object with reasonable defaults for real usage
func NewClockmakerConfig() (ClockmakerConfig, error) {
	return ClockmakerConfig{
		Logger:     logger.GetProjectLogger(),
		LogLevel:   "info",
		SampleRate: 48000,
		BlockSize:  512,
		Channels:   1,
		Tempo:      120,
		Ppqn:       PpqnParameter.Default,
		MulDiv:     MulDivParameter.Default,
		Duration:   10 * time.Second,
		Output:     "clock.wav",
	}, nil
}

// InvalidConfigError is returned when a configuration value is out of range.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (err InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config value for %s: %s", err.Field, err.Reason)
}

// Validate checks every value is usable by the renderer.
func (c ClockmakerConfig) Validate() error {
	switch {
	case !(c.SampleRate > 0):
		return InvalidConfigError{Field: "sample_rate", Reason: fmt.Sprintf("%v is not positive", c.SampleRate)}
	case c.BlockSize <= 0:
		return InvalidConfigError{Field: "block_size", Reason: fmt.Sprintf("%d is not positive", c.BlockSize)}
	case c.Channels < 1:
		return InvalidConfigError{Field: "channels", Reason: fmt.Sprintf("need at least one channel, got %d", c.Channels)}
	case !(c.Tempo > 0):
		return InvalidConfigError{Field: "tempo", Reason: fmt.Sprintf("%v is not positive", c.Tempo)}
	case !PpqnParameter.Contains(c.Ppqn):
		return InvalidConfigError{Field: "ppqn", Reason: PpqnParameter.describeRange(c.Ppqn)}
	case !MulDivParameter.Contains(c.MulDiv):
		return InvalidConfigError{Field: "mul_div", Reason: MulDivParameter.describeRange(c.MulDiv)}
	case c.Loop.Enabled() && c.Loop.End <= c.Loop.Start:
		return InvalidConfigError{Field: "loop", Reason: fmt.Sprintf("end %v is not after start %v", c.Loop.End, c.Loop.Start)}
	case c.Duration < 0:
		return InvalidConfigError{Field: "duration", Reason: "cannot be negative"}
	}
	return nil
}

// NumSamples returns how many samples Duration lasts at SampleRate.
func (c ClockmakerConfig) NumSamples() int {
	return int(c.Duration.Seconds() * c.SampleRate)
}
