package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/clockmaker/clock"
	"github.com/robmorgan/clockmaker/config"
	"github.com/robmorgan/clockmaker/host"
	"github.com/robmorgan/clockmaker/logger"
	"github.com/robmorgan/clockmaker/processor"
	"github.com/robmorgan/clockmaker/rhythm"
	"github.com/sirupsen/logrus"
	k8sclock "k8s.io/utils/clock"
)

const (
	commandRender  = "render"
	commandMonitor = "monitor"
)

const usage = `usage: clockmaker <render|monitor> [flags]

  render   write the clock signal to a WAV file
  monitor  run the clock in real time and report the pulse rate
`

// Run parses args and executes the selected command.
func Run(ctx context.Context, args []string) error {
	command, cfg, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return errors.WithStackTraceAndPrefix(err, "log level")
	}

	switch command {
	case commandRender:
		return render(cfg)
	case commandMonitor:
		return monitor(ctx, cfg)
	}
	return nil
}

// parseArgs builds the session config from an optional YAML file, then applies any flags given explicitly.
func parseArgs(args []string, output io.Writer) (string, config.ClockmakerConfig, error) {
	cfg := config.GetClockmakerConfig()

	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return "", cfg, fmt.Errorf("missing command")
	}

	command := args[0]
	if command != commandRender && command != commandMonitor {
		fmt.Fprint(output, usage)
		return "", cfg, fmt.Errorf("unknown command %q", command)
	}

	fs := flag.NewFlagSet("clockmaker "+command, flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "YAML session file")
	out := fs.String("out", cfg.Output, "WAV file to write (render only)")
	duration := fs.Duration("duration", cfg.Duration, "how much audio to produce")
	tempo := fs.Float64("tempo", cfg.Tempo, "transport tempo in bpm")
	ppqn := fs.Int("ppqn", cfg.Ppqn, "pulses per quarter note")
	mulDiv := fs.Int("muldiv", cfg.MulDiv, "multiply (positive) or divide (negative) the pulse rate")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args[1:]); err != nil {
		return "", cfg, err
	}

	if *configPath != "" {
		loaded, err := config.LoadClockmakerConfig(*configPath)
		if err != nil {
			return "", cfg, err
		}
		cfg = loaded
	}

	// flags win over the config file, but only when given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output = *out
		case "duration":
			cfg.Duration = *duration
		case "tempo":
			cfg.Tempo = *tempo
		case "ppqn":
			cfg.Ppqn = *ppqn
		case "muldiv":
			cfg.MulDiv = *mulDiv
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return "", cfg, errors.WithStackTrace(err)
	}

	return command, cfg, nil
}

// newSession wires a prepared processor to a rolling metronome configured from cfg.
func newSession(cfg config.ClockmakerConfig) *processor.Streamer {
	params := processor.NewParamStore(processor.Params{Ppqn: cfg.Ppqn, MulDiv: cfg.MulDiv})
	proc := processor.New(params, cfg.Logger)
	proc.Prepare(cfg.SampleRate, cfg.BlockSize)

	metronome := rhythm.NewMetronome(cfg.SampleRate)
	metronome.SetTempo(cfg.Tempo)
	if cfg.Loop.Enabled() {
		metronome.SetLoop(cfg.Loop.Start, cfg.Loop.End)
	}
	metronome.Seek(cfg.StartPosition)
	metronome.Play()

	return processor.NewStreamer(proc, metronome, cfg.Channels)
}

func render(cfg config.ClockmakerConfig) error {
	logger := cfg.Logger
	streamer := newSession(cfg)

	f, err := os.Create(cfg.Output)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	defer f.Close()

	numSamples := cfg.NumSamples()
	logger.WithFields(logrus.Fields{
		"output":    cfg.Output,
		"samples":   numSamples,
		"frequency": clock.Frequency(cfg.Tempo, cfg.Ppqn, clock.MulDivScale(cfg.MulDiv)),
	}).Info("Rendering clock...")

	if err := wav.Encode(f, beep.Take(numSamples, streamer), streamer.Format()); err != nil {
		return errors.WithStackTraceAndPrefix(err, "encode %s", cfg.Output)
	}
	return nil
}

func monitor(ctx context.Context, cfg config.ClockmakerConfig) error {
	logger := cfg.Logger
	streamer := newSession(cfg)

	counter := host.NewPulseCounter()
	h := host.New(k8sclock.RealClock{}, streamer, counter, host.BlockDuration(cfg.BlockSize, cfg.SampleRate))

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	wg := sync.WaitGroup{}
	wg.Add(1)
	start := time.Now()
	go h.Run(ctx, &wg)

	<-ctx.Done()
	wg.Wait()

	seconds := float64(counter.Samples()) / cfg.SampleRate
	rate := 0.0
	if seconds > 0 {
		rate = float64(counter.Pulses()) / seconds
	}
	logger.WithFields(logrus.Fields{
		"elapsed":  time.Since(start).Round(time.Millisecond),
		"blocks":   h.Blocks(),
		"pulses":   counter.Pulses(),
		"rate_hz":  rate,
		"expected": clock.Frequency(cfg.Tempo, cfg.Ppqn, clock.MulDivScale(cfg.MulDiv)),
	}).Info("Monitor finished")
	return nil
}
