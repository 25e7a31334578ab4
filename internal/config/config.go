// ABOUTME: YAML configuration for the audiobridge player
// ABOUTME: Loads sink, bridge, playback and logging settings with defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/retroplayer/audiobridge/pkg/bridge"
)

type Config struct {
	Sink     SinkConfig     `yaml:"sink"`
	Bridge   BridgeConfig   `yaml:"bridge"`
	Playback PlaybackConfig `yaml:"playback"`
	Log      LogConfig      `yaml:"log"`
}

type SinkConfig struct {
	Type            string `yaml:"type"`
	Dir             string `yaml:"dir"`
	BufferMS        int    `yaml:"buffer_ms"`
	FramesPerBuffer int    `yaml:"frames_per_buffer"`
}

type BridgeConfig struct {
	Rates []int `yaml:"rates"`
	Muted bool  `yaml:"muted"`
}

type PlaybackConfig struct {
	Input       string `yaml:"input"`
	ChunkFrames int    `yaml:"chunk_frames"`
	Realtime    *bool  `yaml:"realtime"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// Load reads path, expands environment variables and applies defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Sink.Type == "" {
		c.Sink.Type = "oto"
	}
	if c.Sink.Dir == "" {
		c.Sink.Dir = "./recordings"
	}
	if c.Sink.FramesPerBuffer == 0 {
		c.Sink.FramesPerBuffer = 512
	}
	if len(c.Bridge.Rates) == 0 {
		c.Bridge.Rates = append([]int(nil), bridge.DefaultRates...)
	}
	if c.Playback.Input == "" {
		c.Playback.Input = "tone"
	}
	if c.Playback.ChunkFrames == 0 {
		c.Playback.ChunkFrames = 1024
	}
	if c.Playback.Realtime == nil {
		realtime := true
		c.Playback.Realtime = &realtime
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Validate checks values the loaders cannot default
func (c *Config) Validate() error {
	switch c.Sink.Type {
	case "oto", "wav", "portaudio", "null":
	default:
		return fmt.Errorf("invalid sink type: %q (supported: oto, wav, portaudio, null)", c.Sink.Type)
	}
	if c.Sink.BufferMS < 0 {
		return fmt.Errorf("invalid buffer_ms: %d", c.Sink.BufferMS)
	}
	if c.Playback.ChunkFrames <= 0 {
		return fmt.Errorf("invalid chunk_frames: %d", c.Playback.ChunkFrames)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %q (supported: console, json)", c.Log.Format)
	}
	return nil
}

// BufferSize returns the sink buffer length
func (s SinkConfig) BufferSize() time.Duration {
	return time.Duration(s.BufferMS) * time.Millisecond
}

// IsRealtime reports whether playback is paced to the sample rate
func (p PlaybackConfig) IsRealtime() bool {
	return p.Realtime == nil || *p.Realtime
}

// RateTable validates and returns the configured rate table
func (b BridgeConfig) RateTable() (*bridge.RateTable, error) {
	return bridge.NewRateTable(b.Rates)
}

// NewLogger builds a zap logger writing to the configured file, or stderr
func (l LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if l.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = l.Format
	zc.DisableStacktrace = true

	output := "stderr"
	if l.File != "" {
		output = l.File
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{output}

	return zc.Build()
}
