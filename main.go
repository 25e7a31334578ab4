// ABOUTME: Entry point for the audiobridge player
// ABOUTME: Parses CLI flags and plays a source through the bridge into a sink
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/retroplayer/audiobridge/internal/app"
	"github.com/retroplayer/audiobridge/internal/config"
	"github.com/retroplayer/audiobridge/internal/ui"
	"github.com/retroplayer/audiobridge/internal/version"
	"github.com/retroplayer/audiobridge/pkg/audio/output"
	"github.com/retroplayer/audiobridge/pkg/audio/source"
	"github.com/retroplayer/audiobridge/pkg/bridge"
)

var (
	configPath = flag.String("config", "audiobridge.yaml", "Config file path")
	input      = flag.String("input", "", "Source: tone[:<freq>[@rate]], file.wav or file.mp3")
	sinkType   = flag.String("sink", "", "Sink: oto, wav, portaudio or null")
	dir        = flag.String("dir", "", "Output directory for the wav sink")
	muted      = flag.Bool("muted", false, "Start muted")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFile    = flag.String("log-file", "", "Log file path (default audiobridge.log with the TUI)")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, log to stderr instead")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "audiobridge: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides config values with flags given on the command line
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Playback.Input = *input
		case "sink":
			cfg.Sink.Type = *sinkType
		case "dir":
			cfg.Sink.Dir = *dir
		case "muted":
			cfg.Bridge.Muted = *muted
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-file":
			cfg.Log.File = *logFile
		}
	})
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg)

	useTUI := !*noTUI
	if useTUI && cfg.Log.File == "" {
		// TUI mode: log only to file
		cfg.Log.File = "audiobridge.log"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("product", version.Product),
		zap.String("version", version.Version),
		zap.String("sink", cfg.Sink.Type),
		zap.String("input", cfg.Playback.Input))

	rates, err := cfg.Bridge.RateTable()
	if err != nil {
		return err
	}

	// The program is only constructed here; it takes over the terminal
	// once everything that can fail has been built.
	var tuiProg *tea.Program
	var controls *ui.Controls
	var reporter bridge.Reporter = bridge.LogReporter{Logger: logger}

	if useTUI {
		controls = ui.NewControls()
		tuiProg = ui.NewProgram(controls, rates.Rates(), cfg.Bridge.Muted)
		reporter = ui.NewReporter(tuiProg)
	}

	session, err := newSession(cfg, rates, reporter, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	// Handle shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if tuiProg != nil {
		session.OnStatus(statusForwarder(tuiProg))
		go func() {
			if _, err := tuiProg.Run(); err != nil {
				logger.Error("TUI failed", zap.Error(err))
			}
		}()
		go handleControls(ctx, session, controls, cancel, logger)
	}

	runErr := session.Run(ctx)

	if tuiProg != nil {
		tuiProg.Quit()
		tuiProg.Wait()
	}

	if runErr != nil {
		logger.Error("playback failed", zap.Error(runErr))
		return runErr
	}

	st := session.Status()
	logger.Info("playback finished",
		zap.String("state", string(st.State)),
		zap.Int64("frames", st.Stats.FramesForwarded))
	return nil
}

// newSession builds the sink, source and bridge for cfg. Nothing is left
// open when it fails.
func newSession(cfg *config.Config, rates *bridge.RateTable, reporter bridge.Reporter, logger *zap.Logger) (*app.Session, error) {
	sink, err := output.New(cfg.Sink.Type, output.Options{
		Dir:             cfg.Sink.Dir,
		BufferSize:      cfg.Sink.BufferSize(),
		FramesPerBuffer: cfg.Sink.FramesPerBuffer,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	src, err := source.Open(cfg.Playback.Input)
	if err != nil {
		return nil, err
	}

	b, err := bridge.New(bridge.Config{
		Rates:    rates,
		Factory:  sink,
		Reporter: reporter,
		Logger:   logger,
	})
	if err != nil {
		src.Close()
		return nil, err
	}

	return app.NewSession(b, src, app.Config{
		ChunkFrames: cfg.Playback.ChunkFrames,
		Realtime:    cfg.Playback.IsRealtime(),
		Muted:       cfg.Bridge.Muted,
	}, logger), nil
}

// handleControls forwards TUI key presses to the session
func handleControls(ctx context.Context, session *app.Session, controls *ui.Controls, quit context.CancelFunc, logger *zap.Logger) {
	for {
		select {
		case m := <-controls.Mute:
			session.Mute(m)
		case <-controls.Quit:
			logger.Info("received quit signal from TUI")
			quit()
			return
		case <-ctx.Done():
			return
		}
	}
}

// statusForwarder sends session snapshots to the TUI, at most every 100ms
// while streaming
func statusForwarder(p *tea.Program) func(app.Status) {
	var last time.Time
	return func(st app.Status) {
		if st.State == app.StateStreaming && time.Since(last) < 100*time.Millisecond {
			return
		}
		last = time.Now()
		p.Send(ui.StatusMsg{Status: st})
	}
}
