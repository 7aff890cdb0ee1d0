// Command xrsim replays scripted hand interaction scenarios and reports
// release velocities, slider values and door angles.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/tphakala/go-xr-interact/internal/loader"
	"github.com/tphakala/go-xr-interact/internal/logging"
	"github.com/tphakala/go-xr-interact/internal/scene"
	"github.com/tphakala/go-xr-interact/internal/viewer"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	verbose := flag.Bool("v", false, "Verbose output (debug logging)")
	logLevel := flag.String("log-level", defaultLogLevel, "Log level: debug, info, warn, error")
	digest := flag.Bool("digest", false, "Print the trace digest of each replay")
	parallel := flag.Int("parallel", runtime.NumCPU(), "Number of scenarios replayed concurrently")
	watch := flag.Bool("watch", false, "Play the first scenario live in the terminal")
	speed := flag.Float64("speed", defaultSpeed, "Playback speed for -watch")
	profileDir := flag.String("profile", "", "Write a CPU profile to this directory")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] scenario.yaml [scenario.hjson ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s throw.yaml                  # Replay and report\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -digest -parallel 4 *.yaml  # Fingerprint many replays\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -watch -speed 0.5 door.yaml # Watch in slow motion\n", os.Args[0])
		return fmt.Errorf("no scenario given")
	}

	level := *logLevel
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.Quiet).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		return watchScenario(args[0], *speed, logger)
	}

	reports, err := replayAll(ctx, args, *parallel, logger)
	if err != nil {
		return err
	}
	for i, r := range reports {
		if err := writeReport(os.Stdout, args[i], r, *digest); err != nil {
			return err
		}
	}
	return nil
}

func watchScenario(path string, speed float64, logger *zap.Logger) error {
	sc, err := loader.Load(path)
	if err != nil {
		return err
	}
	// Logging to stderr would tear the full-screen view.
	s, err := scene.New(sc, zap.NewNop())
	if err != nil {
		return err
	}
	logger.Debug("watching scenario", zap.String("path", path), zap.Int("frames", s.Frames()))

	program := tea.NewProgram(viewer.New(s, speed), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
