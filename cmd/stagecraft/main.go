package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/config"
	"github.com/lixenwraith/stagecraft/core"
)

const headlessFrames = 300

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(realMain(os.Args[1:], os.Stderr))
}

// realMain returns the process exit code so deferred cleanup runs before os.Exit
func realMain(args []string, stderr io.Writer) int {
	// Panic Recovery: restore the terminal even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	fs := flag.NewFlagSet("stagecraft", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "stagecraft.toml", "Path to the TOML configuration")
	headless := fs.Bool("headless", false, "Run without a terminal, drawing into memory")
	frames := fs.Int64("frames", 0, "Stop after N frames, 0 runs until exit (headless defaults to 300)")
	profileMode := fs.String("profile", "", "Profile the run: cpu, mem")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return exitError
	}
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		fmt.Fprintf(stderr, "unknown profile mode %q, want cpu or mem\n", *profileMode)
		return exitUsage
	}

	n := *frames
	if *headless && n == 0 {
		n = headlessFrames
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, options{headless: *headless, frames: n}, log); err != nil {
		log.Error("stagecraft exited with error", zap.Error(err))
		fmt.Fprintf(stderr, "stagecraft: %v\n", err)
		return exitError
	}
	return exitOK
}
