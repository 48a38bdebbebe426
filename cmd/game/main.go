package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/assemblyline/internal/audio"
	"github.com/tomz197/assemblyline/internal/config"
	"github.com/tomz197/assemblyline/internal/game"
	"github.com/tomz197/assemblyline/internal/logging"
	"github.com/tomz197/assemblyline/internal/loop"
	"github.com/tomz197/assemblyline/internal/settings"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.Game
	if err := config.ParseEnv(&cfg); err != nil {
		return err
	}

	// The terminal belongs to the game, so logs only go to a file.
	logger := logging.Discard()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = logging.New(f, cfg.LogLevel, cfg.LogFormat)
	}

	var repo settings.Repository
	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		logger.Warn("settings will not persist", "path", cfg.SettingsPath, "err", err)
		repo = settings.NewMemory()
	} else {
		defer store.Close()
		repo = store
	}

	player := newAudio(logger)
	if sm, ok := player.(*audio.SoundManager); ok {
		defer sm.Cleanup()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Player:   cfg.Player,
		Settings: repo,
		Audio:    player,
		Seed:     cfg.Seed,
		Logger:   logger,
	})
}

// newAudio opens the sound device, falling back to silence without one.
func newAudio(logger *log.Logger) game.AudioPlayer {
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		logger.Warn("sound disabled", "err", err)
		return audio.Silent{}
	}
	return sm
}
