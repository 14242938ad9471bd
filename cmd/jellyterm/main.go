package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"jellyterm/internal/config"
	"jellyterm/internal/domain"
	"jellyterm/internal/jellyfin"
	"jellyterm/internal/log"
	"jellyterm/internal/player"
	"jellyterm/internal/service"
	"jellyterm/internal/store"
	"jellyterm/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("jellyterm %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting jellyterm", "version", Version)

	firstRun := !cfg.IsConfigured()
	if firstRun {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
	}

	cache := jellyfin.NewCache(config.DefaultCachePath(), logger)
	client := jellyfin.NewClient(
		cfg.Server.URL,
		cfg.Server.Username,
		cfg.Server.Password,
		cfg.Server.DeviceID,
		cfg.Server.AcceptSelfSigned,
		cache,
		logger,
	)

	ctx := context.Background()

	fmt.Println("Authenticating...")
	if err := client.Authenticate(ctx); err != nil {
		return handleAuthFailure(err, firstRun)
	}

	fmt.Println("Fetching media... this may take a while on the first run")
	librarySvc := service.NewLibraryService(client, logger)
	if err := librarySvc.Load(ctx); err != nil {
		return fmt.Errorf("failed to fetch media: %w", err)
	}

	history, err := store.NewHistory(config.DefaultDataPath(), cfg.Server.URL, logger)
	if err != nil {
		logger.Warn("playback history unavailable", "error", err)
		history, _ = store.NewHistory("", "", logger)
	}
	defer history.Close()

	registry := player.NewRegistry(logger)
	defer registry.Cleanup()

	launcher := player.NewLauncher(cfg.Player.Command, cfg.Player.Args, registry, logger)
	playbackSvc := service.NewPlaybackService(client, launcher, history, logger)
	searchSvc := service.NewSearchService(logger)

	// A teardown signal must still terminate every spawned player
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		registry.Cleanup()
		os.Exit(1)
	}()

	model := tui.NewModel(librarySvc, searchSvc, playbackSvc, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// handleAuthFailure explains the failure and, for an existing config, offers
// to delete it so the next run reconfigures from scratch
func handleAuthFailure(err error, firstRun bool) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		fmt.Fprintln(os.Stderr, "Invalid username or password.")
	case errors.Is(err, domain.ErrForbidden):
		fmt.Fprintln(os.Stderr, "This account is denied access to the server.")
	default:
		return fmt.Errorf("authentication failed: %w", err)
	}

	if !firstRun {
		fmt.Print("Delete the current configuration? (y/n): ")
		reader := bufio.NewReader(os.Stdin)
		answer, readErr := reader.ReadString('\n')
		if readErr == nil && strings.EqualFold(strings.TrimSpace(answer), "y") {
			if delErr := config.Delete(); delErr != nil {
				return delErr
			}
			fmt.Println("Configuration deleted, run again to reconfigure.")
		}
	}

	return err
}

// runSetupFlow prompts for connection settings on first run
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to jellyterm!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for cfg.Server.URL == "" {
		fmt.Print("Enter your Jellyfin server URL (e.g., http://192.168.1.100:8096): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		cfg.Server.URL = strings.TrimRight(strings.TrimSpace(input), "/")
	}

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	cfg.Server.Username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	cfg.Server.Password = string(passwordBytes)
	fmt.Println()

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("Configuration saved.")
	return nil
}
