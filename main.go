// profile-chat - A terminal chat assistant for the LukG developer portfolio.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lukasdevjobs1/profile-chat/internal/config"
	"github.com/lukasdevjobs1/profile-chat/internal/github"
	"github.com/lukasdevjobs1/profile-chat/internal/orchestrator"
	"github.com/lukasdevjobs1/profile-chat/internal/prompt"
	"github.com/lukasdevjobs1/profile-chat/internal/provider"
	"github.com/lukasdevjobs1/profile-chat/internal/stream"
	"github.com/lukasdevjobs1/profile-chat/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// PROGRAM SENDER
// =============================================================================

// programSender defers the Bubble Tea program reference so the boundary can
// be built before the program exists. Messages sent before the program is
// attached are dropped; nothing streams before p.Run anyway.
type programSender struct {
	mu      sync.Mutex
	program *tea.Program
}

func (s *programSender) attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

func (s *programSender) Send(msg any) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// =============================================================================
// MAIN
// =============================================================================

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file (default ~/.profile-chat/config.toml)")
		showVersion = flag.Bool("version", false, "print version and exit")
		verbose     = flag.Bool("verbose", false, "log to stderr instead of discarding")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("profile-chat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// log.Printf output corrupts the alternate screen, so it is discarded
	// unless -verbose redirects it.
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile-chat: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "profile-chat: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func run(cfg *config.Config, configPath string) error {
	// GitHub metadata source with TTL cache
	ghClient := github.NewClientWithConfig(&github.ClientConfig{
		BaseURL:           cfg.GitHub.BaseURL,
		Username:          cfg.GitHub.Username,
		RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
	})
	ghCache := github.NewCache(ghClient, cfg.CacheTTL())
	enricher := prompt.NewEnricher(ghCache)

	// Providers: remote proxy first, local model second
	groq := provider.NewGroq(&provider.GroqConfig{
		ProxyURL:    cfg.Provider.ProxyURL,
		Model:       cfg.Provider.Model,
		Temperature: cfg.Provider.Temperature,
		MaxTokens:   cfg.Provider.MaxTokens,
		Timeout:     cfg.ProviderTimeout(),
	})
	native := provider.NewNative(provider.NewOllamaFactory(provider.OllamaConfig{}))
	router := provider.NewRouter(groq, native)

	// Conversation core
	sender := &programSender{}
	boundary := chat.NewProgramBoundary(sender)
	initMin, initMax, fragMin, fragMax := cfg.PacingBounds()
	orch := orchestrator.New(orchestrator.Config{
		SystemPrompt:  cfg.SystemPrompt(),
		Enricher:      enricher,
		Router:        router,
		Boundary:      boundary,
		Pacer:         stream.NewPacer(initMin, initMax, fragMin, fragMax),
		RelayInterval: cfg.RelayInterval(),
	})
	defer orch.Close()

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := orch.Initialize(initCtx); err != nil {
		log.Printf("MAIN: no provider available, continuing in degraded mode: %v", err)
	}

	// Config hot reload keeps the running widget pointed at fresh settings
	// that can change without a restart.
	if path := resolveConfigPath(configPath); path != "" {
		watcher, err := config.NewWatcher(path, func(next *config.Config) {
			ghClient.SetUsername(next.GitHub.Username)
			ghCache.SetTTL(next.CacheTTL())
		})
		if err == nil {
			if err := watcher.Watch(); err != nil {
				log.Printf("MAIN: config watch failed: %v", err)
			}
			defer watcher.Close()
		}
	}

	m := chat.New(orch, cfg.Widget.Name, cfg.Widget.FirstMessage)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	sender.attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running chat: %w", err)
	}
	return nil
}

// resolveConfigPath returns the config file to watch, empty when none
// exists on disk.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	path, err := config.ConfigPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
