// profile-chat proxy - credential-holding forwarder for the completion API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lukasdevjobs1/profile-chat/internal/proxy"
)

func main() {
	var (
		addr     = flag.String("addr", ":8787", "listen address")
		upstream = flag.String("upstream", proxy.DefaultUpstream, "completion API URL")
	)
	flag.Parse()

	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		log.Printf("PROXY: GROQ_API_KEY not set, completion requests will fail with a configuration error")
	}

	handler := proxy.NewHandler(proxy.Config{
		Upstream: *upstream,
		APIKey:   apiKey,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	r.Handle("/api/chat", handler)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("PROXY: listening on %s, upstream %s", *addr, *upstream)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "proxy: %v\n", err)
		os.Exit(1)
	case sig := <-stop:
		log.Printf("PROXY: received %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "proxy: shutdown: %v\n", err)
		os.Exit(1)
	}
}
