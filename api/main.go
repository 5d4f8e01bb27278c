// Command api runs the reference in-memory /items server for local
// development of the inventory client.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/rogerio-castellano/inventory-client/internal/config"
	"github.com/rogerio-castellano/inventory-client/internal/itemsapi"
	"github.com/rogerio-castellano/inventory-client/internal/logging"
	"github.com/rogerio-castellano/inventory-client/internal/models"
)

func main() {
	fs := pflag.NewFlagSet("api", pflag.ContinueOnError)
	config.ServerFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var seed []models.Product
	if cfg.Seed {
		seed = itemsapi.SeedProducts()
	}
	handler := itemsapi.NewHandler(itemsapi.NewStore(seed...), log)

	var limiter *itemsapi.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = itemsapi.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, 5*time.Minute)
		go limiter.Cleanup(ctx, time.Minute)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           itemsapi.NewRouter(handler, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("items api listening", "addr", cfg.Addr, "seeded", cfg.Seed)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
