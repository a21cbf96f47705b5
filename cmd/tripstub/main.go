// Command tripstub serves an in-memory copy of the remote trips API for
// local development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripgenie/internal/adapters/tripstub"
	"tripgenie/internal/domain"
	"tripgenie/internal/logging"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	token := flag.String("token", os.Getenv("TRIPGENIE_TOKEN"), "bearer token clients must send (empty disables auth)")
	seed := flag.Bool("seed", false, "start with a few sample trips")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "text or json")
	flag.Parse()

	logger, closeLog, err := logging.New(logging.Options{Level: *logLevel, Format: *logFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tripstub: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	stub := tripstub.New(tripstub.Options{Token: *token, Logger: logger})
	if *seed {
		stub.Seed(sampleTrips()...)
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      stub.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("tripstub listening", "addr", srv.Addr, "auth", *token != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func sampleTrips() []domain.Trip {
	now := time.Now().UTC()
	return []domain.Trip{
		{
			ID: "trip-kyoto", Destination: "Kyoto", Country: "Japan",
			StartDate: "2026-04-02", EndDate: "2026-04-08",
			Travelers: 2, TravelerType: "couple", Vibes: []string{"culture", "food"},
			CoverImage: domain.DefaultCoverImage, CreatedAt: now, Status: domain.TripStatusPlanned,
		},
		{
			ID: "trip-lisbon", Destination: "Lisbon", Country: "Portugal",
			StartDate: "2026-09-12", EndDate: "2026-09-15",
			Travelers: 4, TravelerType: "friends", Vibes: []string{"nightlife"},
			CoverImage: domain.DefaultCoverImage, CreatedAt: now, Status: domain.TripStatusDraft,
		},
	}
}
