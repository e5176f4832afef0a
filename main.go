// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/tally-board/auth"
	"github.com/danielhkuo/tally-board/cliparse"
	"github.com/danielhkuo/tally-board/db"
	"github.com/danielhkuo/tally-board/kvstore"
	"github.com/danielhkuo/tally-board/metrics"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/router"
	"github.com/danielhkuo/tally-board/tally"
)

func main() {
	var err error

	// A missing .env is fine; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed to load .env:", err)
		os.Exit(1)
	}

	setupLogging()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.PrintAdminKey {
		fmt.Println(auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the database
	dbConn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	if cfg.DatabaseType == db.DriverSQLite {
		// one writer at a time
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.PingContext(ctx); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	queries := db.NewQueries(dbConn, cfg.DatabaseType)
	if err := queries.EnsureDonationSettings(ctx, uuid.New().String(), time.Now()); err != nil {
		slog.Error("donation settings seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "driver", cfg.DatabaseType)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewTally(reg)

	// Epoch anchors; without the file they live in memory until restart
	var epochStore kvstore.Store
	bolt, err := kvstore.OpenBolt(cfg.EpochDBPath)
	if err != nil {
		slog.Warn("epoch store unavailable, anchors will not survive a restart", "path", cfg.EpochDBPath, "error", err)
	} else {
		defer bolt.Close()
		epochStore = bolt
	}

	static := tally.DefaultStaticRegistry()
	if cfg.ElectionsFile != "" {
		static, err = tally.LoadStaticRegistry(cfg.ElectionsFile)
		if err != nil {
			slog.Error("elections file rejected", "path", cfg.ElectionsFile, "error", err)
			os.Exit(1)
		}
	}

	clock := tally.SystemClock{}
	engine := tally.NewEngine(tally.EngineConfig{
		Registry: tally.NewMultiRegistry(static, tally.NewSQLRegistry(queries, clock)),
		Epochs:   tally.NewEpochRegistry(epochStore, clock, m),
		Clock:    clock,
		Metrics:  m,
	})

	scheduler := tally.NewScheduler(cfg.RecomputeInterval, engine.Recompute)
	if err := scheduler.Start(ctx); err != nil {
		slog.Error("scheduler failed to start", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	// Create router
	mux := router.NewRouter(queries, engine, cfg, reg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		// no recompute may run once the database is closing
		scheduler.Stop()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "recompute_interval", cfg.RecomputeInterval)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// setupLogging uses readable text on a terminal and JSON everywhere else.
func setupLogging() {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
