package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/eventlog"
	"github.com/danielhkuo/quickly-vote/listener"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/router"
	"github.com/danielhkuo/quickly-vote/tally"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Event log: file plus stderr
	logger, logFile, err := eventlog.Open(cfg.LogFile, os.Stderr)
	if err != nil {
		slog.Error("failed to open event log", "path", cfg.LogFile, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	// Ballot
	names, err := election.LoadOptionsFile(cfg.OptionsFile)
	if err != nil {
		slog.Error("failed to load options", "path", cfg.OptionsFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Options loaded", "path", cfg.OptionsFile, "count", len(names))

	// Snapshot database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	store := db.NewSnapshotStore(dbConn)

	e, err := election.New(names, election.Config{
		MaxVoters: cfg.MaxVoters,
		Publishers: []election.Publisher{
			tally.NewReportFile(cfg.ResultsFile),
			store,
		},
	})
	if err != nil {
		slog.Error("failed to create election", "error", err)
		os.Exit(1)
	}

	srv, err := listener.Listen(":"+strconv.Itoa(cfg.Port), e, cfg, logger)
	if err != nil {
		slog.Error("failed to start listener", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional read-only status API
	var httpServer *http.Server
	if cfg.HTTPPort > 0 {
		httpServer = &http.Server{
			Handler: middleware.CORS(router.NewRouter(e, store)),
			Addr:    ":" + strconv.Itoa(cfg.HTTPPort),
		}
		go func() {
			slog.Info("Status API listening", "port", cfg.HTTPPort)
			err := httpServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Status API closed", "error", err)
			}
		}()
	}

	slog.Info("Election open",
		"port", cfg.Port,
		"options", len(names),
		"max_voters", cfg.MaxVoters,
		"admin", cfg.AdminID,
	)

	if err := srv.Serve(ctx); err != nil {
		slog.Error("Server closed", "error", err)
	}
	if httpServer != nil {
		httpServer.Close()
	}

	if snap, ok := e.FinalSnapshot(); ok {
		slog.Info("Server closed", "snapshot", snap.ID, "total_votes", snap.TotalVotes)
	} else {
		slog.Info("Server closed", "election", "still open")
	}
}
