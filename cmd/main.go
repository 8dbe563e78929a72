package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saeidalz13/battleship-board/api"
	"github.com/saeidalz13/battleship-board/db"
	"github.com/saeidalz13/battleship-board/db/sqlc"
	"github.com/saeidalz13/battleship-board/internal/config"
	cerr "github.com/saeidalz13/battleship-board/internal/error"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalln(err)
	}

	board, err := mb.LoadBoardFromFile(cfg.BoardFile)
	if err != nil {
		if errors.Is(err, cerr.ErrBoardFileNotFound) {
			log.Fatalf("board file not found: %s\n", cfg.BoardFile)
		}
		log.Fatalf("failed to load board: %v\n", err)
	}

	opts := []api.Option{api.WithPort(cfg.Port), api.WithStage(cfg.Stage)}
	if cfg.AnalyticsEnabled() {
		psqlDb := db.MustConnectToDb(cfg.DatabaseUrl, cfg.MigrationDir)
		defer psqlDb.Close()
		opts = append(opts, api.WithQuerier(sqlc.New(psqlDb)))
	} else {
		log.Println("DATABASE_URL not set; analytics disabled")
	}

	server := api.NewServer(board, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go server.SessionManager().CleanupPeriodically(ctx)

	// no read or write timeouts; they would outlive the upgrade and cut websocket sessions
	httpServer := &http.Server{
		Addr:              server.Addr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	shutdown := make(chan struct{})
	go handleSignals(httpServer, cancel, shutdown)

	log.Printf("Listening to %s (stage: %s)\n", httpServer.Addr, cfg.Stage)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v\n", err)
	}

	<-shutdown
	log.Println("server stopped gracefully")
}

func handleSignals(httpServer *http.Server, stopCleanup context.CancelFunc, shutdown chan struct{}) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	<-sig
	log.Println("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("http server shutdown error: %v\n", err)
	}
	stopCleanup()

	close(shutdown)
}
