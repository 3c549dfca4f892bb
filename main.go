package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/TrustTheVote-Project/VTP-spring-demo/backend"
	"github.com/TrustTheVote-Project/VTP-spring-demo/cliparse"
	"github.com/TrustTheVote-Project/VTP-spring-demo/middleware"
	"github.com/TrustTheVote-Project/VTP-spring-demo/mockdata"
	"github.com/TrustTheVote-Project/VTP-spring-demo/ops"
	"github.com/TrustTheVote-Project/VTP-spring-demo/router"
	"github.com/TrustTheVote-Project/VTP-spring-demo/workspace"
)

func main() {
	// Load .env if present; flags and real env still win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Assemble the gateway for the configured mode
	var gw *backend.Gateway
	if cfg.MockMode {
		provider, err := mockdata.Load(cfg.MockDataDir)
		if err != nil {
			slog.Error("mock fixture load failed", "dir", cfg.MockDataDir, "error", err)
			os.Exit(1)
		}
		gw, err = backend.New(cfg, nil, nil, provider)
		if err != nil {
			slog.Error("gateway setup failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Running in mock mode", "mock_data_dir", cfg.MockDataDir)
	} else {
		dir, err := workspace.NewDirectory(cfg.ElectionDataDir)
		if err != nil {
			slog.Error("workspace setup failed", "dir", cfg.ElectionDataDir, "error", err)
			os.Exit(1)
		}
		gw, err = backend.New(cfg, dir, ops.NewInvoker(dir, cfg), nil)
		if err != nil {
			slog.Error("gateway setup failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Election data ready", "dir", cfg.ElectionDataDir, "ballot_definition", cfg.BallotDefinition)
	}

	// Create router
	mux := router.NewRouter(gw)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
