package main

import (
	"chat-gateway/auth"
	"chat-gateway/gateway"
	"chat-gateway/internal"
	"chat-gateway/repositories"
	"chat-gateway/services"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/shirou/gopsutil/process"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns of the socket server.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB), shared with the REST application
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Stores & verifier
	tokens := repositories.NewTokenRepository(db)
	presence := repositories.NewPresenceStore(db, log)
	directory := repositories.NewDirectoryRepository(db)
	verifier := auth.NewVerifier(tokens)

	// 4. Gateway wiring: registry, broadcaster, event service, handler
	registry := gateway.NewRegistry()
	broadcaster := gateway.NewBroadcaster(registry, log)
	events := services.NewEventService(broadcaster, directory, log)
	handler := gateway.NewHandler(log, registry, verifier, presence, events,
		config.SendBufferSize, config.WriteTimeout)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Optional debug inspector
	if config.DebugPort != nil {
		proc, _ := process.NewProcess(int32(os.Getpid()))
		statsProvider := func() map[string]any {
			total, authenticated := registry.Count()
			stats := map[string]any{
				"Connections":   total,
				"Authenticated": authenticated,
				"Time":          time.Now().Format(time.RFC822),
			}
			if proc != nil {
				if mem, err := proc.MemoryInfo(); err == nil {
					stats["RSS_MB"] = mem.RSS / 1024 / 1024
				}
				if cpu, err := proc.CPUPercent(); err == nil {
					stats["CPU"] = fmt.Sprintf("%.1f%%", cpu)
				}
			}
			return stats
		}
		internal.StartDebugServer(db, *config.DebugPort, "/inspect", internal.DefaultMapper, statsProvider)
		log.Info("Debug inspector started", "port", *config.DebugPort)
	}

	// 7. Socket server
	mux := http.NewServeMux()
	mux.Handle("/socket", handler)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: mux}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting socket server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("socket server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Shutdown incomplete", "err", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}
