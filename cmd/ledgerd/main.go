package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"ledgerd/config"
	"ledgerd/ledger"
	"ledgerd/observability/logging"
	telemetry "ledgerd/observability/otel"
	"ledgerd/rpc"
	"ledgerd/rpc/grpcsvc"
	"ledgerd/storage"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configFile := flag.String("config", "./ledgerd.toml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	env := cfg.Environment
	if override := strings.TrimSpace(os.Getenv("LEDGERD_ENV")); override != "" {
		env = override
	}
	logger := logging.Setup("ledgerd", env, logging.WithFile(cfg.LogFile))

	if err := run(cfg, env, logger); err != nil {
		logger.Error("ledgerd exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, env string, logger *slog.Logger) error {
	telemetryCfg := telemetry.FromTelemetry("ledgerd", env, cfg.Telemetry)
	for key, value := range telemetryCfg.Headers {
		logger.Debug("telemetry header configured", logging.MaskField(key, value))
	}
	shutdownTelemetry, err := telemetry.Init(context.Background(), telemetryCfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = shutdownTelemetry(context.Background())
	}()

	db, err := storage.Open(cfg.StorageBackend, cfg.DataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := ledger.OpenStore(db)
	if err != nil {
		return err
	}
	if latest, err := store.Latest(); err == nil {
		logger.Info("ledger store opened",
			slog.String("backend", cfg.StorageBackend),
			slog.Uint64("ledger_index", uint64(latest.Sequence)))
	} else {
		logger.Warn("ledger store is empty", slog.String("backend", cfg.StorageBackend))
	}

	rpcListener, err := net.Listen("tcp", cfg.RPCAddress)
	if err != nil {
		return err
	}
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		_ = rpcListener.Close()
		return err
	}

	rpcServer := rpc.NewServer(store, rpc.ServerConfig{
		RateLimit: rpc.RateLimit{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		},
		Logger: logger,
	})
	grpcServer := grpcsvc.NewGRPCServer(grpcsvc.NewServer(store, grpcsvc.WithLogger(logger)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 2)
	go func() {
		if err := rpcServer.Serve(rpcListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	go func() {
		logger.Info("grpc listening", slog.String("address", cfg.GRPCAddress))
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := rpcServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("json-rpc shutdown", slog.Any("error", err))
	}
	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("forcing grpc stop")
		grpcServer.Stop()
	}
	return runErr
}
