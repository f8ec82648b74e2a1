package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simvator/src/config"
	"simvator/src/server"
	"simvator/src/sim"
	"simvator/src/traffic"
)

func main() {
	configPath := flag.String("config", "simvator.yaml", "Path to the server configuration file")
	addr := flag.String("addr", "", "Listen address, overrides the config file")
	flag.Parse()

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "path", *configPath, "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	InitLogger(cfg.SlogLevel(), cfg.LogSource)

	source, err := traffic.LoadFiles(cfg.TrafficFiles)
	if err != nil {
		slog.Error("failed to load traffic scenarios", "err", err)
		os.Exit(1)
	}

	engine := sim.New(source)
	srv := server.New(cfg.ListenAddr, engine)

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down")
	if err := srv.Shutdown(config.ShutdownGraceSecs * time.Second); err != nil {
		slog.Error("shutdown did not complete cleanly", "err", err)
	}
}
