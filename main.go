package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/analyst-dashboard/internal/config"
	"github.com/Zachkp/analyst-dashboard/internal/fetchlog"
	"github.com/Zachkp/analyst-dashboard/internal/gateway"
	"github.com/Zachkp/analyst-dashboard/internal/keepalive"
	applog "github.com/Zachkp/analyst-dashboard/internal/log"
	"github.com/Zachkp/analyst-dashboard/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger := applog.NewLogger("info")

	if err := run(logger); err != nil {
		logger.WithError(err).Fatal("Server exited with error")
	}
}

func run(logger *logrus.Logger) error {
	cfg, err := config.Load(logger)
	if err != nil {
		return err
	}
	applog.SetLevel(logger, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	recorder := metrics.NewRecorder()

	store, err := fetchlog.Open(cfg.FetchLogPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Error("Error closing fetch log")
		}
	}()

	// Drop expired fetch history in the background.
	go func() {
		if _, err := store.Cleanup(context.Background(), cfg.FetchLogRetention); err != nil {
			logger.WithError(err).Error("Error cleaning up fetch log")
		}
	}()

	gw := gateway.New(gateway.Options{
		CryptoBaseURL:   cfg.CryptoAPIURL,
		ExchangeBaseURL: cfg.ExchangeAPIURL,
		Timeout:         cfg.GatewayTimeout,
		UserAgent:       cfg.UserAgent,
	}, logger, recorder, store)

	r := newRouter(&server{
		gateway:    gw,
		provenance: store,
		metrics:    recorder.Handler(),
		logger:     logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	var pinger *keepalive.Pinger
	if cfg.KeepAliveEnabled {
		pinger = keepalive.New(keepalive.Options{
			URL:       cfg.PingURL(),
			Interval:  cfg.KeepAliveInterval,
			Timeout:   cfg.KeepAliveTimeout,
			UserAgent: cfg.UserAgent,
			OnPing:    recorder.ObservePing,
		}, logger)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("Dashboard listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if pinger != nil {
		pinger.Start()
	}

	// Wait for a signal before exiting
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Infof("Received %s, shutting down", s)
	case err := <-serveErr:
		if pinger != nil {
			pinger.Stop()
		}
		return errors.Wrap(err, "listen")
	}

	if pinger != nil {
		pinger.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown")
	}

	logger.Info("Shutdown complete")
	return nil
}
