package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/contract-ledger/backend/internal/alerts"
	"github.com/contract-ledger/backend/internal/cache"
	"github.com/contract-ledger/backend/internal/config"
	"github.com/contract-ledger/backend/internal/ledger"
	v1 "github.com/contract-ledger/backend/pkg/controllers/v1"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/contract-ledger/backend/pkg/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if cfg.DB.Driver == models.DriverSQLite {
		err = os.MkdirAll(filepath.Dir(cfg.DB.DSN), os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	db, err := models.Connect(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A second signal during shutdown terminates immediately
	go func() {
		<-ctx.Done()
		stop()
	}()

	co := v1.NewController(db, ledger.WithMaxRetries(cfg.Ledger.MaxRetries))

	if cfg.Cache.RedisAddr != "" {
		redis, err := cache.NewRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.DashboardTTL)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		defer redis.Close()

		co.Cache = redis
		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Dashboard cache")
	}

	var scannerOpts []alerts.Option
	if cfg.Alerts.TelegramToken != "" {
		notifier, err := alerts.NewTelegramNotifier(cfg.Alerts.TelegramToken, cfg.Alerts.TelegramChatID)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		scannerOpts = append(scannerOpts, alerts.WithNotifier(notifier))
		log.Info().Int64("chat", cfg.Alerts.TelegramChatID).Msg("Telegram notifications")
	}

	// Created after the cache is set so that background scans invalidate it
	co.Scanner = alerts.NewScanner(db, co.ScannerOptions(scannerOpts...)...)

	if cfg.Alerts.ScanInterval > 0 {
		go co.Scanner.Run(ctx, cfg.Alerts.ScanInterval)
	}

	r, teardown, err := router.Config(cfg.HTTP.APIURL, router.Options{
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		EnablePprof:      cfg.HTTP.EnablePprof,
	})
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(co, r.Group("/"))

	if err := router.Serve(ctx, r, cfg.HTTP.ListenAddr); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
