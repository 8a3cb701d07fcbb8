package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	personhandler "peoplebook/internal/person/handler"
	personmetrics "peoplebook/internal/person/metrics"
	personservice "peoplebook/internal/person/service"
	personstore "peoplebook/internal/person/store"
	"peoplebook/internal/platform/config"
	"peoplebook/internal/platform/httpserver"
	"peoplebook/internal/platform/logger"
	"peoplebook/internal/platform/middleware"
)

var cfgFile string

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "peoplebook",
		Short: "Peoplebook serves the person record REST API",
		Long: `Peoplebook is a small personal-information service: a single
collection of person records (name, birth date, email, address, geography)
exposed as a JSON REST API under /api/users.

Configuration precedence (highest to lowest):
  1. CLI flags (--addr, --database-url, ...)
  2. Environment variables (PEOPLEBOOK_*)
  3. Config file (peoplebook.yaml)
  4. Built-in defaults

Without --database-url the server keeps records in memory, which is handy
for local development but loses data on restart.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runServe,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ./peoplebook.yaml)")
	rootCmd.Flags().String("addr", config.Defaults().Addr, "HTTP listen address")
	rootCmd.Flags().String("database-url", "", "PostgreSQL connection string (empty: in-memory store)")
	rootCmd.Flags().String("log-format", config.Defaults().LogFormat, "log format: text or json")
	rootCmd.Flags().String("log-level", config.Defaults().LogLevel, "log level: debug, info, warn, error")

	return rootCmd
}

// runServe wires high-level dependencies and keeps the server lifecycle
// small. Business logic lives in the internal service packages.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogFormat, cfg.LogLevel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var store personstore.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		pg := personstore.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		store = pg
		log.Info("using postgres store")
	} else {
		store = personstore.NewInMemory()
		log.Info("using in-memory store; records are lost on restart")
	}

	svc := personservice.New(store,
		personservice.WithLogger(log),
		personservice.WithMetrics(personmetrics.New()),
	)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestContext)
	router.Handle("/metrics", promhttp.Handler())
	personhandler.New(svc, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting peoplebook", "addr", cfg.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
