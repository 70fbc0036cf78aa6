package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/api"
	"github.com/erazemk/arsenal/internal/cache"
	"github.com/erazemk/arsenal/internal/config"
	"github.com/erazemk/arsenal/internal/db"
	"github.com/erazemk/arsenal/internal/logging"
	"github.com/erazemk/arsenal/internal/metrics"
	"github.com/erazemk/arsenal/internal/seed"
	"github.com/erazemk/arsenal/internal/service"
	"github.com/erazemk/arsenal/internal/store"
)

const usage = `Usage: arsenal [flags] [serve|migrate|seed]

Commands:
  serve     run the HTTP API (default)
  migrate   apply database migrations and exit
  seed      load demo data into an empty database and exit

Flags:
  -d, -db <path>          SQLite database path (default: arsenal.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -e, -env <path>         env file to load (default: .env)
  -h, -help               show this help and exit

Every flag can also be set through the environment, e.g. ARSENAL_DB.
`

func main() {
	fs := flag.NewFlagSet("arsenal", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var addr string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	var envFile string
	fs.StringVar(&envFile, "env", ".env", "")
	fs.StringVar(&envFile, "e", ".env", "")

	fs.Usage = func() { fmt.Fprint(os.Stdout, usage) }

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	command := "serve"
	switch fs.NArg() {
	case 0:
	case 1:
		command = fs.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(1))
		fs.Usage()
		os.Exit(1)
	}
	if command != "serve" && command != "migrate" && command != "seed" {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if dbPath != "" {
		cfg.DB = dbPath
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if logPath != "" {
		cfg.LogFile = logPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	code := 0
	if err := run(command, cfg, log); err != nil {
		log.Error("arsenal failed", zap.String("command", command), zap.Error(err))
		code = 1
	}
	closeLog()
	os.Exit(code)
}

func run(command string, cfg config.Config, log *zap.Logger) error {
	ctx := context.Background()

	database, err := db.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	applied, err := db.Migrate(ctx, database)
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	log.Info("database ready", zap.String("path", cfg.DB), zap.Int64s("applied_migrations", applied))

	switch command {
	case "migrate":
		return nil
	case "seed":
		st := store.New(database)
		svc := service.New(st, service.Options{Logger: log, Policy: cfg.TransitionPolicy})
		_, err := seed.Run(ctx, svc, st, log)
		return err
	}
	return serve(cfg, database, log)
}

func serve(cfg config.Config, database *sql.DB, log *zap.Logger) error {
	var statsCache cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedis(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rc.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unreachable, stats will be recomputed until it recovers",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
		statsCache = rc
	}

	m := metrics.New()
	svc := service.New(store.New(database), service.Options{
		Cache:       statsCache,
		Metrics:     m,
		Logger:      log,
		Policy:      cfg.TransitionPolicy,
		StatsTTL:    cfg.StatsTTL,
		RecentLimit: cfg.RecentLimit,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(svc, m, log),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	log.Info("server started",
		zap.String("addr", cfg.Addr),
		zap.String("transition_policy", string(cfg.TransitionPolicy)),
		zap.Bool("redis", cfg.Redis.Addr != ""),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	log.Info("server stopped, closing database")
	return nil
}
