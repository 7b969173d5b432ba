package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/drivencracy/cache"
	"github.com/danielhkuo/drivencracy/cliparse"
	"github.com/danielhkuo/drivencracy/db"
	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/metrics"
	"github.com/danielhkuo/drivencracy/middleware"
	"github.com/danielhkuo/drivencracy/mongostore"
	"github.com/danielhkuo/drivencracy/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Open the document store
	var store engine.Store
	switch cfg.DatabaseType {
	case cliparse.DatabaseMongo:
		client, err := mongostore.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("mongo connection failed", "error", err)
			os.Exit(1)
		}
		defer client.Disconnect(context.Background())

		ms := mongostore.New(client.Database(cfg.DatabaseName))
		if err := ms.EnsureIndexes(ctx); err != nil {
			slog.Error("index creation failed", "error", err)
			os.Exit(1)
		}
		store = ms

	default:
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Create schema (tables)
		if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		store = db.NewSQLStore(dbConn)
	}
	slog.Info("Database ready", "type", cfg.DatabaseType)

	m := metrics.New("drivencracy")
	opts := []engine.Option{engine.WithMetrics(m)}

	// Result cache is optional
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer rc.Close()

		opts = append(opts, engine.WithCache(rc))
		slog.Info("Result cache enabled", "ttl", cfg.CacheTTL)
	}

	eng := engine.New(store, opts...)

	// Create router
	mux := router.NewRouter(eng, m)

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
