package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Brownie44l1/tinyhttp/internal/router"
	"github.com/Brownie44l1/tinyhttp/internal/routes"
	"github.com/Brownie44l1/tinyhttp/internal/server"
)

func main() {
	config := server.DefaultConfig()

	flag.StringVar(&config.Directory, "directory", "", "root directory for /files (file routes answer 404 when empty)")
	flag.StringVar(&config.Addr, "addr", config.Addr, "address to listen on")
	quiet := flag.Bool("quiet", false, "disable logging")
	flag.Parse()

	if *quiet {
		config.Logger = &server.NullLogger{}
	} else {
		config.Logger = server.NewDefaultLogger()
	}

	r := router.New()
	routes.Register(r)

	srv := server.New(config, r)
	// Recovery sits innermost so a recovered 404 is still logged and counted
	srv.Use(server.LoggingMiddleware(srv.Logger))
	srv.Use(server.MetricsMiddleware(srv.Metrics()))
	srv.Use(server.RecoveryMiddleware(srv.Logger))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, server.ErrServerClosed) {
			srv.Logger.Error("server stopped", server.Field{Key: "error", Value: err})
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	srv.Logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		srv.Logger.Error("shutdown failed", server.Field{Key: "error", Value: err})
		os.Exit(1)
	}

	stats := srv.Stats()
	fmt.Printf("requests=%d ok=%d created=%d not_found=%d avg_latency=%s\n",
		stats.RequestsTotal, stats.OK, stats.Created, stats.NotFound, stats.AverageLatency)
}
