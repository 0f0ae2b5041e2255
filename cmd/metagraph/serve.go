package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metagraph-io/metagraph/internal/cli/config"
	"github.com/metagraph-io/metagraph/internal/web"
)

var serveTypesPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over a read-only HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer log.Sync()

		store, closeStore, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		registry, mat, err := buildCatalog(serveTypesPath, log)
		if err != nil {
			return err
		}

		var cache *web.EntityCache
		if cfg.Redis.Enabled {
			client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
			cache = web.NewEntityCache(client, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		}

		handler := web.NewHandler(store, registry, mat, cache, log)
		serverCfg := web.DefaultServerConfig(handler.Routes())
		serverCfg.Address = cfg.ListenAddress()
		server := web.NewServer(serverCfg)

		errCh := make(chan error, 1)
		go func() {
			log.Info("serving catalog", zap.String("address", serverCfg.Address))
			errCh <- server.Start()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-stop:
			log.Info("shutting down", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveTypesPath, "types", "", "path to type definitions JSON")
}
