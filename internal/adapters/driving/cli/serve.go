package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgepoint/hublink/internal/adapters/driven/cache"
	"github.com/forgepoint/hublink/internal/adapters/driving/httpapi"
	"github.com/forgepoint/hublink/internal/config"
	"github.com/forgepoint/hublink/internal/connectors/hubspot"
	"github.com/forgepoint/hublink/internal/core/ports/driven"
	"github.com/forgepoint/hublink/internal/core/services"
	"github.com/forgepoint/hublink/internal/logger"
	hubspotnorm "github.com/forgepoint/hublink/internal/normalisers/hubspot"
)

const shutdownTimeout = 10 * time.Second

// serveCmd starts the integration HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the integration HTTP server",
	Long: `Serve starts the HTTP API that drives the HubSpot OAuth flow and
serves normalised CRM items. Configuration comes from hublink.yaml
and HUBLINK_* environment variables.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if err := logger.Init(verbose, cfg.Log.Format); err != nil {
			return fmt.Errorf("initialise logger: %w", err)
		}
		defer logger.Sync()

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		var store driven.TransientStore
		switch cfg.Store.Backend {
		case "memory":
			logger.Warn("using in-memory state store, OAuth state will not survive restarts")
			store = cache.NewMemoryStore()
		default:
			redisStore, err := cache.NewRedisStore(cache.RedisConfig{
				Addr:     cfg.Store.Addr,
				Password: cfg.Store.Password,
				DB:       cfg.Store.DB,
			})
			if err != nil {
				return fmt.Errorf("connect to redis: %w", err)
			}
			defer redisStore.Close()
			store = redisStore
		}

		hubCfg := &hubspot.Config{
			ClientID:     cfg.HubSpot.ClientID,
			ClientSecret: cfg.HubSpot.ClientSecret,
			RedirectURI:  cfg.HubSpot.RedirectURI,
			AuthURL:      cfg.HubSpot.AuthURL,
			TokenURL:     cfg.HubSpot.TokenURL,
			APIBaseURL:   cfg.HubSpot.APIBaseURL,
			AppBaseURL:   cfg.HubSpot.AppBaseURL,
		}

		service := services.NewIntegrationService(
			hubspot.NewOAuthHandler(hubCfg, store),
			hubspot.NewClient(hubCfg),
			hubspotnorm.New(hubCfg.AppURL()),
			services.NewRegistry(),
		)

		engine := httpapi.NewEngine(httpapi.NewHandler(service))
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("hublink %s listening on %s", version, cfg.Server.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
