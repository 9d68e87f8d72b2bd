package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wallet_networks/internal/app/port"
	"wallet_networks/internal/app/service"
	"wallet_networks/internal/config"
	"wallet_networks/internal/infrastructure/httpclient"
	"wallet_networks/internal/infrastructure/network/definition"
	"wallet_networks/internal/infrastructure/network/explorer"
	"wallet_networks/internal/infrastructure/restapi"
	"wallet_networks/internal/infrastructure/tokenloader"
	"wallet_networks/internal/pkg/logger"
	"wallet_networks/internal/pkg/metrics"
	"wallet_networks/internal/pkg/utils"
)

func main() {
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging)
	if err != nil {
		logrus.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger.SetDefault(zapLogger)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	if cfg.Metrics.Enabled {
		metrics.MustRegisterMetrics()
	}

	registry, err := definition.NewRegistry(definition.Options{
		ForkChainIDOverride: cfg.Registry.ForkChainID,
		StrictChainIDs:      cfg.Registry.StrictChainIDs,
	}, logger.NewSlogAdapter(zapLogger.Named("NetworkRegistry")))
	if err != nil {
		zapLogger.Fatal("Failed to build network registry", zap.Error(err))
	}

	coinGeckoClient := httpclient.NewCoinGeckoClient(cfg.CoinGecko, zapLogger)
	priceService := service.NewTokenPriceService(registry, coinGeckoClient, cfg, zapLogger)
	links := explorer.NewLinkBuilder(registry)

	if cfg.Tokens.WarmUp {
		loader := tokenloader.NewTokenLoader(cfg.Tokens.Dir, registry, logger.NewSlogAdapter(zapLogger.Named("TokenLoader")))
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Tokens.WarmUpTimeout())
			defer cancel()
			if err := warmUpPrices(ctx, loader, priceService, zapLogger); err != nil {
				zapLogger.Error("Failed to warm up token prices", zap.Error(err))
			} else {
				zapLogger.Info("Token price warm-up completed")
			}
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	handler := restapi.NewNetworkHandler(registry, links, priceService, zapLogger)
	router := restapi.SetupRouter(handler, cfg.Metrics, zapLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}

// warmUpPrices fetches watchlist prices once per chain so the first API calls hit the cache.
func warmUpPrices(ctx context.Context, loader *tokenloader.TokenFileLoader, prices port.TokenPriceService, zapLogger *zap.Logger) error {
	tokensByChainID, err := loader.GetTokensByChainID()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for chainID, tokens := range tokensByChainID {
		chainID, tokens := chainID, tokens
		g.Go(func() error {
			quoted, err := prices.TokenPrices(gctx, chainID, tokenloader.Addresses(tokens))
			if err != nil {
				return fmt.Errorf("chain %s: %w", chainID, err)
			}
			zapLogger.Info("Warmed token prices", zap.String("chainId", chainID), zap.Int("tokens", len(tokens)), zap.Int("quoted", len(quoted)))
			return nil
		})
	}
	return g.Wait()
}
