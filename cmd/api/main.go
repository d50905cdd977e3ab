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

	"github.com/joho/godotenv"
	"github.com/juanfvasquez/pedidos-backend/api/controllers"
	"github.com/juanfvasquez/pedidos-backend/api/routes"
	internalauth "github.com/juanfvasquez/pedidos-backend/internal/auth"
	"github.com/juanfvasquez/pedidos-backend/internal/grouporders"
	"github.com/juanfvasquez/pedidos-backend/internal/orderitems"
	"github.com/juanfvasquez/pedidos-backend/internal/products"
	"github.com/juanfvasquez/pedidos-backend/internal/users"
	"github.com/juanfvasquez/pedidos-backend/pkg/auth/session"
	"github.com/juanfvasquez/pedidos-backend/pkg/config"
	"github.com/juanfvasquez/pedidos-backend/pkg/db"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	"github.com/juanfvasquez/pedidos-backend/pkg/migrate"
	"github.com/juanfvasquez/pedidos-backend/pkg/oauth"
	redisclient "github.com/juanfvasquez/pedidos-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New(logger.Options{
		ServiceName: "pedidos-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connecting database: %w", err)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return fmt.Errorf("auto-migrating: %w", err)
	}

	redisClient, err := redisclient.New(ctx, cfg.Redis, logg)
	if err != nil {
		return fmt.Errorf("connecting redis: %w", err)
	}

	sessions, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return fmt.Errorf("building session manager: %w", err)
	}

	var oauthClient internalauth.OAuthClient
	if cfg.OAuth.Configured() {
		client, err := oauth.New(cfg.OAuth)
		if err != nil {
			return fmt.Errorf("building oauth client: %w", err)
		}
		oauthClient = client
	} else {
		logg.Warn(ctx, "oauth provider not configured; only dev login is available")
	}

	userRepo := users.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	orderRepo := grouporders.NewRepository(dbClient.DB())
	itemRepo := orderitems.NewRepository(dbClient.DB())

	productSvc, err := products.NewService(productRepo, logg)
	if err != nil {
		return fmt.Errorf("building product service: %w", err)
	}
	orderSvc, err := grouporders.NewService(orderRepo, itemRepo, productRepo, userRepo, logg)
	if err != nil {
		return fmt.Errorf("building group order service: %w", err)
	}
	itemSvc, err := orderitems.NewService(itemRepo, orderRepo, productRepo, logg)
	if err != nil {
		return fmt.Errorf("building order item service: %w", err)
	}
	authSvc, err := internalauth.NewService(oauthClient, userRepo, sessions, internalauth.Config{
		JWT:             cfg.JWT,
		OwnerOpenID:     cfg.OAuth.OwnerOpenID,
		DevLoginEnabled: !cfg.App.IsProd(),
	}, logg)
	if err != nil {
		return fmt.Errorf("building auth service: %w", err)
	}

	router := routes.New(routes.Dependencies{
		Config:            cfg,
		Logger:            logg,
		AuthService:       authSvc,
		ProductService:    productSvc,
		GroupOrderService: orderSvc,
		OrderItemService:  itemSvc,
		Sessions:          sessions,
		Idempotency:       redisClient,
		HealthDeps: map[string]controllers.DependencyPinger{
			"postgres": dbClient,
			"redis":    redisClient,
		},
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", server.Addr), "http server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	logg.Info(context.Background(), "server stopped")
	return nil
}
