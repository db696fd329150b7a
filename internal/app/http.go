package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/graciegould/snaglet/internal/api"
	"github.com/graciegould/snaglet/internal/auth/provider/oidcidp"
	"github.com/graciegould/snaglet/internal/config"
	"github.com/graciegould/snaglet/internal/content"
	"github.com/graciegould/snaglet/internal/middleware"
	"github.com/graciegould/snaglet/internal/webapp"
)

const publicContentCacheTTL = 30 * time.Second

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	idp, err := oidcidp.New(ctx, oidcidp.Config{
		IssuerURL:         cfg.ProviderIssuerURL,
		ClientID:          cfg.ProviderClientID,
		AdminBaseURL:      cfg.ProviderAdminURL,
		AdminClientID:     cfg.AdminClientID,
		AdminClientSecret: cfg.AdminClientSecret,
	})
	if err != nil {
		return nil, nil, err
	}

	var store content.Store = content.NewPostgresStore(infra.DB)
	if infra.Redis != nil {
		store = content.NewRedisCache(infra.Redis.Client, store, publicContentCacheTTL)
	}

	authMW := middleware.NewAuthMiddleware(idp)
	apiHandler := api.NewHandler(idp, store)

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// API routes (shared across both hostnames)
	// ----------------------------

	apiHandler.RegisterRoutes(router, authMW)

	// ----------------------------
	// Host dispatch for everything else
	// ----------------------------

	dispatcher := webapp.NewDispatcher(cfg)
	router.NoRoute(dispatcher.Handle)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if infra.Redis != nil {
			_ = infra.Redis.Close()
		}
		return infra.DB.Close()
	}, nil
}
