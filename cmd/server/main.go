package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	webAdapter "portal-coordinadores/internal/adapters/web"
	"portal-coordinadores/internal/airtable"
	"portal-coordinadores/internal/app"
	"portal-coordinadores/internal/auth"
	"portal-coordinadores/internal/config"
	"portal-coordinadores/internal/core"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := config.Logger()

	if err := cfg.ValidateRemoteStore(); err != nil {
		log.WithError(err).Warn("remote store credentials missing; reads will degrade to empty, writes will fail")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	store := airtable.NewClient(cfg.AirtableAPIKey, cfg.AirtableBaseID)

	coordinators := core.NewCoordinatorService(store)
	kardex := core.NewKardexService(store)
	orders := core.NewOrderService(store, kardex, log)
	master := core.NewMasterService(store)
	activities := core.NewActivityService(store)

	tokens := auth.NewTokenStore(cfg.MagicLinkTTL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tokens.StartSweep(ctx, time.Minute)

	svc := app.NewPortalService(
		coordinators, kardex, orders, master, activities,
		tokens, &auth.LogMailer{Log: log}, cfg.PortalBaseURL, log,
	)

	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, cfg.JWTSecret, log)

	log.WithField("port", cfg.ServerPort).Info("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.WithError(err).Fatal("server")
	}
}
