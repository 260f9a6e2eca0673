package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/MGservicing/MGservice-2/external/midtrans"
	"github.com/MGservicing/MGservice-2/external/resend"

	"github.com/MGservicing/MGservice-2/internal/config"
	"github.com/MGservicing/MGservice-2/internal/db"
	"github.com/MGservicing/MGservice-2/internal/repository"
	"github.com/MGservicing/MGservice-2/internal/services"
	"github.com/MGservicing/MGservice-2/internal/vault"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	// ======================
	// CONFIG + INFRA
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	credVault, err := vault.New(cfg.EncryptionKey)
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// EXTERNALS
	// ======================
	mailer, err := resend.NewResendMailer(
		cfg.ResendAPIKey,
		"MGservicing<onboarding@resend.dev>",
		cfg.AdminEmail,
		cfg.SiteURL,
	)
	if err != nil {
		log.Fatal(err)
	}

	gateway := midtrans.NewSnapGateway(cfg.MidtransServerKey)

	// ======================
	// REPOSITORIES
	// ======================
	orderRepo := repository.NewOrderRepository(pool)

	// ======================
	// SERVICES
	// ======================
	checkoutSvc := services.NewCheckoutService(orderRepo, gateway, credVault, cfg.SiteURL, logger)
	paymentSvc := services.NewPaymentEventService(orderRepo, gateway, mailer, logger)
	statusSvc := services.NewOrderStatusService(orderRepo)
	adminSvc := services.NewAdminService(orderRepo, credVault, cfg.AdminPassword, []byte(cfg.JWTSecret))

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/store")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerCheckoutRoutes(api, checkoutSvc)
	registerPaymentRoutes(api, paymentSvc)
	registerOrderRoutes(api, statusSvc)
	registerAdminRoutes(api, adminSvc, []byte(cfg.JWTSecret))

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
