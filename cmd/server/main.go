package main

import (
	"fmt"
	"log"

	"gstsim/internal/config"
	"gstsim/internal/handler"
	"gstsim/internal/repository/postgres"
	"gstsim/internal/router"
	"gstsim/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	returnRepo := postgres.NewReturnRepo(db)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	invoiceSvc := service.NewInvoiceService(invoiceRepo)
	returnSvc := service.NewReturnService(returnRepo)
	statsSvc := service.NewStatsService(returnRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userRepo)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	returnH := handler.NewReturnHandler(returnSvc)
	validationH := handler.NewValidationHandler()
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, invoiceH, returnH, validationH, statsH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
