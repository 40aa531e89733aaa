package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	auditpg "lexcaribe/ms_fiscal_core/internal/adapters/audit/postgres"
	clientpg "lexcaribe/ms_fiscal_core/internal/adapters/client/postgres"
	clienthandler "lexcaribe/ms_fiscal_core/internal/adapters/http/client"
	documenthandler "lexcaribe/ms_fiscal_core/internal/adapters/http/document"
	healthhandler "lexcaribe/ms_fiscal_core/internal/adapters/http/health"
	invoicehandler "lexcaribe/ms_fiscal_core/internal/adapters/http/invoice"
	ncfhandler "lexcaribe/ms_fiscal_core/internal/adapters/http/ncf"
	reporthandler "lexcaribe/ms_fiscal_core/internal/adapters/http/report"
	invoicepg "lexcaribe/ms_fiscal_core/internal/adapters/invoice/postgres"
	ncfpg "lexcaribe/ms_fiscal_core/internal/adapters/ncf/postgres"
	appclient "lexcaribe/ms_fiscal_core/internal/application/client"
	appdocument "lexcaribe/ms_fiscal_core/internal/application/document"
	apphealth "lexcaribe/ms_fiscal_core/internal/application/health"
	appinvoice "lexcaribe/ms_fiscal_core/internal/application/invoice"
	appreport "lexcaribe/ms_fiscal_core/internal/application/report"
	"lexcaribe/ms_fiscal_core/internal/core/audit"
	coredocument "lexcaribe/ms_fiscal_core/internal/core/document"
	corencf "lexcaribe/ms_fiscal_core/internal/core/ncf"
	"lexcaribe/ms_fiscal_core/internal/infrastructure/config"
	"lexcaribe/ms_fiscal_core/internal/infrastructure/database"
	"lexcaribe/ms_fiscal_core/internal/infrastructure/http/server"
	"lexcaribe/ms_fiscal_core/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "service stopped: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.App.Name, cfg.Log.Level, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Host == "" || cfg.Database.Database == "" {
		return fmt.Errorf("database is not configured: DB_HOST and DB_NAME are required")
	}

	pool, err := database.NewPool(ctx, database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Database:        cfg.Database.Database,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	log.Info("Database connection established", "database", cfg.Database.Database)

	if err := database.RunMigrations(ctx, pool, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	invoiceRepo := invoicepg.NewRepository(pool)
	clientRepo := clientpg.NewRepository(pool)
	counterStore := ncfpg.NewCounterStore(pool)

	var auditRepo audit.Repository
	if cfg.Audit.Enabled {
		auditRepo = auditpg.NewRepositoryWithLogger(pool, log)
		log.Info("Fiscal audit trail enabled")
	} else {
		log.Warn("Fiscal audit trail disabled by configuration")
	}

	sequencer := corencf.NewSequencer(counterStore)

	renderer := coredocument.NewRenderer(coredocument.CompanyInfo{
		Name:    cfg.Company.Name,
		RNC:     cfg.Company.RNC,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
	})

	invoiceService := appinvoice.NewService(invoiceRepo, clientRepo, sequencer, auditRepo)
	clientService := appclient.NewService(clientRepo)
	reportService := appreport.NewService(invoiceRepo)
	documentService := appdocument.NewService(invoiceRepo, renderer)
	healthService := apphealth.NewService(apphealth.Metadata{
		Service:     cfg.App.Name,
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
	})

	srv, err := server.New(server.Options{
		Config:   cfg,
		Logger:   log,
		Health:   healthhandler.NewHandler(healthService),
		Invoices: invoicehandler.NewHandler(invoiceService, log),
		NCF:      ncfhandler.NewHandler(invoiceService, log),
		Clients:  clienthandler.NewHandler(clientService, log),
		Reports:  reporthandler.NewHandler(reportService, log),
		PDF:      documenthandler.NewHandler(documentService, log),
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	defer srv.Close()

	return srv.Run(ctx)
}
