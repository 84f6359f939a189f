package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/promopilot/promopilot-api/internal/config"
	"github.com/promopilot/promopilot-api/internal/database"
	"github.com/promopilot/promopilot-api/internal/handler"
	"github.com/promopilot/promopilot-api/internal/queue"
	"github.com/promopilot/promopilot-api/internal/repository"
	"github.com/promopilot/promopilot-api/internal/router"
	"github.com/promopilot/promopilot-api/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	defer rdb.Close()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	statusRepo := repository.NewExecutionStatusRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	reportRepo := repository.NewReportRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	audit := service.NewAuditLogger(auditRepo)
	mailer := service.NewMailPublisher(cfg.RabbitMQURL)
	authSvc := service.NewAuthService(userRepo, tokenRepo, mailer, service.AuthConfig{
		JWTSecret:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      cfg.JWTAudience,
		AccessTTLMin:  cfg.AccessTTLMin,
		RefreshTTLDay: cfg.RefreshTTLDay,
	})
	campaignSvc := service.NewCampaignService(campaignRepo, audit)
	budgetSvc := service.NewBudgetService(budgetRepo, campaignRepo, audit)
	engagementSvc := service.NewEngagementService(engagementRepo, campaignRepo, customerRepo, audit)
	statusSvc := service.NewExecutionStatusService(statusRepo, campaignRepo, audit)
	saleSvc := service.NewSaleService(saleRepo, campaignRepo, audit)
	productSvc := service.NewProductService(productRepo, audit)
	customerSvc := service.NewCustomerService(customerRepo, audit)
	reportSvc := service.NewReportService(reportRepo, campaignRepo, budgetRepo, engagementRepo, saleRepo, audit)

	e := router.New(router.Handlers{
		Auth:            handler.NewAuthHandler(authSvc),
		Campaign:        handler.NewCampaignHandler(campaignSvc),
		Budget:          handler.NewBudgetHandler(budgetSvc),
		Engagement:      handler.NewEngagementHandler(engagementSvc),
		ExecutionStatus: handler.NewExecutionStatusHandler(statusSvc),
		Sale:            handler.NewSaleHandler(saleSvc),
		Product:         handler.NewProductHandler(productSvc),
		Customer:        handler.NewCustomerHandler(customerSvc),
		Report:          handler.NewReportHandler(reportSvc),
		Audit:           handler.NewAuditHandler(audit),
	}, db, rdb, cfg.JWTSecret, time.Duration(cfg.CacheTTLSec)*time.Second)

	log.Printf("promopilot-api starting in %s mode on :%s", cfg.Env, cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go queue.StartMailConsumer(ctx, cfg.RabbitMQURL)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
