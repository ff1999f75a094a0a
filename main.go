package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodnow-api/config"
	"foodnow-api/handlers"
	"foodnow-api/logger"
	"foodnow-api/middleware"
	"foodnow-api/notification"
	"foodnow-api/routes"
	"foodnow-api/services"
	"foodnow-api/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDB(cfg.DB, logger.Gorm(log))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := config.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}
	if created, err := config.SeedAdmin(db, cfg.Admin); err != nil {
		log.WithError(err).Fatal("failed to seed admin")
	} else if created {
		log.WithField("email", cfg.Admin.Email).Info("admin account seeded")
	}
	log.WithField("driver", cfg.DB.Driver).Info("database connected and migrated")

	mailer, err := notification.NewMailer(cfg.Mail, log)
	if err != nil {
		log.WithError(err).Warn("mail transport unavailable, falling back to log transport")
		mailer = notification.NewLogMailer(log)
	}
	notifier := notification.NewNotifier(mailer, cfg.Mail.From, log)

	store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.WithError(err).Fatal("failed to prepare upload directory")
	}

	jwt := middleware.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	payments := services.NewPaymentService(db, services.RandomOutcome(cfg.Payment.SuccessRate), log)

	h := &handlers.Handler{
		Auth:         services.NewAuthService(db, jwt, notifier, log, cfg.FrontendURL),
		Applications: services.NewApplicationService(db, notifier, log),
		Menu:         services.NewMenuService(db, log),
		Restaurants:  services.NewRestaurantService(db),
		Carts:        services.NewCartService(db),
		Orders:       services.NewOrderService(db, payments, log),
		Payments:     payments,
		Reviews:      services.NewReviewService(db),
		Store:        store,
		Log:          log,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(h, jwt, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}

	notifier.Wait()
	if closer, ok := mailer.(io.Closer); ok {
		closer.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
