package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"elitecards_backend/internal/app/router"
	authadapters "elitecards_backend/internal/feature/auth/adapters"
	authhandler "elitecards_backend/internal/feature/auth/transport/handler"
	authusecase "elitecards_backend/internal/feature/auth/usecase"
	passwordhandler "elitecards_backend/internal/feature/password/transport/handler"
	passwordusecase "elitecards_backend/internal/feature/password/usecase"
	"elitecards_backend/internal/platform/config"
	platformdb "elitecards_backend/internal/platform/db"
	jwtmw "elitecards_backend/internal/platform/jwt"
	"elitecards_backend/internal/platform/mail"
	"elitecards_backend/internal/platform/storage"
)

// Session tokens live for a week, matching the frontend's re-login cadence.
const tokenTTL = 7 * 24 * time.Hour

func main() {
	// .env is optional; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	conn := platformdb.Open(cfg)

	ctx := context.Background()
	blobs, err := storage.New(ctx, storage.Options{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
	})
	if err != nil {
		log.Fatalf("failed to build object storage client: %v", err)
	}

	mailer := mail.NewResendMailer(cfg.ResendAPIKey, cfg.ResendFrom)

	// Repository
	userRepo := authadapters.NewUserPostgres(conn)

	// Usecase
	tokens := jwtmw.NewManager(cfg.JWTSecret, tokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, authusecase.AdminCredentials{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	passwordUC := passwordusecase.NewPasswordUsecase(userRepo, mailer)

	// The admin row exists before the first login attempt.
	if cfg.AdminEmail != "" {
		if _, err := authUC.EnsureAdminUser(ctx); err != nil {
			log.Fatalf("failed to ensure admin user: %v", err)
		}
	}

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	passwordH := passwordhandler.NewPasswordHandler(passwordUC)

	engine := router.New(router.Deps{
		DB:          conn,
		Auth:        authH,
		Password:    passwordH,
		Verifier:    tokens,
		Users:       userRepo,
		Blobs:       blobs,
		Mailer:      mailer,
		CORSOrigins: cfg.CORSOrigins,
	})

	if err := engine.Run(cfg.HTTPAddress()); err != nil {
		log.Fatal(err)
	}
}
