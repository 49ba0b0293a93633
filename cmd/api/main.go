package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lead-capture-api/internal/application/signup"
	"github.com/lead-capture-api/internal/config"
	"github.com/lead-capture-api/internal/infrastructure/dynamo"
	"github.com/lead-capture-api/internal/infrastructure/mail"
	redisinfra "github.com/lead-capture-api/internal/infrastructure/redis"
	s3infra "github.com/lead-capture-api/internal/infrastructure/s3"
	transporthttp "github.com/lead-capture-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Pending OTP state — DynamoDB with TTL by default, Redis when selected.
	var pendingStore signup.PendingStore
	if cfg.PendingStore == "redis" {
		store, err := redisinfra.NewPendingStore(cfg)
		if err != nil {
			log.Fatalf("redis pending store: %v", err)
		}
		defer store.Close()
		pendingStore = store
	} else {
		pendingStore = dynamo.NewPendingRepo(dynamoClient, cfg.DynamoTables.PendingVerifications)
	}

	// Mail delivery (nil when unconfigured — issuance then reports it).
	mailer := mail.NewFromConfig(cfg)
	if mailer == nil {
		log.Printf("WARN: mail delivery not configured (MAIL_PROVIDER=%q)", cfg.MailProvider)
	}

	// Gated download link — static URL, or presigned S3 when hosted there.
	var links signup.LinkResolver
	switch {
	case cfg.DownloadURL != "":
		links = signup.StaticLink(cfg.DownloadURL)
	case cfg.DownloadS3Bucket != "" && cfg.DownloadS3Key != "":
		links = s3infra.NewLinkResolver(s3infra.NewClient(cfg), cfg.DownloadS3Bucket, cfg.DownloadS3Key)
	default:
		log.Println("WARN: download link not configured")
	}

	deps := &transporthttp.Deps{
		PendingStore:   pendingStore,
		AgreementStore: dynamo.NewAgreementRepo(dynamoClient, cfg.DynamoTables.Agreements),
		Mailer:         mailer,
		Links:          links,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
