// The webhook receiver runs as its own process on its own port so a tunnel
// like ngrok can expose just these endpoints to the outside world. It shares
// the user store and status-sync logic with the API server but coordinates
// with it only through idempotent writes.
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

	"github.com/go-idv-api/internal/config"
	"github.com/go-idv-api/internal/infrastructure/dynamo"
	"github.com/go-idv-api/internal/infrastructure/plaid"
	transporthttp "github.com/go-idv-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Either process may start first, so both bootstrap the table.
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.UsersTable)

	deps := &transporthttp.Deps{
		UserRepo:  dynamo.NewUserRepo(dynamoClient, cfg.UsersTable),
		IDVClient: plaid.NewClient(cfg),
	}

	router := transporthttp.NewWebhookRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.WebhookPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Webhook receiver starting on :%s (env=%s)", cfg.WebhookPort, cfg.PlaidEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("webhook server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down webhook receiver...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Webhook receiver stopped")
}
