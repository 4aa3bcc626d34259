// cmd/storefront/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tokoonline/internal/infra/config"
	"tokoonline/internal/platform/di"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("[boot] storefront starting port=%s store=%s", cfg.Port, cfg.CartStoreDriver)

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("[boot] container init failed: %v", err)
	}
	defer container.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           container.BuildRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[boot] listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("[boot] server error: %v", err)
		}
	case sig := <-stop:
		log.Printf("[boot] signal %v received, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] graceful shutdown failed: %v", err)
		}
	}

	log.Printf("[boot] storefront stopped")
}
