/**
 * @description
 * This is the main entry point for the payout dashboard. It is responsible for
 * initializing all components of the service, including configuration, the
 * Mural Pay API client, the application service with its caches, the background
 * cache refresher, and the HTTP server. It wires everything together and starts
 * the service.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/joho/godotenv: Loads the optional .env file before config parsing.
 * - internal/api, internal/app, internal/config, internal/web: Internal packages for the service.
 * - pkg/muralclient: Client for the Mural Pay API.
 */

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
	"github.com/muralops/payout-dashboard/internal/api"
	"github.com/muralops/payout-dashboard/internal/app"
	"github.com/muralops/payout-dashboard/internal/config"
	"github.com/muralops/payout-dashboard/internal/web"
	"github.com/muralops/payout-dashboard/pkg/muralclient"
)

func main() {
	// Load the optional .env file so local runs match deployed environments.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("level=warn component=bootstrap msg=\"failed to load .env file\" err=%v", err)
	}

	// Load application configuration from environment variables.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}
	if cfg.MuralAPIKey == "" {
		log.Fatalf("level=fatal component=bootstrap msg=\"mural api key must be configured\" env=MURAL_API_KEY")
	}
	if cfg.MuralAccountAPIKey == "" {
		log.Printf("level=warn component=bootstrap msg=\"no account api key configured; transfer execution disabled\" env=MURAL_ACCOUNT_API_KEY")
	}

	log.Printf("level=info component=bootstrap msg=\"starting payout-dashboard\" port=%s base_url=%s", cfg.ServerPort, cfg.MuralAPIBaseURL)

	// Initialize the client for the Mural Pay API.
	muralClient := muralclient.NewClient(cfg.MuralAPIBaseURL, cfg.MuralAPIKey, cfg.MuralAccountAPIKey)

	// Initialize the core application service with its caches.
	service := app.NewService(
		muralClient,
		cfg.PageSize,
		time.Duration(cfg.AccountsCacheTTLSec)*time.Second,
		time.Duration(cfg.BanksCacheTTLHours)*time.Hour,
	)

	// Start the background cache refresher when a schedule is configured.
	refresher := app.NewRefresher(service, cfg.RefreshSchedule)
	refresher.Start()
	defer refresher.Stop()

	// Initialize the dashboard UI and the JSON API handlers.
	webServer, err := web.NewServer(service)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"web server init failed\" err=%v", err)
	}
	handlers := api.NewDashboardHandlers(service)

	router := api.DashboardRoutes(handlers, webServer.Routes(), api.RouterOptions{
		AllowedOrigins: api.SplitOrigins(cfg.CORSAllowedOrigins),
		RequestTimeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	})

	// Start the HTTP server.
	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=http msg=\"shutdown started\"")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}
