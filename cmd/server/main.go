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

	"tanya-chat/internal/config"
	"tanya-chat/internal/database"
	"tanya-chat/internal/handlers"
	"tanya-chat/internal/ratelimit"
	"tanya-chat/internal/router"
	"tanya-chat/internal/services"
)

func main() {
	log.Println("🚀 Starting Tanya Chat Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Validate Upstream Credentials ────
	if err := services.ValidateAPIKey(cfg.GroqAPIKey); err != nil {
		log.Fatalf("✗ %v", err)
	}
	log.Println("✓ GROQ_API_KEY validation passed")

	// ──── Step 3: Initialize Groq Client ────
	groqService := services.NewGroqService(cfg.GroqAPIKey, cfg.GroqAPIURL, cfg.GroqModel)

	// Connection test is non-blocking; only a credential rejection is fatal.
	go func() {
		log.Println("🔍 Testing Groq API connection...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := groqService.Ping(ctx); err != nil {
			log.Fatalf("✗ Groq API rejected the configured key: %v", err)
		}
		log.Println("✓ Groq API connection successful")
	}()

	// ──── Step 4: Initialize Rate Limit Store ────
	var store ratelimit.Store
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		store = ratelimit.NewRedisStore(redisClient)
		log.Println("✓ Redis connected, rate-limit buckets shared")
	} else {
		store = ratelimit.NewMemoryStore(router.GlobalWindow)
		log.Println("✓ In-memory rate-limit buckets initialized")
	}

	// ──── Step 5: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(groqService)
	systemHandler := handlers.NewSystemHandler(cfg.APIBaseURL)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(cfg, store, chatHandler, systemHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Tanya Chat Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
