package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devconnect/internal/config"
	"devconnect/internal/db"
	"devconnect/internal/models"
	"devconnect/internal/router"
	"devconnect/internal/services"
	"devconnect/internal/store"
	"devconnect/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// Initialize Store
	var st *store.Store
	switch cfg.Store {
	case config.StoreMemory:
		log.Println("Using in-memory store, data is lost on exit")
		st = store.NewMemory()
	case config.StorePostgres:
		gdb, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		st = store.NewGorm(gdb)
	default:
		log.Fatalf("Unknown STORE %q (want %q or %q)", cfg.Store, config.StorePostgres, config.StoreMemory)
	}

	postCache, err := utils.NewCache[models.Post](cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to create post cache: %v", err)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize Gin
	r := gin.Default()
	router.RegisterRoutes(r, router.Services{
		Tokens:   tokens,
		Users:    services.NewUserService(st.Users, tokens),
		Posts:    services.NewPostService(st.Posts, st.Users, postCache),
		Profiles: services.NewProfileService(st.Profiles),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("devconnect API starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
