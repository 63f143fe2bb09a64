package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techagentng/blogx/cache"
	"github.com/techagentng/blogx/config"
	"github.com/techagentng/blogx/db"
	"github.com/techagentng/blogx/services"
)

type Server struct {
	Config         *config.Config
	AuthRepository db.AuthRepository
	AuthService    services.AuthService
	PostService    services.PostService
	FollowService  services.FollowService
	MediaService   services.MediaService
	PageCache      cache.PageCache
	DB             db.GormDB
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() {
	router := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()
	log.Printf("server started on :%d", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	log.Println("server exited")
}
