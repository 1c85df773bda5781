package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo_contest/internal/api"
	"photo_contest/internal/app/service"
	"photo_contest/internal/common/security"
	"photo_contest/internal/domain/repository"
	"photo_contest/internal/platform/cache"
	"photo_contest/internal/platform/config"
	"photo_contest/internal/platform/database"
	"photo_contest/internal/platform/storage"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	log.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis (token revocation list)
	cache.ConnectRedis()
	defer cache.CloseRedis()
	revoker := cache.NewRedisTokenRevoker(cache.RDB)

	// 5. Initialize upload storage
	fileStore, err := storage.NewFileStore(config.AppConfig.UploadDir)
	if err != nil {
		log.Fatalf("Could not initialize upload storage: %v", err)
	}

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	adminRepo := repository.NewPgAdminRepository(database.DB)
	contestRepo := repository.NewPgContestRepository(database.DB)
	photoRepo := repository.NewPgPhotoRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	voteRepo := repository.NewPgVoteRepository(database.DB)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, adminRepo, revoker)
	voteService := service.NewVoteService(voteRepo, submissionRepo, contestRepo, photoRepo, userRepo)
	contestService := service.NewContestService(contestRepo, voteService, database.DB)
	submissionService := service.NewSubmissionService(submissionRepo, photoRepo, contestRepo, userRepo, database.DB)
	userService := service.NewUserService(userRepo, photoRepo, contestRepo)
	adminService := service.NewAdminService(userRepo, adminRepo, contestRepo, photoRepo, voteRepo, submissionRepo)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(
		authService, userService, contestService, submissionService,
		voteService, adminService, contestRepo, fileStore, revoker,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
