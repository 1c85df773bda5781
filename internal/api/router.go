package api

import (
	"net/http"
	"photo_contest/internal/api/handler"
	"photo_contest/internal/api/middleware"
	"photo_contest/internal/app/service"
	"photo_contest/internal/common/security"
	"photo_contest/internal/domain/repository"
	"photo_contest/internal/platform/cache"
	"photo_contest/internal/platform/storage"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	contestService *service.ContestService,
	submissionService *service.SubmissionService,
	voteService *service.VoteService,
	adminService *service.AdminService,
	contestRepo repository.ContestRepository,
	fileStore *storage.FileStore,
	revoker cache.TokenRevoker,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token when present, puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	authenticate := middleware.Authenticator(revoker)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", func(auth chi.Router) {
			authHandler.RegisterRoutes(auth)
			auth.Group(func(protected chi.Router) {
				protected.Use(authenticate)
				authHandler.RegisterProtectedRoutes(protected)
			})
		})

		// Contest reads (public), submission and voting (authenticated)
		contestHandler := handler.NewContestHandler(contestService, voteService)
		photoHandler := handler.NewPhotoHandler(submissionService, contestRepo, fileStore)
		voteHandler := handler.NewVoteHandler(voteService, contestRepo)
		v1.Route("/contests", func(contests chi.Router) {
			contestHandler.RegisterRoutes(contests)
			contests.Group(func(protected chi.Router) {
				protected.Use(authenticate)
				photoHandler.RegisterContestRoutes(protected)
				voteHandler.RegisterRoutes(protected)
			})
		})

		// Owner-only photo management
		v1.Route("/photos", func(photos chi.Router) {
			photos.Use(authenticate)
			photoHandler.RegisterRoutes(photos)
		})

		// Authenticated user dashboard/stats
		userHandler := handler.NewUserHandler(userService)
		v1.Route("/users", func(users chi.Router) {
			users.Use(authenticate)
			userHandler.RegisterRoutes(users)
		})

		// Admin surface
		adminHandler := handler.NewAdminHandler(authService, adminService, contestService, submissionService)
		v1.Route("/admin", func(admin chi.Router) {
			admin.Route("/auth", adminHandler.RegisterAuthRoutes)
			admin.Group(func(gated chi.Router) {
				gated.Use(authenticate)
				gated.Use(middleware.AdminOnly)
				adminHandler.RegisterRoutes(gated)
			})
		})
	})

	return r
}
