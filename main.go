// This is the main entry point of the application. It is responsible for
// loading configuration, establishing the database connection, constructing
// services and handlers, wiring the HTTP router and middleware, and starting
// the HTTP server with graceful shutdown.
//
// @title DevConnector API
// @version 1.0
// @description Social network REST backend: users, profiles and a posts feed.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-auth-token
// @description Signed token issued by POST /api/users or POST /api/auth
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/auth"
	"github.com/user/devconnector-go/config"
	"github.com/user/devconnector-go/db"
	_ "github.com/user/devconnector-go/docs" // generated swagger docs
	"github.com/user/devconnector-go/posts"
	"github.com/user/devconnector-go/profile"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Printf("Error disconnecting from database: %v", err)
		}
	}()
	log.Println("MongoDB connected...")

	if err := db.EnsureIndexes(database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Manual dependency injection: services receive the shared database
	// handle, handlers receive their service.
	authService := auth.NewAuthService(database, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	profileService := profile.NewService(database)
	githubClient := profile.NewGithubClient(*cfg.Github)
	profileHandlers := profile.NewHandlers(profileService, githubClient)

	postService := posts.NewService(database)
	postHandlers := posts.NewHandlers(postService)

	r := chi.NewRouter()

	// Global middleware; chi requires all middleware registered before routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", auth.TokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that answers in the API's error format instead of an
	// empty 500.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API Running"))
	})

	// User registration
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", authHandlers.HandleRegister())
	})

	// Login and current user
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/", authHandlers.HandleLogin())
		r.With(auth.JWTMiddleware(cfg.Auth)).Get("/", authHandlers.HandleGetCurrentUser())
	})

	// Profiles: list, by-user and the GitHub lookup are public, the rest is
	// guarded by the token middleware.
	r.Route("/api/profile", func(r chi.Router) {
		r.Get("/", profileHandlers.HandleList())
		r.Get("/user/{user_id}", profileHandlers.HandleGetByUserID())
		r.Get("/github/{username}", profileHandlers.HandleGithubRepos())

		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware(cfg.Auth))
			r.Get("/me", profileHandlers.HandleGetOwn())
			r.Post("/", profileHandlers.HandleUpsert())
			r.Delete("/", profileHandlers.HandleDeleteAccount())
			r.Put("/experience", profileHandlers.HandleAddExperience())
			r.Delete("/experience/{exp_id}", profileHandlers.HandleDeleteExperience())
			r.Put("/education", profileHandlers.HandleAddEducation())
			r.Delete("/education/{edu_id}", profileHandlers.HandleDeleteEducation())
		})
	})

	// Posts feed, private throughout.
	r.Route("/api/posts", func(r chi.Router) {
		r.Use(auth.JWTMiddleware(cfg.Auth))
		r.Post("/", postHandlers.HandleCreate())
		r.Get("/", postHandlers.HandleList())
		r.Get("/{id}", postHandlers.HandleGet())
		r.Delete("/{id}", postHandlers.HandleDelete())
		r.Put("/like/{id}", postHandlers.HandleLike())
		r.Put("/unlike/{id}", postHandlers.HandleUnlike())
		r.Put("/comment/{id}", postHandlers.HandleAddComment())
		r.Delete("/comment/{id}/{comment_id}", postHandlers.HandleDeleteComment())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// writeError is a local helper for the panic recovery middleware; it keeps
// the recovery path independent of the feature packages.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"errors":[{"msg":"failed to encode error response"}]}`, http.StatusInternalServerError)
	}
}
