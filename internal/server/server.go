package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlarsden/PocketFarm_Go/internal/database"
	"github.com/mlarsden/PocketFarm_Go/internal/game"
	"github.com/mlarsden/PocketFarm_Go/internal/handler"
	"github.com/mlarsden/PocketFarm_Go/internal/logger"
	"github.com/mlarsden/PocketFarm_Go/internal/metrics"
)

type Server struct {
	httpServer  *http.Server
	dbPool      database.Pool
	gameService game.Service
}

// NewServer creates a new Server instance
func NewServer(port int, dbPool database.Pool, gameService game.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		farmHandler := handler.NewFarmHandler(gameService)

		r.Route("/farm", func(r chi.Router) {
			r.Get("/state", farmHandler.HandleGetState)
			r.Get("/boost-cost", farmHandler.HandleBoostCost)
			r.Get("/progress", farmHandler.HandleSlotProgress)

			r.Post("/plant", farmHandler.HandlePlant)
			r.Post("/feed", farmHandler.HandleFeed)
			r.Post("/harvest", farmHandler.HandleHarvest)
			r.Post("/collect", farmHandler.HandleCollect)
			r.Post("/boost", farmHandler.HandleBoost)
			r.Post("/upgrade", farmHandler.HandleUpgrade)
			r.Post("/gem-upgrade", farmHandler.HandleGemUpgrade)
			r.Post("/unlock", farmHandler.HandleUnlockSlot)
		})

		r.Route("/economy", func(r chi.Router) {
			r.Post("/sell", farmHandler.HandleSellProduce)
			r.Post("/buy-feed", farmHandler.HandleBuyFeed)
			r.Post("/exchange/gems", farmHandler.HandleExchangeGems)
			r.Post("/exchange/coins", farmHandler.HandleExchangeCoins)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:      dbPool,
		gameService: gameService,
	}
}

// RequestSizeLimitMiddleware rejects bodies above the given byte limit
func RequestSizeLimitMiddleware(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, ErrMsgRequestTooLarge, http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
