package api

import (
	"net/http"
	"time"

	// Registers the swagger spec served under /api/swagger.
	_ "plearn/backend/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"plearn/backend/internal/api/middleware"
)

// RequestTimeout bounds every /api request, including the upstream model call.
const RequestTimeout = 90 * time.Second

// NewRouter creates the chi router with all routes of the service.
func NewRouter(chatHandler *ChatHandler, todoHandler *TodoHandler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Metrics first so every request is counted.
	r.Use(middleware.Metrics)

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(RequestTimeout))

		r.Post("/chat", chatHandler.HandleChat)
		r.Post("/vision", chatHandler.HandleVision)
		r.Post("/tts", chatHandler.HandleTTS)

		r.Get("/todo", todoHandler.HandleList)
		r.Post("/todo", todoHandler.HandleCreate)
		r.Patch("/todo", todoHandler.HandleCompleteAll)
		r.Put("/todo/{id}", todoHandler.HandleUpdate)
		r.Delete("/todo/{id}", todoHandler.HandleDelete)
	})

	return r
}
