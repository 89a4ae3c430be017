package app

import (
	"backtester/internal/middleware"
	"backtester/pkg/resp"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.RealIP)
		r.Use(middleware.Logger(sp.Logger()))
		r.Use(chimw.Recoverer)
		r.Use(chimw.Timeout(sp.HTTPCfg().RequestTimeout()))

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/", health)

		// Simulation endpoints
		simHandler := sp.SimulationHandler(ctx)
		r.Post("/simulate", simHandler.Simulate)
		r.Post("/sweep", simHandler.Sweep)
		r.Get("/stats", simHandler.Stats)

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)

		// Data endpoints
		dataHandler := sp.DataHandler(ctx)
		r.Get("/datasets", dataHandler.Datasets)

		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))
			rr.Get("/me", authHandler.Me)
			rr.Post("/load-data", dataHandler.LoadData)
		})

		sp.router = r
	}

	return sp.router
}

func health(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
