package routes

import (
	"net/http"

	"github.com/AndresMate/amateur-league-system/handlers"
	"github.com/AndresMate/amateur-league-system/middleware"
	"github.com/AndresMate/amateur-league-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes mounts the whole HTTP surface on the router.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	fixtureHandler *handlers.FixtureHandler,
	matchHandler *handlers.MatchHandler,
	standingHandler *handlers.StandingHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/{teamID}", teamHandler.Get)
			r.Get("/{teamID}/availability", teamHandler.GetAvailability)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Use(middleware.Authorize(models.RoleAdmin))

				r.Post("/", teamHandler.Create)
				r.Put("/{teamID}/availability", teamHandler.ReplaceAvailability)
				r.Post("/{teamID}/crest", teamHandler.UploadCrest)
			})
		})

		r.Route("/fixtures", func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleAdmin))

			r.Post("/generate", fixtureHandler.Generate)
			r.Delete("/", fixtureHandler.Delete)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.List)
			r.Get("/{matchID}/result", matchHandler.GetResult)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Use(middleware.Authorize(models.RoleAdmin, models.RoleReferee))

				r.Post("/{matchID}/result", matchHandler.SubmitResult)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Use(middleware.Authorize(models.RoleAdmin))

				r.Delete("/{matchID}/result", matchHandler.DeleteResult)
			})
		})

		r.Route("/standings", func(r chi.Router) {
			r.Get("/", standingHandler.List)
			r.Get("/overview", standingHandler.Overview)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Use(middleware.Authorize(models.RoleAdmin))

				r.Post("/recalculate", standingHandler.Recalculate)
			})
		})

		r.Get("/live", webSocketHandler.Subscribe)
	})
}
