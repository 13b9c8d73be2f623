package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries the handlers and middleware settings for the API.
type RouterConfig struct {
	Members     *MemberHandler
	Places      *PlaceHandler
	Schedules   *ScheduleHandler
	Attendees   *AttendeeHandler
	Chats       *ChatHandler
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter assembles the chi router with the standard middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", MemberIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(ResolvePrincipal())

	if cfg.Members != nil {
		r.Route("/members", func(r chi.Router) {
			r.Post("/", cfg.Members.Create)
			r.Get("/{memberID}", cfg.Members.Get)
		})
	}

	if cfg.Places != nil {
		r.Route("/places", func(r chi.Router) {
			r.Post("/", cfg.Places.Create)
			r.Get("/", cfg.Places.List)
		})
	}

	if cfg.Schedules != nil {
		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", cfg.Schedules.Create)
			r.Get("/", cfg.Schedules.List)

			r.Route("/{scheduleID}", func(r chi.Router) {
				r.Get("/", cfg.Schedules.GetDetail)
				r.Put("/", cfg.Schedules.Update)
				r.Delete("/", cfg.Schedules.Delete)
				r.Post("/routes", cfg.Schedules.AppendRoute)

				if cfg.Attendees != nil {
					r.Route("/attendees", func(r chi.Router) {
						r.Post("/", cfg.Attendees.Invite)
						r.Get("/", cfg.Attendees.List)
						r.Delete("/", cfg.Attendees.Leave)
						r.Patch("/{attendeeID}", cfg.Attendees.UpdatePermission)
						r.Delete("/{attendeeID}", cfg.Attendees.Remove)
					})
				}

				if cfg.Chats != nil {
					r.Route("/chats", func(r chi.Router) {
						r.Post("/", cfg.Chats.Send)
						r.Get("/", cfg.Chats.GetPage)
					})
				}
			})
		})
	}

	return r
}
