package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lead-capture-api/internal/application/signup"
	"github.com/lead-capture-api/internal/config"
	"github.com/lead-capture-api/internal/transport/http/handler"
	appmiddleware "github.com/lead-capture-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	signupSvc := signup.NewService(signup.ServiceDeps{
		PendingStore:   deps.PendingStore,
		AgreementStore: deps.AgreementStore,
		Mailer:         deps.Mailer,
		Links:          deps.Links,
	})

	healthH := handler.NewHealthHandler()
	signupH := handler.NewSignupHandler(signupSvc)

	r.Get("/health-check/{action}", healthH.Ping)

	// The entire flow is session-scoped: pending OTP state is keyed by the
	// cookie the middleware maintains.
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.Session())

		r.Get("/", signupH.Entry)
		r.Post("/send_otp", signupH.SendOTP)
		r.Post("/verify_otp", signupH.VerifyOTP)
	})

	return r
}
