package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devesh457/nea-website/api/controllers"
	"github.com/devesh457/nea-website/api/middleware"
	"github.com/devesh457/nea-website/internal/auth"
	"github.com/devesh457/nea-website/internal/availability"
	"github.com/devesh457/nea-website/internal/bookings"
	"github.com/devesh457/nea-website/internal/circulars"
	"github.com/devesh457/nea-website/internal/governingbody"
	"github.com/devesh457/nea-website/internal/members"
	"github.com/devesh457/nea-website/pkg/auth/session"
	"github.com/devesh457/nea-website/pkg/config"
	"github.com/devesh457/nea-website/pkg/enums"
	"github.com/devesh457/nea-website/pkg/logger"
	"github.com/devesh457/nea-website/pkg/metrics"
	"github.com/devesh457/nea-website/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Stores         map[string]controllers.Pinger
	RedisClient    *redis.Client
	Sessions       session.AccessSessionChecker
	Metrics        *metrics.HTTPMetrics
	AuthService    auth.Service
	MembersService members.Service
	Availability   availability.Service
	Bookings       bookings.Service
	Circulars      circulars.Service
	GoverningBody  governingbody.Service
}

// NewRouter assembles the full route tree.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Stores))
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	// Public surface: the association's front page content.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/governing-body", controllers.GoverningBodyList(d.GoverningBody, logg))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.RedisClient, logg)).Post("/login", controllers.AuthLogin(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.RedisClient, logg)).Post("/register", controllers.AuthRegister(d.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(d.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", controllers.BookingCreate(d.Bookings, logg))
			r.Get("/", controllers.BookingListMine(d.Bookings, logg))
			r.Post("/{bookingId}/cancel", controllers.BookingCancel(d.Bookings, logg))
			r.Delete("/{bookingId}", controllers.BookingDeleteRejected(d.Bookings, logg))
		})

		r.Get("/availability", controllers.AvailabilityList(d.Availability, logg))
		r.Get("/members", controllers.MemberDirectory(d.MembersService, logg))
		r.Get("/circulars", controllers.CircularList(d.Circulars, logg))
		r.Get("/governing-body", controllers.GoverningBodyList(d.GoverningBody, logg))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(d.MembersService, logg))
			r.Patch("/", controllers.ProfileUpdate(d.MembersService, logg))
			r.Post("/password", controllers.ProfileChangePassword(d.AuthService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireRole(enums.UserRoleAdmin.String(), logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/pending", controllers.AdminPendingUsers(d.MembersService, logg))
			r.Post("/{userId}/decision", controllers.AdminUserDecision(d.MembersService, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.AdminBookingList(d.Bookings, logg))
			r.Post("/{bookingId}/decision", controllers.AdminBookingDecision(d.Bookings, logg))
		})

		r.Route("/availability", func(r chi.Router) {
			r.Get("/", controllers.AdminAvailabilityList(d.Availability, logg))
			r.Put("/", controllers.AdminAvailabilityUpsert(d.Availability, logg))
			r.Patch("/{availabilityId}", controllers.AdminAvailabilityUpdate(d.Availability, logg))
		})

		r.Route("/circulars", func(r chi.Router) {
			r.Get("/", controllers.AdminCircularList(d.Circulars, logg))
			r.Post("/", controllers.AdminCircularCreate(d.Circulars, logg))
			r.Patch("/{circularId}/publish", controllers.AdminCircularPublish(d.Circulars, logg))
		})

		r.Route("/governing-body", func(r chi.Router) {
			r.Get("/", controllers.AdminGoverningBodyList(d.GoverningBody, logg))
			r.Put("/", controllers.AdminGoverningBodyUpsert(d.GoverningBody, logg))
		})
	})

	return r
}
