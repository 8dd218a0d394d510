package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/staffbook/staffbook-backend-go/internal/handler/http/middleware"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	staffHandler StaffHandler,
	attendanceHandler AttendanceHandler,
	advanceHandler AdvanceHandler,
	hikeHandler HikeHandler,
	lifecycleHandler LifecycleHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffbook"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Get("/sessions/{sessionID}", authHandler.GetSession)
			r.Post("/sessions/{sessionID}/refresh", authHandler.RefreshSession)
			r.Post("/logout/{sessionID}", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/staff", func(r chi.Router) {
				r.Get("/", staffHandler.List)
				r.Get("/{staffID}", staffHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", staffHandler.Create)
					r.Put("/{staffID}", staffHandler.Update)
					r.Post("/changes/resolve", staffHandler.ResolveChange)
					r.Put("/reorder", staffHandler.Reorder)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", attendanceHandler.Record)
				r.Post("/bulk", attendanceHandler.BulkRecord)
				r.Delete("/{recordID}", attendanceHandler.DeletePartTime)
				r.Get("/", attendanceHandler.ListByDate)
				r.Get("/period", attendanceHandler.ListByPeriod)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/advances", func(r chi.Router) {
					r.Post("/", advanceHandler.Upsert)
					r.Get("/", advanceHandler.ListByPeriod)
					r.Get("/staff/{staffID}", advanceHandler.ListByStaff)
					r.Get("/staff/{staffID}/carry-forward", advanceHandler.GetCarryForward)
					r.Post("/staff/{staffID}/open", advanceHandler.OpenPeriod)
				})

				r.Route("/hikes", func(r chi.Router) {
					r.Get("/", hikeHandler.List)
					r.Get("/staff/{staffID}", hikeHandler.ListByStaff)
					r.Put("/{hikeID}", hikeHandler.Update)
					r.Delete("/{hikeID}", hikeHandler.Delete)
				})

				r.Route("/archive", func(r chi.Router) {
					r.Get("/", lifecycleHandler.List)
					r.Post("/", lifecycleHandler.Archive)
					r.Post("/{archiveID}/rejoin", lifecycleHandler.Rejoin)
					r.Delete("/{archiveID}", lifecycleHandler.Purge)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", payrollHandler.Summary)
				r.Get("/staff/{staffID}", payrollHandler.ForStaff)
			})
		})
	})
	return r
}
