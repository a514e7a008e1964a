package http

import (
	"log/slog"
	"os"

	"github.com/Dammmup/detsad-f-sub001/internal/config"
	"github.com/Dammmup/detsad-f-sub001/internal/handler/http/middleware"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, payrollHandler PayrollHandler, settingsHandler SettingsHandler) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "detsad-payroll"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll-settings", func(r chi.Router) {
				r.Get("/", settingsHandler.GetSettings)
				r.With(middleware.AdminOnly).Put("/", settingsHandler.UpdateSettings)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/", payrollHandler.ListRecords)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", payrollHandler.GenerateSheets)
					r.Post("/debts", payrollHandler.CalculateDebt)
					r.Get("/summary", payrollHandler.GetSummary)
					r.Post("/fines", payrollHandler.AddFine)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetRecord)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/", payrollHandler.UpdateRecord)
						r.Delete("/", payrollHandler.DeleteRecord)
						r.Post("/approve", payrollHandler.Approve)
						r.Post("/pay", payrollHandler.MarkAsPaid)
						r.Post("/fines", payrollHandler.AddFine)
						r.Delete("/fines/{fineId}", payrollHandler.RemoveFine)
					})
				})
			})
		})
	})

	return r
}
