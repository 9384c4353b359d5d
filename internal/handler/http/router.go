package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/punchdeck/attendance-backend-go/internal/handler/http/middleware"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	corsOrigins []string,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	uploadHandler UploadHandler,
	settingsHandler SettingsHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/upload", uploadHandler.Upload)
			r.Get("/upload-history", uploadHandler.History)
			r.Get("/download-latest-file", uploadHandler.DownloadLatest)
			r.Delete("/delete-upload", uploadHandler.DeleteAll)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/date", attendanceHandler.GetByDate)
				r.Get("/range", attendanceHandler.GetByRange)
			})
			r.Get("/statistics", attendanceHandler.Statistics)
			r.Get("/calendar-dates", attendanceHandler.CalendarDates)
			r.Post("/recalculate", attendanceHandler.Recalculate)
			r.Get("/export/csv", attendanceHandler.Export)

			r.Get("/employees", employeeHandler.List)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)
				r.Post("/", settingsHandler.Update)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Post("/configure", reportHandler.Configure)
				r.Post("/generate", reportHandler.Generate)
				r.Get("/usage", reportHandler.Usage)
				r.Post("/clear-cache", reportHandler.ClearCache)
			})
		})
	})
	return r
}
