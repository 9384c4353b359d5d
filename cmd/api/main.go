package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/config"
	appHTTP "github.com/punchdeck/attendance-backend-go/internal/handler/http"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/cron"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/gemini"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/storage"
	"github.com/punchdeck/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/punchdeck/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/punchdeck/attendance-backend-go/internal/service/auth"
	exportService "github.com/punchdeck/attendance-backend-go/internal/service/export"
	ingestService "github.com/punchdeck/attendance-backend-go/internal/service/ingest"
	policyService "github.com/punchdeck/attendance-backend-go/internal/service/policy"
	reportService "github.com/punchdeck/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	uploadHistoryRepo := postgresql.NewUploadHistoryRepository(db)
	reportSummaryRepo := postgresql.NewReportSummaryRepository(db)
	reportUsageRepo := postgresql.NewReportUsageRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal("Failed to initialize file storage: ", err)
	}

	geminiClient := gemini.NewClient(cfg.Report.APIKey, cfg.Report.Model)
	if geminiClient.Configured() {
		model := geminiClient.DiscoverModel(context.Background(), cfg.Report.Model)
		geminiClient = gemini.NewClient(cfg.Report.APIKey, model)
	}

	settingsSvc := policyService.NewSettingsService(db, settingsRepo)
	authSvc := serviceAuth.NewAuthService(db, userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, settingsSvc)
	exportSvc := exportService.NewExportService(attendanceRepo, settingsSvc)
	ingestSvc := ingestService.NewIngestService(db, attendanceRepo, employeeRepo, uploadHistoryRepo, settingsSvc, fileStorage)
	reportSvc := reportService.NewReportService(reportSummaryRepo, reportUsageRepo, geminiClient, cfg.Report.CacheDir, cfg.Report.Model)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, exportSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)
	uploadHandler := appHTTP.NewUploadHandler(ingestSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("report-cache-purge", time.Hour, cron.NewReportCachePurgeJob(cfg.Report.CacheDir, 24*time.Hour))
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		cfg.App.CORSOrigins,
		authHandler,
		attendanceHandler,
		employeeHandler,
		uploadHandler,
		settingsHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
