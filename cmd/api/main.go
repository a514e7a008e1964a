package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dammmup/detsad-f-sub001/internal/config"
	appHTTP "github.com/Dammmup/detsad-f-sub001/internal/handler/http"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/cache"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/cron"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/database"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/jwt"
	"github.com/Dammmup/detsad-f-sub001/internal/repository/postgresql"
	payrollService "github.com/Dammmup/detsad-f-sub001/internal/service/payroll"
	settingsService "github.com/Dammmup/detsad-f-sub001/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	var settingsCache cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer redisCache.Close()
		settingsCache = redisCache
	} else {
		settingsCache = cache.NewMemory()
	}

	payrollRepo := postgresql.NewPayrollRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, settingsCache)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		staffRepo,
		attendanceRepo,
		settingsSvc,
		cfg.Generation.Timeout,
		cfg.Generation.Parallelism,
	)

	if cfg.Generation.AutoRun {
		scheduler := cron.NewScheduler()
		cron.NewPayrollJobs(payrollSvc).RegisterJobs(scheduler, cfg.Generation.AutoRunEvery)
		scheduler.Start()
		defer scheduler.Stop()
	}

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, jwtService)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(cfg, jwtService, payrollHandler, settingsHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Forced shutdown:", err)
	}
}
