package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/unsis-dev/exam-calendar-api/api/swagger"
	"github.com/unsis-dev/exam-calendar-api/internal/handler"
	"github.com/unsis-dev/exam-calendar-api/internal/middleware"
	"github.com/unsis-dev/exam-calendar-api/internal/models"
	"github.com/unsis-dev/exam-calendar-api/internal/repository"
	"github.com/unsis-dev/exam-calendar-api/internal/service"
	"github.com/unsis-dev/exam-calendar-api/pkg/cache"
	"github.com/unsis-dev/exam-calendar-api/pkg/config"
	"github.com/unsis-dev/exam-calendar-api/pkg/database"
	"github.com/unsis-dev/exam-calendar-api/pkg/logger"
	corsmiddleware "github.com/unsis-dev/exam-calendar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/unsis-dev/exam-calendar-api/pkg/middleware/requestid"
)

// @title Examination Calendar API
// @version 1.0.0
// @description Exam calendar generation and review for faculty programs
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, calendar cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	programRepo := repository.NewProgramRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	windowRepo := repository.NewWindowRepository(db)
	juryRepo := repository.NewJuryRepository(db)
	examRepo := repository.NewExamRepository(db)

	metricsSvc := service.NewMetricsService()
	resolver := service.NewPeriodResolver(periodRepo, logr)
	windows := service.NewWindowManager(windowRepo, cfg.Scheduler.WindowDefaultDays, logr)
	expander := service.NewWorkloadExpander(programRepo, scheduleRepo, courseRepo, cfg.Scheduler, logr)

	calendarSvc := service.NewCalendarService(examRepo, courseRepo, resolver, redisClient, validate, logr, cfg.Scheduler.CalendarCacheTTL)
	generatorSvc := service.NewCalendarGeneratorService(
		resolver, windows, expander,
		examRepo, juryRepo, teacherRepo, roomRepo, courseRepo, scheduleRepo, periodRepo,
		db, calendarSvc, metricsSvc, validate, logr, cfg.Scheduler,
	)

	calendarHandler := handler.NewCalendarHandler(generatorSvc, calendarSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(cfg.JWT.Secret))

	calendar := api.Group("/calendar")
	{
		calendar.GET("", calendarHandler.View)
		calendar.GET("/check", calendarHandler.Check)
		calendar.GET("/export/csv", calendarHandler.ExportCSV)
		calendar.GET("/export/pdf", calendarHandler.ExportPDF)

		calendar.POST("/generate", middleware.RequireRole(models.RoleDepartmentHead), calendarHandler.Generate)
		calendar.POST("/submit", middleware.RequireRole(models.RoleDepartmentHead), calendarHandler.Submit)
		calendar.POST("/approve", middleware.RequireRole(models.RoleRegistrar), calendarHandler.Approve)
		calendar.POST("/reject", middleware.RequireRole(models.RoleRegistrar), calendarHandler.Reject)
		calendar.PATCH("/requests/:id", middleware.RequireRole(models.RoleRegistrar), calendarHandler.Review)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
