package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ncaillard/dentoplan-api/api/swagger"
	"github.com/ncaillard/dentoplan-api/internal/handler"
	internalmiddleware "github.com/ncaillard/dentoplan-api/internal/middleware"
	"github.com/ncaillard/dentoplan-api/internal/models"
	"github.com/ncaillard/dentoplan-api/internal/oracle"
	"github.com/ncaillard/dentoplan-api/internal/repository"
	"github.com/ncaillard/dentoplan-api/internal/service"
	"github.com/ncaillard/dentoplan-api/pkg/cache"
	"github.com/ncaillard/dentoplan-api/pkg/config"
	"github.com/ncaillard/dentoplan-api/pkg/database"
	"github.com/ncaillard/dentoplan-api/pkg/logger"
	corsmiddleware "github.com/ncaillard/dentoplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ncaillard/dentoplan-api/pkg/middleware/requestid"
)

// @title Dentoplan API
// @version 0.1.0
// @description Scheduling engine for a dental practice
// @BasePath /
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

	policy, err := models.NewSchedulingPolicy(models.PolicyParams{
		WorkingDays:         cfg.Practice.WorkingDays,
		OpenTime:            cfg.Practice.OpenTime,
		CloseTime:           cfg.Practice.CloseTime,
		LunchStart:          cfg.Practice.LunchStart,
		LunchEnd:            cfg.Practice.LunchEnd,
		BufferMinutes:       cfg.Practice.BufferMinutes,
		FirstBookable:       cfg.Practice.FirstBookable,
		LastBookable:        cfg.Practice.LastBookable,
		SlotIntervalMinutes: cfg.Practice.SlotIntervalMinutes,
		DefaultVisitMinutes: cfg.Practice.DefaultVisitMinutes,
	})
	if err != nil {
		logr.Sugar().Fatalw("invalid practice calendar", "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	appointmentRepo := repository.NewAppointmentRepository(db)
	patientRepo := repository.NewPatientRepository(db)

	var planStore service.PlanStore
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, using in-memory plan store", zap.Error(err))
		planStore = service.NewMemoryPlanStore(cfg.Scheduler.PlanTTL)
	} else {
		defer redisClient.Close()
		planStore = service.NewRedisPlanStore(redisClient, cfg.Scheduler.PlanTTL)
	}

	var planOracle oracle.Oracle
	if cfg.Oracle.Enabled {
		geminiOracle, err := oracle.NewGeminiOracle(context.Background(), cfg.Oracle.APIKey, cfg.Oracle.Model)
		if err != nil {
			logr.Warn("oracle disabled", zap.Error(err))
		} else {
			defer geminiOracle.Close()
			planOracle = geminiOracle
		}
	}

	classifier := service.NewClassifier()
	availability := service.NewAvailabilityService(appointmentRepo, policy, logr)
	planner := service.NewVisitPlanner(availability, policy, cfg.Scheduler.MaxDayAdvances, logr)
	sequences := service.NewTreatmentScheduleService(patientRepo, appointmentRepo, planner, classifier, nil, logr)
	reschedule := service.NewRescheduleService(appointmentRepo, patientRepo, availability, planOracle, planStore, policy, cfg.Scheduler.LookaheadDays, nil, logr)
	appointments := service.NewAppointmentService(appointmentRepo, patientRepo, availability, policy, nil, logr)
	patients := service.NewPatientService(patientRepo, nil, logr)
	metrics := service.NewMetricsService()
	auth := service.NewAuthService(service.AuthConfig{
		Username:          cfg.Admin.Username,
		PasswordHash:      cfg.Admin.PasswordHash,
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "dentoplan-api",
	}, nil, logr)

	dayAnalysis := service.NewDayAnalysisService(appointmentRepo, availability, classifier, policy, logr)
	schedulingHandler := handler.NewSchedulingHandler(sequences, reschedule, availability, dayAnalysis, classifier, metrics)
	appointmentHandler := handler.NewAppointmentHandler(appointments)
	patientHandler := handler.NewPatientHandler(patients)
	authHandler := handler.NewAuthHandler(auth)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/status", metricsHandler.Status)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(internalmiddleware.JWT(auth))

	protected.GET("/slots", schedulingHandler.FreeSlots)
	protected.GET("/treatments/analysis", schedulingHandler.AnalyzeTreatment)
	protected.GET("/schedule/analysis", schedulingHandler.AnalyzeSchedule)
	protected.POST("/schedule/sequence", schedulingHandler.ScheduleSequence)
	protected.POST("/schedule/bulk-reschedule", schedulingHandler.PlanBulkReschedule)
	protected.POST("/schedule/execute-plan", schedulingHandler.ExecutePlan)

	protected.GET("/appointments", appointmentHandler.List)
	protected.GET("/appointments/:id", appointmentHandler.Get)
	protected.POST("/appointments", appointmentHandler.Create)

	protected.GET("/patients", patientHandler.List)
	protected.GET("/patients/:id", patientHandler.Get)
	protected.POST("/patients", patientHandler.Register)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
