package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campuskit/academics-api/api/swagger"
	"github.com/campuskit/academics-api/internal/handler"
	"github.com/campuskit/academics-api/internal/middleware"
	"github.com/campuskit/academics-api/internal/repository"
	"github.com/campuskit/academics-api/internal/service"
	"github.com/campuskit/academics-api/pkg/cache"
	"github.com/campuskit/academics-api/pkg/config"
	"github.com/campuskit/academics-api/pkg/database"
	"github.com/campuskit/academics-api/pkg/export"
	"github.com/campuskit/academics-api/pkg/logger"
	corsmiddleware "github.com/campuskit/academics-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campuskit/academics-api/pkg/middleware/requestid"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// @title Academics API
// @version 1.0.0
// @description Academic records engine: entity graph, cascading deletions, attendance and grading
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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	classTeacherRepo := repository.NewClassTeacherRepository(db)
	facultySubjectRepo := repository.NewFacultySubjectRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	markRepo := repository.NewMarkRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	cascadeRepo := repository.NewCascadeRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	authSvc := service.NewAuthService(userRepo, cfg.JWT, validate, logr)
	academicSvc := service.NewAcademicService(batchRepo, classRepo, subjectRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, batchRepo, validate, logr)
	facultySvc := service.NewFacultyService(facultyRepo, userRepo, validate, logr)
	assignmentSvc := service.NewAssignmentService(classTeacherRepo, facultySubjectRepo, validate, logr)
	cascadeSvc := service.NewCascadeService(cascadeRepo, batchRepo, classRepo, subjectRepo, facultyRepo, studentRepo, attendanceRepo, markRepo, metricsSvc, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, facultySubjectRepo, validate, logr)
	resultSvc := service.NewResultService(markRepo, studentRepo, facultySubjectRepo, validate, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, facultySubjectRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(studentSvc, attendanceSvc, resultSvc, timetableSvc, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(resultSvc, studentSvc, academicSvc, export.NewCSVExporter(), export.NewPDFExporter(), cfg.Exports.Institution, logr)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Batch:      handler.NewBatchHandler(academicSvc, cascadeSvc),
		Class:      handler.NewClassHandler(academicSvc, cascadeSvc, studentSvc),
		Subject:    handler.NewSubjectHandler(academicSvc, cascadeSvc),
		Student:    handler.NewStudentHandler(studentSvc, cascadeSvc),
		Faculty:    handler.NewFacultyHandler(facultySvc, cascadeSvc),
		Assignment: handler.NewAssignmentHandler(assignmentSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc, facultySvc, studentSvc, dashboardSvc),
		Result:     handler.NewResultHandler(resultSvc, facultySvc, studentSvc, dashboardSvc),
		Timetable:  handler.NewTimetableHandler(timetableSvc, facultySvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc, studentSvc),
		Export:     handler.NewExportHandler(exportSvc),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	handler.RegisterRoutes(api, handlers, middleware.JWT(authSvc), handler.RouterOptions{
		DashboardEnabled: cfg.Dashboard.Enabled,
		ExportsEnabled:   cfg.Exports.Enabled,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
