package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	_ "github.com/noah-isme/ldbb-analytics-api/api/swagger"
	"github.com/noah-isme/ldbb-analytics-api/internal/handler"
	"github.com/noah-isme/ldbb-analytics-api/internal/repository"
	"github.com/noah-isme/ldbb-analytics-api/internal/service"
	"github.com/noah-isme/ldbb-analytics-api/internal/source"
	"github.com/noah-isme/ldbb-analytics-api/pkg/cache"
	"github.com/noah-isme/ldbb-analytics-api/pkg/config"
	"github.com/noah-isme/ldbb-analytics-api/pkg/database"
	"github.com/noah-isme/ldbb-analytics-api/pkg/logger"
)

// @title LearnDash BuddyBoss Analytics API
// @version 1.0.0
// @description Aggregated LMS and community analytics for the admin dashboard
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

	metrics := service.NewMetricsService()

	// redis is optional: without it every request recomputes from sources
	var cacheRepo service.CacheRepository
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		repo := repository.NewCacheRepository(client)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cacheRepo != nil)

	var (
		lms       service.LMSSource
		catalog   service.CourseCatalog
		quizzes   service.QuizProvider
		community interface {
			service.CommunitySource
			service.CommunityProvider
		}
		users service.UserStore
	)

	switch cfg.Sources.Driver {
	case config.SourceDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("postgres connection failed", "error", err)
		}
		defer db.Close() //nolint:errcheck
		ld := repository.NewLearnDashRepository(db)
		bb := repository.NewBuddyBossRepository(db)
		lms, catalog, quizzes, community = ld, ld, ld, bb
		users = repository.NewUserRepository(db)
	default:
		ld := source.NewLearnDash()
		bb := source.NewBuddyBoss()
		lms, catalog, quizzes, community = ld, ld, ld, bb
		users = source.NewUserDirectory()
	}

	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		LMS:                   lms,
		Community:             community,
		Cache:                 cacheSvc,
		Metrics:               metrics,
		Logger:                logr,
		CacheTTL:              cfg.Dashboard.CacheTTL,
		TopCoursesLimit:       cfg.Dashboard.TopCoursesLimit,
		RecentActivitiesLimit: cfg.Dashboard.RecentActivitiesLimit,
	})
	courseSvc := service.NewCourseService(catalog, cacheSvc, logr, cfg.Stats.CacheTTL)
	quizSvc := service.NewQuizService(quizzes, cacheSvc, logr, cfg.Stats.CacheTTL)
	communitySvc := service.NewCommunityService(community, cacheSvc, logr, cfg.Stats.CacheTTL, cfg.Dashboard.ActiveGroupsLimit)
	exportSvc := service.NewExportService(dashboardSvc, logr)
	authSvc := service.NewAuthService(users, cfg.JWT, logr)

	r := handler.NewRouter(handler.RouterParams{
		Config:    cfg,
		Logger:    logr,
		Metrics:   metrics,
		Auth:      authSvc,
		Dashboard: handler.NewDashboardHandler(dashboardSvc, exportSvc),
		Courses:   handler.NewCourseHandler(courseSvc),
		Quizzes:   handler.NewQuizHandler(quizSvc),
		Community: handler.NewCommunityHandler(communitySvc),
		AuthH:     handler.NewAuthHandler(authSvc),
		MetricsH:  handler.NewMetricsHandler(metrics),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "sources", cfg.Sources.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
