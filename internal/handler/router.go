package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/ldbb-analytics-api/internal/middleware"
	"github.com/noah-isme/ldbb-analytics-api/internal/service"
	"github.com/noah-isme/ldbb-analytics-api/pkg/config"
	"github.com/noah-isme/ldbb-analytics-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ldbb-analytics-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ldbb-analytics-api/pkg/middleware/requestid"

	"go.uber.org/zap"
)

// RouterParams bundles everything the router mounts.
type RouterParams struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *service.MetricsService
	Auth      *service.AuthService
	Dashboard *DashboardHandler
	Courses   *CourseHandler
	Quizzes   *QuizHandler
	Community *CommunityHandler
	AuthH     *AuthHandler
	MetricsH  *MetricsHandler
}

// NewRouter assembles the gin engine with all routes mounted.
func NewRouter(p RouterParams) *gin.Engine {
	if p.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(p.Logger))
	r.Use(corsmiddleware.New(p.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(p.Metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", p.MetricsH.Health)
	r.GET("/ready", p.MetricsH.Ready)
	r.GET("/metrics", p.MetricsH.Prometheus)

	if p.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(p.Config.APIPrefix)

	api.POST("/auth/login", p.AuthH.Login)
	api.POST("/auth/refresh", p.AuthH.Refresh)

	protected := api.Group("")
	protected.Use(middleware.JWT(p.Auth))

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/stats", p.Dashboard.Stats)
		dashboard.GET("/summary-stats", p.Dashboard.Summary)
		dashboard.GET("/user-engagement", p.Dashboard.UserEngagement)
		dashboard.GET("/course-enrollment", p.Dashboard.CourseEnrollment)
		dashboard.GET("/course-completion-trend", p.Dashboard.CompletionTrend)
		dashboard.GET("/forum-activity", p.Dashboard.ForumActivity)
		dashboard.GET("/top-courses", p.Dashboard.TopCourses)
		dashboard.GET("/recent-activities", p.Dashboard.RecentActivities)
		dashboard.GET("/export", p.Dashboard.Export)
	}

	protected.GET("/courses", p.Courses.List)
	protected.GET("/courses/:courseId", p.Courses.Detail)
	protected.GET("/courses/:courseId/quizzes", p.Quizzes.ByCourse)

	protected.GET("/quizzes", p.Quizzes.List)
	protected.GET("/quizzes/:quizId", p.Quizzes.Detail)

	protected.GET("/users/current", p.AuthH.Current)
	protected.GET("/users/stats", p.Community.UserStats)
	protected.GET("/users/:userId/activities", p.Community.UserActivities)
	protected.GET("/forums/stats", p.Community.ForumStats)
	protected.GET("/forums/activity", p.Community.ForumActivity)
	protected.GET("/groups/stats", p.Community.GroupStats)
	protected.GET("/groups/most-active", p.Community.MostActiveGroups)

	return r
}
