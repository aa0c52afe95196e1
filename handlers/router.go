package handlers

import (
	"net/http"

	"sunnah-steps/helper"
	"sunnah-steps/middleware"
	"sunnah-steps/models"
	"sunnah-steps/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// RouterDeps carries everything NewRouter needs to mount the API.
type RouterDeps struct {
	AuthService     services.AuthService
	TokenService    services.TokenService
	ProgressService services.ProgressService
	ArticleService  services.ArticleService
	Helper          *helper.HTTPHelper
	Logger          *logrus.Logger
	Metrics         *middleware.Metrics
	Gatherer        prometheus.Gatherer

	// EnforceContentRoles restricts article mutations to admins and scholars.
	EnforceContentRoles bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(cors())

	authHandler := NewAuthHandler(deps.AuthService, deps.Helper)
	dashboardHandler := NewDashboardHandler(deps.ProgressService, deps.Helper)
	articleHandler := NewArticleHandler(deps.ArticleService, deps.Helper)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	requireAuth := middleware.AuthMiddleware(deps.TokenService, deps.Helper, deps.Metrics)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.GetProfile)
	}

	dashboard := router.Group("/dashboard", requireAuth)
	{
		dashboard.GET("/progress", dashboardHandler.GetProgress)
		dashboard.POST("/bookmark", dashboardHandler.ToggleBookmark)
		dashboard.POST("/read", dashboardHandler.RecordRead)
	}

	articles := router.Group("/articles")
	{
		articles.GET("", articleHandler.GetArticles)
		articles.GET("/:slug", articleHandler.GetArticle)

		mutate := []gin.HandlerFunc{requireAuth}
		if deps.EnforceContentRoles {
			mutate = append(mutate, middleware.RequireRole(deps.AuthService, deps.Helper, models.RoleAdmin, models.RoleScholar))
		}

		editor := articles.Group("", mutate...)
		editor.POST("", articleHandler.CreateArticle)
		editor.PUT("/:slug", articleHandler.UpdateArticle)
		editor.DELETE("/:slug", articleHandler.DeleteArticle)
	}

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
