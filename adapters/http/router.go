package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-builder/internal/render"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
	"github.com/khoahotran/portfolio-builder/pkg/metrics"
)

type RouterDeps struct {
	Logger           logger.Logger
	JWTService       *auth.JWTService
	AuthHandler      *AuthHandler
	PortfolioHandler *PortfolioHandler
	PageHandler      *PageHandler
	FeedHandler      *FeedHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLogger(d.Logger),
		metrics.GinMiddleware(),
		ErrorMiddleware(d.Logger),
	)

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.StaticFS("/static", http.FS(render.StaticFS()))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", d.AuthHandler.Register)
		authGroup.POST("/login", d.AuthHandler.Login)
	}

	router.GET("/templates", d.PortfolioHandler.ListTemplates)

	portfolioGroup := router.Group("/portfolio")
	{
		portfolioGroup.POST("", d.PortfolioHandler.Publish)
		portfolioGroup.POST("/profile-pic", AuthMiddleware(d.JWTService, d.Logger), d.PortfolioHandler.UploadProfilePicture)
		portfolioGroup.GET("/:username", d.PortfolioHandler.GetByUsername)
	}

	router.GET("/p/:username", d.PageHandler.Show)
	router.GET("/feed.xml", d.FeedHandler.RSS)

	return router
}
