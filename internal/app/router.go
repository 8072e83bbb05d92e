package app

import (
	"sauticare_web/docs"
	"sauticare_web/internal/middleware"
	"sauticare_web/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/signup", c.auth.Signup)
		public.GET("/auth/state", c.auth.SessionState)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.RequireSession(a.Store))
	{
		authorized.GET("/auth/me", c.auth.Me)
		authorized.POST("/auth/logout", c.auth.Logout)

		lessons := authorized.Group("/lessons")
		{
			lessons.GET("", c.lesson.List)
			lessons.GET("/:id", c.lesson.Detail)
			lessons.GET("/progress/my", c.lesson.MyProgress)
		}

		practice := authorized.Group("/practice")
		{
			practice.POST("/lessons/:lessonId", c.practice.LoadLesson)
			practice.POST("/session", c.practice.StartSession)
			practice.POST("/record/start", c.practice.StartRecording)
			practice.POST("/record/fail", c.practice.FailRecording)
			practice.POST("/record/stop", c.practice.StopRecording)
			practice.POST("/next", c.practice.Next)
			practice.POST("/previous", c.practice.Previous)
			practice.GET("/state", c.practice.State)
		}

		analytics := authorized.Group("/analytics")
		{
			analytics.GET("/overview", c.analytics.Overview)
			analytics.GET("/dashboard", c.analytics.Dashboard)
			analytics.GET("/trend", c.analytics.Trend)
			analytics.GET("/achievements", c.analytics.Achievements)
		}

		voice := authorized.Group("/voice")
		{
			voice.POST("/samples", c.voice.Upload)
			voice.GET("/samples", c.voice.List)
			voice.DELETE("/samples/:id", c.voice.Delete)
		}
	}
}
