package routes

import (
	"os"

	"dinepro-backend/config"
	"dinepro-backend/controllers"
	"dinepro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		origins = append(origins, frontend)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	{
		// Public: customers submit feedback without a session.
		api.POST("/feedback", controllers.CreateFeedback)

		admin := api.Group("")
		admin.Use(utils.AuthMiddleware())
		{
			admin.GET("/feedback", controllers.GetFeedbacks)
			admin.PATCH("/feedback/:id/contact", controllers.MarkContacted)

			analyticsController := controllers.AnalyticsController{}
			admin.GET("/analytics", analyticsController.GetAnalytics)
		}
	}

	return r
}
