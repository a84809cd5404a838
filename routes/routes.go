package routes

import (
	"backend/controllers"
	"backend/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Meals     *controllers.MealController
	Analytics *controllers.AnalyticsController
	Devices   *controllers.DeviceController
	Realtime  *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.PUT("/health-conditions", controllers.UpdateHealthConditions)
		user.DELETE("/account", controllers.DeleteAccount)
		user.GET("/alerts", controllers.ListAlerts)
		user.POST("/notifications/toggle", controllers.ToggleNotifications)
		user.POST("/devices", ctrl.Devices.RegisterDevice)
	}

	// Meal photo analysis
	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", ctrl.Meals.AnalyzeMeal)
		meals.GET("", ctrl.Meals.ListMeals)
		meals.GET("/recent", ctrl.Meals.ListRecentMeals)
		meals.GET("/risks", ctrl.Meals.ListMealRisks)
		meals.GET("/:id", ctrl.Meals.GetMeal)
		meals.POST("/:id/reanalyze", ctrl.Meals.ReanalyzeMeal)
		meals.DELETE("/:id", ctrl.Meals.DeleteMeal)
	}

	analytics := r.Group("/analytics")
	analytics.Use(middlewares.AuthMiddleware())
	{
		analytics.GET("/summary", ctrl.Analytics.Summary)
		analytics.GET("/daily", ctrl.Analytics.DailyTrend)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/events", ctrl.Realtime.EventsWS)
	}

	return r
}
