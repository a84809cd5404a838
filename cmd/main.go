package main

import (
	"log"

	"backend/config"
	"backend/controllers"
	"backend/routes"
	"backend/services"
	"backend/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	vision, err := services.NewVisionService()
	if err != nil {
		log.Fatalf("vision service init failed: %v", err)
	}
	nutrition := services.NewNutritionService()
	analysis := services.NewAnalysisService(config.DB, vision, nutrition)
	meals := services.NewMealService(config.DB, analysis)
	analytics := services.NewAnalyticsService(config.DB)

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Fatalf("push service init failed: %v", err)
	}
	services.InitAlertDeps(config.DB, hub, push)

	r := routes.SetupRouter(routes.Controllers{
		Meals:     controllers.NewMealController(meals),
		Analytics: controllers.NewAnalyticsController(analytics),
		Devices:   controllers.NewDeviceController(push),
		Realtime:  controllers.NewRealtimeController(hub),
	})
	r.Run(":8080")
}
