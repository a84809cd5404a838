package services

import (
	"fmt"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_alert = alertDeps{db: db, rt: rt, ps: ps}
}

// EmitAlert records a health alert for the user and fans it out over the
// websocket hub and push. Safe to call anywhere, including before init.
func EmitAlert(userID, mealID uint, typ, message string) {
	if _alert.db == nil {
		return // not initialized
	}
	a := &models.Alert{UserID: userID, MealID: mealID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if _alert.ps != nil {
		_alert.ps.PushToUser(userID, "Meal Health Alert", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID), "mealId": fmt.Sprintf("%d", mealID),
		})
	}
}

// EmitMealAnalyzed tells connected clients a meal's analysis landed.
// Realtime only — completion itself is not an alert.
func EmitMealAnalyzed(userID uint, meal *models.Meal) {
	if _alert.rt == nil {
		return
	}
	_alert.rt.Broadcast(userID, map[string]any{
		"kind": "meal.analyzed",
		"meal": map[string]any{
			"id":       meal.ID,
			"status":   meal.Status,
			"category": meal.Category,
		},
	})
}
