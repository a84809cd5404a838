package models

import "time"

type Alert struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	MealID    uint      `gorm:"index"`   // 0 when not tied to a meal
	Type      string    `gorm:"size:20"` // "danger" | "warning" | "info"
	Message   string    `gorm:"type:text"`
	CreatedAt time.Time
}
