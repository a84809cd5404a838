package models

import "gorm.io/gorm"

// HealthCondition is one declared chronic condition on a user's profile.
// Condition holds a code from the closed set in utils (diabetes, bp, …);
// Details is free text ("type 2, diagnosed 2019").
type HealthCondition struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	Condition string `gorm:"size:32;not null"`
	Details   string
}
