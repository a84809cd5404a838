package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MealStatusProcessing = "processing"
	MealStatusCompleted  = "completed"
	MealStatusFailed     = "failed"
)

// One photographed meal and the analysis snapshot written back to it.
// Status moves processing → completed|failed exactly once per attempt.
type Meal struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Type   string    // “Breakfast”|“Lunch”|…
	AteAt  time.Time // timestamp of the meal

	PhotoURL string
	PhotoKey string // S3 object key, needed for re-analysis

	Status   string `gorm:"size:16;not null;default:processing"`
	Error    string `gorm:"type:text"` // human-readable reason when Status == failed
	Category string `gorm:"size:16"`   // healthy|moderate|unhealthy, unknown until analyzed

	// Aggregated meal nutrition (confidence-weighted)
	Calories     float64
	Protein      float64
	Carbs        float64
	Fat          float64
	Fiber        float64
	Sugar        float64
	Sodium       float64
	Potassium    float64
	Cholesterol  float64
	SaturatedFat float64
	TransFat     float64
	VitaminA     float64
	VitaminC     float64
	Calcium      float64
	Iron         float64

	// JSON-encoded analysis detail
	RecognizedFoods string `gorm:"type:text"`
	HealthRisks     string `gorm:"type:text"`
	Warnings        string `gorm:"type:text"`
	Recommendations string `gorm:"type:text"`

	ProcessingMs int64
	AnalyzedAt   *time.Time
}
