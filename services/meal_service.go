package services

import (
	"encoding/json"
	"fmt"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type MealService struct {
	db       *gorm.DB
	analysis *AnalysisService
}

func NewMealService(db *gorm.DB, analysis *AnalysisService) *MealService {
	return &MealService{db: db, analysis: analysis}
}

// LogMealPhoto stores the photo, creates the meal in processing state and
// kicks off the background analysis. The returned meal has no nutrition
// yet — clients poll or listen on the websocket for completion.
func (s *MealService) LogMealPhoto(user *models.User, mealType string, ateAt time.Time, imageBase64 string) (*models.Meal, error) {
	data, contentType, err := utils.DecodeBase64Image(imageBase64)
	if err != nil {
		return nil, err
	}

	photoURL, photoKey, err := utils.UploadImageToS3(data, contentType, fmt.Sprintf("meal-photos/%d/meal", user.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to store meal photo: %w", err)
	}

	meal := &models.Meal{
		UserID:   user.ID,
		Type:     mealType,
		AteAt:    ateAt,
		PhotoURL: photoURL,
		PhotoKey: photoKey,
		Status:   models.MealStatusProcessing,
		Category: utils.CategoryUnknown,
	}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, err
	}

	s.analysis.Submit(meal.ID, user.ID, data, ConditionCodes(user))
	return meal, nil
}

// Reanalyze re-runs the pipeline over the stored photo, picking up the
// user's current health conditions.
func (s *MealService) Reanalyze(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}
	if meal.PhotoKey == "" {
		return nil, fmt.Errorf("meal %d has no stored photo", mealID)
	}

	var user models.User
	if err := s.db.Preload("HealthConditions").First(&user, userID).Error; err != nil {
		return nil, err
	}

	data, err := utils.DownloadImageFromS3(meal.PhotoKey)
	if err != nil {
		return nil, err
	}

	s.analysis.Submit(meal.ID, userID, data, ConditionCodes(&user))
	return &meal, nil
}

func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

func (s *MealService) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListMealsByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListRecentMeals(userID uint, limit int) ([]models.Meal, error) {
	if limit <= 0 {
		limit = 3
	}
	var meals []models.Meal
	err := s.db.
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Limit(limit).
		Find(&meals).Error
	return meals, err
}

// DeleteMeal removes the meal row. An analysis still in flight will find
// the row gone and discard its result.
func (s *MealService) DeleteMeal(userID, mealID uint) error {
	return s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{}).Error
}

// MealRiskSummary is the flagged-meals view: only meals whose analysis
// produced findings or generic warnings.
type MealRiskSummary struct {
	MealID      uint                `json:"meal_id"`
	Type        string              `json:"type"`
	AteAt       time.Time           `json:"ate_at"`
	Category    string              `json:"category"`
	HealthRisks []utils.RiskFinding `json:"health_risks"`
	Warnings    []utils.MealWarning `json:"warnings"`
}

func (s *MealService) ListMealsWithRisks(userID uint, from, to *time.Time) ([]MealRiskSummary, error) {
	q := s.db.
		Where("user_id = ? AND status = ?", userID, models.MealStatusCompleted).
		Order("ate_at DESC")
	if from != nil && to != nil {
		q = q.Where("ate_at >= ? AND ate_at < ?", *from, *to)
	}

	var meals []models.Meal
	if err := q.Find(&meals).Error; err != nil {
		return nil, err
	}

	out := make([]MealRiskSummary, 0, len(meals))
	for _, m := range meals {
		var risks []utils.RiskFinding
		var warnings []utils.MealWarning
		_ = json.Unmarshal([]byte(m.HealthRisks), &risks)
		_ = json.Unmarshal([]byte(m.Warnings), &warnings)
		if len(risks) == 0 && len(warnings) == 0 {
			continue
		}
		out = append(out, MealRiskSummary{
			MealID:      m.ID,
			Type:        m.Type,
			AteAt:       m.AteAt,
			Category:    m.Category,
			HealthRisks: risks,
			Warnings:    warnings,
		})
	}
	return out, nil
}
