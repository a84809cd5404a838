package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// VisionDetector is the vision collaborator: image bytes in, labeled
// detections out. An error here is unrecoverable for the whole analysis.
type VisionDetector interface {
	DetectFoodSignals(ctx context.Context, image []byte) ([]utils.Detection, error)
}

// NutrientLookup resolves one food name to a per-100g nutrient vector.
// Failures are recovered per food via the local fallback table.
type NutrientLookup interface {
	LookupNutrients(ctx context.Context, foodName string) (utils.NutrientVector, error)
}

// AnalysisResult is the terminal aggregate of one meal analysis. Computed
// fresh per request, then handed to the sink; the engine keeps no state.
type AnalysisResult struct {
	RecognizedFoods []utils.FoodItem       `json:"recognized_foods"`
	Nutrition       utils.NutrientVector   `json:"nutrition"`
	HealthRisks     []utils.RiskFinding    `json:"health_risks"`
	Warnings        []utils.MealWarning    `json:"warnings"`
	Recommendations []utils.Recommendation `json:"recommendations"`
	Category        string                 `json:"category"`
	ProcessingTime  time.Duration          `json:"-"`
}

type AnalysisService struct {
	db            *gorm.DB
	vision        VisionDetector
	nutrition     NutrientLookup
	lookupTimeout time.Duration
}

func NewAnalysisService(db *gorm.DB, vision VisionDetector, nutrition NutrientLookup) *AnalysisService {
	return &AnalysisService{
		db:            db,
		vision:        vision,
		nutrition:     nutrition,
		lookupTimeout: NutritionLookupTimeout,
	}
}

// lookupOutcome keeps the resolved-vs-fallback distinction visible for
// logging; aggregation math treats both the same.
type lookupOutcome struct {
	food     utils.FoodItem
	vec      utils.NutrientVector
	fallback bool
}

// Analyze runs the full pipeline over one meal photo: detect → extract →
// resolve nutrients (concurrent, failure-isolated) → weighted aggregate →
// risk rules → recommendations → category. Zero detections is a normal
// result (all-zero nutrition, healthy category), not an error; only a
// failed vision call errors out.
func (s *AnalysisService) Analyze(ctx context.Context, image []byte, conditions []string) (*AnalysisResult, error) {
	start := time.Now()

	detections, err := s.vision.DetectFoodSignals(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("food recognition failed: %w", err)
	}

	foods := utils.ExtractFoodItems(detections)

	outcomes := make([]lookupOutcome, len(foods))
	var wg sync.WaitGroup
	for i, f := range foods {
		wg.Add(1)
		go func(i int, f utils.FoodItem) {
			defer wg.Done()
			outcomes[i] = s.resolveNutrients(ctx, f)
		}(i, f)
	}
	wg.Wait()

	var total utils.NutrientVector
	for _, o := range outcomes {
		total = total.AddWeighted(o.vec, o.food.Confidence)
	}

	risks, warnings := utils.EvaluateHealthRisks(total, conditions)

	return &AnalysisResult{
		RecognizedFoods: foods,
		Nutrition:       total,
		HealthRisks:     risks,
		Warnings:        warnings,
		Recommendations: utils.BuildRecommendations(risks),
		Category:        utils.CategorizeMeal(risks),
		ProcessingTime:  time.Since(start),
	}, nil
}

// resolveNutrients tries the external lookup with its own timeout, then the
// local table. It never returns an error — partial lookup success across a
// meal is expected and normal.
func (s *AnalysisService) resolveNutrients(ctx context.Context, f utils.FoodItem) lookupOutcome {
	lctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	vec, err := s.nutrition.LookupNutrients(lctx, f.Name)
	if err != nil {
		log.Printf("nutrient lookup fell back to local table for %q: %v", f.Name, err)
		return lookupOutcome{food: f, vec: utils.FallbackNutrients(f.Name), fallback: true}
	}
	return lookupOutcome{food: f, vec: vec}
}

// Submit marks the meal as processing and runs the analysis in the
// background. The caller's request returns immediately; the result lands on
// the meal row exactly once via finish.
func (s *AnalysisService) Submit(mealID, userID uint, image []byte, conditions []string) {
	s.db.Model(&models.Meal{}).Where("id = ?", mealID).
		Updates(map[string]interface{}{"status": models.MealStatusProcessing, "error": ""})

	go func() {
		res, err := s.Analyze(context.Background(), image, conditions)
		s.finish(mealID, userID, res, err)
	}()
}

// finish writes the analysis outcome back to the meal record. If the meal
// was deleted while the analysis ran, the result is discarded and logged —
// never retried.
func (s *AnalysisService) finish(mealID, userID uint, res *AnalysisResult, runErr error) {
	var meal models.Meal
	if err := s.db.First(&meal, mealID).Error; err != nil {
		log.Printf("analysis result discarded: meal %d no longer exists (%v)", mealID, err)
		return
	}

	if runErr != nil {
		meal.Status = models.MealStatusFailed
		meal.Error = runErr.Error()
		meal.Category = utils.CategoryUnknown
		if err := s.db.Save(&meal).Error; err != nil {
			log.Printf("failed to record analysis failure for meal %d: %v", mealID, err)
		}
		return
	}

	now := time.Now()
	meal.Status = models.MealStatusCompleted
	meal.Error = ""
	meal.Category = res.Category
	meal.ProcessingMs = res.ProcessingTime.Milliseconds()
	meal.AnalyzedAt = &now

	n := res.Nutrition
	meal.Calories, meal.Protein, meal.Carbs, meal.Fat = n.Calories, n.Protein, n.Carbs, n.Fat
	meal.Fiber, meal.Sugar, meal.Sodium, meal.Potassium = n.Fiber, n.Sugar, n.Sodium, n.Potassium
	meal.Cholesterol, meal.SaturatedFat, meal.TransFat = n.Cholesterol, n.SaturatedFat, n.TransFat
	meal.VitaminA, meal.VitaminC, meal.Calcium, meal.Iron = n.VitaminA, n.VitaminC, n.Calcium, n.Iron

	meal.RecognizedFoods = mustJSON(res.RecognizedFoods)
	meal.HealthRisks = mustJSON(res.HealthRisks)
	meal.Warnings = mustJSON(res.Warnings)
	meal.Recommendations = mustJSON(res.Recommendations)

	if err := s.db.Save(&meal).Error; err != nil {
		log.Printf("failed to record analysis result for meal %d: %v", mealID, err)
		return
	}

	EmitMealAnalyzed(userID, &meal)
	for _, f := range res.HealthRisks {
		if f.Severity == utils.SeverityDanger {
			EmitAlert(userID, meal.ID, string(f.Severity), f.Message)
		}
	}
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
