package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"backend/utils"
)

type stubVision struct {
	detections []utils.Detection
	err        error
}

func (s *stubVision) DetectFoodSignals(ctx context.Context, image []byte) ([]utils.Detection, error) {
	return s.detections, s.err
}

type stubNutrition struct {
	vectors map[string]utils.NutrientVector
	err     error
}

func (s *stubNutrition) LookupNutrients(ctx context.Context, foodName string) (utils.NutrientVector, error) {
	if s.err != nil {
		return utils.NutrientVector{}, s.err
	}
	v, ok := s.vectors[strings.ToLower(foodName)]
	if !ok {
		return utils.NutrientVector{}, ErrNutrientsUnavailable
	}
	return v, nil
}

func newTestAnalysis(vision VisionDetector, nutrition NutrientLookup) *AnalysisService {
	// nil db is fine: Analyze never touches persistence
	return NewAnalysisService(nil, vision, nutrition)
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAnalyzeEndToEndHealthy(t *testing.T) {
	vision := &stubVision{detections: []utils.Detection{
		{Name: "rice", Confidence: 0.9, Source: utils.DetectionSourceLabel},
		{Name: "chicken", Confidence: 0.85, Source: utils.DetectionSourceLabel},
	}}
	nutrition := &stubNutrition{vectors: map[string]utils.NutrientVector{
		"rice":    {Calories: 130, Carbs: 28.2, Potassium: 35},
		"chicken": {Calories: 165, Protein: 31, Potassium: 256},
	}}

	res, err := newTestAnalysis(vision, nutrition).Analyze(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if len(res.RecognizedFoods) != 2 {
		t.Fatalf("expected 2 recognized foods, got %+v", res.RecognizedFoods)
	}
	wantCalories := 130*0.9 + 165*0.85
	if !almostEqual(res.Nutrition.Calories, wantCalories) {
		t.Fatalf("calories = %f, want %f", res.Nutrition.Calories, wantCalories)
	}
	if len(res.HealthRisks) != 0 {
		t.Fatalf("no conditions means no findings, got %+v", res.HealthRisks)
	}
	if res.Category != utils.CategoryHealthy {
		t.Fatalf("category = %q, want healthy", res.Category)
	}
	if res.ProcessingTime < 0 {
		t.Fatalf("processing time must be non-negative")
	}
}

func TestAnalyzeKidneyConditionFlagsPotassium(t *testing.T) {
	vision := &stubVision{detections: []utils.Detection{
		{Name: "rice", Confidence: 0.9, Source: utils.DetectionSourceLabel},
		{Name: "chicken", Confidence: 0.85, Source: utils.DetectionSourceLabel},
	}}
	nutrition := &stubNutrition{vectors: map[string]utils.NutrientVector{
		"rice":    {Calories: 130, Potassium: 300},
		"chicken": {Calories: 165, Potassium: 250},
	}}

	res, err := newTestAnalysis(vision, nutrition).Analyze(context.Background(), nil, []string{"kidney"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	// 300*0.9 + 250*0.85 = 482.5 > 400
	if !almostEqual(res.Nutrition.Potassium, 482.5) {
		t.Fatalf("potassium = %f, want 482.5", res.Nutrition.Potassium)
	}
	if len(res.HealthRisks) != 1 || res.HealthRisks[0].Type != "high_potassium" ||
		res.HealthRisks[0].Severity != utils.SeverityDanger {
		t.Fatalf("expected one high_potassium danger finding, got %+v", res.HealthRisks)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].Priority != "high" {
		t.Fatalf("expected one high-priority recommendation, got %+v", res.Recommendations)
	}
	if res.Category != utils.CategoryUnhealthy {
		t.Fatalf("category = %q, want unhealthy", res.Category)
	}
}

func TestAnalyzeZeroDetections(t *testing.T) {
	vision := &stubVision{detections: []utils.Detection{
		{Name: "Laptop", Confidence: 0.99, Source: utils.DetectionSourceLabel},
		{Name: "rice", Confidence: 0.2, Source: utils.DetectionSourceLabel},
	}}

	res, err := newTestAnalysis(vision, &stubNutrition{}).Analyze(context.Background(), nil, []string{"diabetes"})
	if err != nil {
		t.Fatalf("zero qualifying detections is not an error: %v", err)
	}

	if len(res.RecognizedFoods) != 0 {
		t.Fatalf("expected no recognized foods, got %+v", res.RecognizedFoods)
	}
	if res.Nutrition != (utils.NutrientVector{}) {
		t.Fatalf("expected all-zero nutrition, got %+v", res.Nutrition)
	}
	if len(res.HealthRisks) != 0 || len(res.Warnings) != 0 {
		t.Fatalf("expected no findings or warnings, got %+v / %+v", res.HealthRisks, res.Warnings)
	}
	if res.Category != utils.CategoryHealthy {
		t.Fatalf("category = %q, want healthy", res.Category)
	}
}

func TestAnalyzeVisionFailureFailsAnalysis(t *testing.T) {
	vision := &stubVision{err: errors.New("rekognition unreachable")}

	_, err := newTestAnalysis(vision, &stubNutrition{}).Analyze(context.Background(), nil, nil)
	if err == nil {
		t.Fatal("vision failure must fail the whole analysis")
	}
	if !strings.Contains(err.Error(), "food recognition failed") {
		t.Fatalf("error should identify the recognition step: %v", err)
	}
}

func TestAnalyzeLookupFailureFallsBack(t *testing.T) {
	vision := &stubVision{detections: []utils.Detection{
		{Name: "rice", Confidence: 1.0, Source: utils.DetectionSourceLabel},
		{Name: "plate", Confidence: 1.0, Source: utils.DetectionSourceLabel},
	}}
	nutrition := &stubNutrition{err: errors.New("api down")}

	res, err := newTestAnalysis(vision, nutrition).Analyze(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("per-food lookup failures must not abort the meal: %v", err)
	}

	// rice resolves via the local table (130 kcal), "plate" has no table
	// entry and gets the default vector (50 kcal)
	if !almostEqual(res.Nutrition.Calories, 130+50) {
		t.Fatalf("calories = %f, want 180 (table fallback + default)", res.Nutrition.Calories)
	}
}

func TestAnalyzeConfidenceWeighting(t *testing.T) {
	nutrition := &stubNutrition{vectors: map[string]utils.NutrientVector{
		"salmon": {Calories: 208, Fat: 13},
	}}

	full, err := newTestAnalysis(&stubVision{detections: []utils.Detection{
		{Name: "salmon", Confidence: 1.0, Source: utils.DetectionSourceLabel},
	}}, nutrition).Analyze(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	half, err := newTestAnalysis(&stubVision{detections: []utils.Detection{
		{Name: "salmon", Confidence: 0.5, Source: utils.DetectionSourceLabel},
	}}, nutrition).Analyze(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(half.Nutrition.Calories*2, full.Nutrition.Calories) ||
		!almostEqual(half.Nutrition.Fat*2, full.Nutrition.Fat) {
		t.Fatalf("0.5 confidence must contribute exactly half: %+v vs %+v", half.Nutrition, full.Nutrition)
	}
}
