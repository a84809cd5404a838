package utils

import (
	"fmt"
	"strings"
)

// Condition codes a user can declare on their profile. Unknown codes are
// inert: they match no rule and raise no error.
const (
	ConditionDiabetes     = "diabetes"
	ConditionBP           = "bp"
	ConditionCholesterol  = "cholesterol"
	ConditionKidney       = "kidney"
	ConditionHeart        = "heart"
	ConditionThyroid      = "thyroid"
	ConditionObesity      = "obesity"
	ConditionPCOS         = "pcos"
	ConditionLactose      = "lactose"
	ConditionGluten       = "gluten"
	ConditionAnemia       = "anemia"
	ConditionIBS          = "ibs"
	ConditionOsteoporosis = "osteoporosis"
	ConditionGout         = "gout"
	ConditionAllergies    = "allergies"
	ConditionNone         = "none"
)

// RiskSeverity categorizes how serious a finding is.
type RiskSeverity string

const (
	SeverityWarning RiskSeverity = "warning"
	SeverityDanger  RiskSeverity = "danger"
)

// RiskFinding is one condition-specific threshold breach. Immutable once
// produced; only ever appended to a meal's finding list.
type RiskFinding struct {
	Type      string       `json:"type"`
	Severity  RiskSeverity `json:"severity"`
	Message   string       `json:"message"`
	Value     float64      `json:"value"`
	Threshold float64      `json:"threshold"`
}

// MealWarning is a generic, condition-independent flag (currently only the
// high-calorie check).
type MealWarning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Recommendation is actionable advice derived from a finding type.
type Recommendation struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"` // "low" | "medium" | "high"
}

// Meal health categories derived from the severity distribution of findings.
const (
	CategoryHealthy   = "healthy"
	CategoryModerate  = "moderate"
	CategoryUnhealthy = "unhealthy"
	CategoryUnknown   = "unknown"
)

// riskRule guards one nutrient threshold behind a condition. The table is
// the whole dispatch: adding a condition is a data change here, not code.
type riskRule struct {
	condition   string
	findingType string
	nutrient    string // label used in messages
	unit        string
	threshold   float64
	severity    RiskSeverity
	value       func(NutrientVector) float64
}

// Evaluated top to bottom; output order follows table order so results are
// reproducible. All matching rules fire — they are not mutually exclusive.
var riskRules = []riskRule{
	{ConditionDiabetes, "high_carbs", "carbohydrate", "g", 60, SeverityWarning,
		func(n NutrientVector) float64 { return n.Carbs }},
	{ConditionDiabetes, "high_sugar", "sugar", "g", 15, SeverityDanger,
		func(n NutrientVector) float64 { return n.Sugar }},
	{ConditionBP, "high_sodium", "sodium", "mg", 500, SeverityDanger,
		func(n NutrientVector) float64 { return n.Sodium }},
	{ConditionKidney, "high_potassium", "potassium", "mg", 400, SeverityDanger,
		func(n NutrientVector) float64 { return n.Potassium }},
	{ConditionCholesterol, "high_fat", "fat", "g", 20, SeverityWarning,
		func(n NutrientVector) float64 { return n.Fat }},
}

// highCalorieThreshold applies to every meal regardless of conditions.
const highCalorieThreshold = 600

// EvaluateHealthRisks runs the rule table for the given conditions against
// the meal's aggregated nutrients. An empty or nil condition set produces
// no condition-specific findings; the calorie warning can still fire.
// Thresholds are strict: a value exactly at the limit does not trigger.
func EvaluateHealthRisks(n NutrientVector, conditions []string) ([]RiskFinding, []MealWarning) {
	present := make(map[string]struct{}, len(conditions))
	for _, c := range conditions {
		present[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}

	findings := make([]RiskFinding, 0, len(riskRules))
	for _, r := range riskRules {
		if _, ok := present[r.condition]; !ok {
			continue
		}
		v := r.value(n)
		if v <= r.threshold {
			continue
		}
		findings = append(findings, RiskFinding{
			Type:     r.findingType,
			Severity: r.severity,
			Message: fmt.Sprintf("High %s: %.1f%s exceeds the %.1f%s limit for %s.",
				r.nutrient, v, r.unit, r.threshold, r.unit, conditionLabel(r.condition)),
			Value:     v,
			Threshold: r.threshold,
		})
	}

	var warnings []MealWarning
	if n.Calories > highCalorieThreshold {
		warnings = append(warnings, MealWarning{
			Type:    "high_calories",
			Message: fmt.Sprintf("This meal is high in calories (%.0f kcal).", n.Calories),
		})
	}
	return findings, warnings
}

func conditionLabel(code string) string {
	switch code {
	case ConditionBP:
		return "high blood pressure"
	case ConditionKidney:
		return "kidney disease"
	case ConditionCholesterol:
		return "high cholesterol"
	default:
		return code
	}
}

// recommendationTable maps finding types to dietary advice.
var recommendationTable = map[string]Recommendation{
	"high_carbs": {
		Type:     "dietary",
		Message:  "Reduce carbohydrate portions; prefer whole grains and non-starchy vegetables.",
		Priority: "medium",
	},
	"high_sugar": {
		Type:     "dietary",
		Message:  "Cut back on sugary foods and drinks; choose fresh fruit instead.",
		Priority: "high",
	},
	"high_sodium": {
		Type:     "dietary",
		Message:  "Choose low-sodium alternatives and limit processed or salty foods.",
		Priority: "high",
	},
	"high_potassium": {
		Type:     "dietary",
		Message:  "Limit potassium-rich foods such as bananas, potatoes, and beans.",
		Priority: "high",
	},
	"high_fat": {
		Type:     "dietary",
		Message:  "Opt for leaner proteins and use less oil or butter when cooking.",
		Priority: "medium",
	},
}

// BuildRecommendations emits one recommendation per finding, in finding
// order. Finding types without a table entry are skipped silently.
func BuildRecommendations(findings []RiskFinding) []Recommendation {
	recs := make([]Recommendation, 0, len(findings))
	for _, f := range findings {
		if rec, ok := recommendationTable[f.Type]; ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// CategorizeMeal is a pure function of the finding severities: any danger
// makes the meal unhealthy, any warning makes it moderate, an empty list is
// healthy. Meals that have not been analyzed yet carry CategoryUnknown at
// the model level, not here.
func CategorizeMeal(findings []RiskFinding) string {
	category := CategoryHealthy
	for _, f := range findings {
		switch f.Severity {
		case SeverityDanger:
			return CategoryUnhealthy
		case SeverityWarning:
			category = CategoryModerate
		}
	}
	return category
}
