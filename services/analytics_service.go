package services

import (
	"context"
	"math"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

// ---------- Summary ----------

type NutrAvg struct {
	AvgPerDay float64 `json:"avg_per_day"`
	Total     float64 `json:"total"`
	Unit      string  `json:"unit,omitempty"`
}

type AnalyticsSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Macros map[string]NutrAvg `json:"macros"` // calories, protein, carbs, fat
	Micros map[string]NutrAvg `json:"micros"` // fiber, sugar, sodium, potassium

	Categories struct {
		Healthy   int64 `json:"healthy"`
		Moderate  int64 `json:"moderate"`
		Unhealthy int64 `json:"unhealthy"`
	} `json:"categories"`

	Meals struct {
		Analyzed int64   `json:"analyzed"`
		Failed   int64   `json:"failed"`
		RiskPct  float64 `json:"risk_pct"` // share of analyzed meals not categorized healthy
	} `json:"meals"`

	Metadata struct {
		DaysCounted int `json:"days_counted"`
	} `json:"metadata"`
}

// Summary aggregates completed meal analyses over a date range. Plain
// averaging over calendar days — deliberately simple, not part of the
// analysis engine.
func (s *AnalyticsService) Summary(ctx context.Context, userID uint, from, to time.Time) (*AnalyticsSummary, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND ate_at >= ? AND ate_at < ?",
			userID, models.MealStatusCompleted, dayStart(from), dayStart(to).AddDate(0, 0, 1)).
		Order("ate_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	out := &AnalyticsSummary{
		Macros: map[string]NutrAvg{},
		Micros: map[string]NutrAvg{},
	}
	out.Range.From = dayStart(from).Format("2006-01-02")
	out.Range.To = dayStart(to).Format("2006-01-02")

	days := int(dayStart(to).Sub(dayStart(from)).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	out.Metadata.DaysCounted = days

	totals := map[string]float64{}
	for _, m := range meals {
		totals["calories"] += m.Calories
		totals["protein"] += m.Protein
		totals["carbs"] += m.Carbs
		totals["fat"] += m.Fat
		totals["fiber"] += m.Fiber
		totals["sugar"] += m.Sugar
		totals["sodium"] += m.Sodium
		totals["potassium"] += m.Potassium

		switch m.Category {
		case "healthy":
			out.Categories.Healthy++
		case "moderate":
			out.Categories.Moderate++
		case "unhealthy":
			out.Categories.Unhealthy++
		}
	}

	units := map[string]string{
		"calories": "kcal", "protein": "g", "carbs": "g", "fat": "g",
		"fiber": "g", "sugar": "g", "sodium": "mg", "potassium": "mg",
	}
	for _, k := range []string{"calories", "protein", "carbs", "fat"} {
		out.Macros[k] = NutrAvg{AvgPerDay: round1(totals[k] / float64(days)), Total: round1(totals[k]), Unit: units[k]}
	}
	for _, k := range []string{"fiber", "sugar", "sodium", "potassium"} {
		out.Micros[k] = NutrAvg{AvgPerDay: round1(totals[k] / float64(days)), Total: round1(totals[k]), Unit: units[k]}
	}

	out.Meals.Analyzed = int64(len(meals))
	if err := s.db.WithContext(ctx).Model(&models.Meal{}).
		Where("user_id = ? AND status = ? AND ate_at >= ? AND ate_at < ?",
			userID, models.MealStatusFailed, dayStart(from), dayStart(to).AddDate(0, 0, 1)).
		Count(&out.Meals.Failed).Error; err != nil {
		return nil, err
	}
	if len(meals) > 0 {
		flagged := out.Categories.Moderate + out.Categories.Unhealthy
		out.Meals.RiskPct = round1(float64(flagged) / float64(len(meals)) * 100)
	}
	return out, nil
}

// ---------- Daily trend ----------

type DailyTrendPoint struct {
	Date      string  `json:"date"`
	Meals     int64   `json:"meals"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
	Sugar     float64 `json:"sugar"`
	Sodium    float64 `json:"sodium"`
	Unhealthy int64   `json:"unhealthy"`
}

// DailyTrend buckets completed meals per calendar day, one point per day
// in range (missing days are zero points).
func (s *AnalyticsService) DailyTrend(ctx context.Context, userID uint, from, to time.Time) ([]DailyTrendPoint, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND ate_at >= ? AND ate_at < ?",
			userID, models.MealStatusCompleted, dayStart(from), dayStart(to).AddDate(0, 0, 1)).
		Find(&meals).Error; err != nil {
		return nil, err
	}

	idx := map[string]*DailyTrendPoint{}
	var points []DailyTrendPoint
	for d := dayStart(from); !d.After(dayStart(to)); d = d.AddDate(0, 0, 1) {
		points = append(points, DailyTrendPoint{Date: d.Format("2006-01-02")})
	}
	for i := range points {
		idx[points[i].Date] = &points[i]
	}

	for _, m := range meals {
		p, ok := idx[dayStart(m.AteAt).Format("2006-01-02")]
		if !ok {
			continue
		}
		p.Meals++
		p.Calories += m.Calories
		p.Protein += m.Protein
		p.Carbs += m.Carbs
		p.Fat += m.Fat
		p.Sugar += m.Sugar
		p.Sodium += m.Sodium
		if m.Category == "unhealthy" {
			p.Unhealthy++
		}
	}
	return points, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
