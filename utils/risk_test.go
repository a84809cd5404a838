package utils

import (
	"strings"
	"testing"
)

func TestEvaluateHealthRisksRuleOrder(t *testing.T) {
	n := NutrientVector{Carbs: 70, Sugar: 20, Sodium: 600}
	findings, _ := EvaluateHealthRisks(n, []string{"diabetes", "bp"})

	if len(findings) != 3 {
		t.Fatalf("expected exactly 3 findings, got %d: %+v", len(findings), findings)
	}

	want := []struct {
		typ      string
		severity RiskSeverity
		value    float64
		limit    float64
	}{
		{"high_carbs", SeverityWarning, 70, 60},
		{"high_sugar", SeverityDanger, 20, 15},
		{"high_sodium", SeverityDanger, 600, 500},
	}
	for i, w := range want {
		f := findings[i]
		if f.Type != w.typ || f.Severity != w.severity || f.Value != w.value || f.Threshold != w.limit {
			t.Fatalf("finding %d = %+v, want %+v", i, f, w)
		}
	}
	if !strings.Contains(findings[0].Message, "70.0g") || !strings.Contains(findings[0].Message, "60.0g") {
		t.Fatalf("message should interpolate value and threshold to one decimal: %q", findings[0].Message)
	}
}

func TestEvaluateHealthRisksStrictThreshold(t *testing.T) {
	findings, _ := EvaluateHealthRisks(NutrientVector{Sodium: 500}, []string{"bp"})
	if len(findings) != 0 {
		t.Fatalf("sodium exactly at threshold must not trigger, got %+v", findings)
	}

	findings, _ = EvaluateHealthRisks(NutrientVector{Sodium: 500.01}, []string{"bp"})
	if len(findings) != 1 || findings[0].Type != "high_sodium" {
		t.Fatalf("sodium just above threshold must trigger, got %+v", findings)
	}
}

func TestEvaluateHealthRisksNoConditions(t *testing.T) {
	n := NutrientVector{Carbs: 200, Sugar: 50, Sodium: 2000, Potassium: 900, Fat: 80}

	for _, conditions := range [][]string{nil, {}, {"none"}, {"martian"}} {
		findings, _ := EvaluateHealthRisks(n, conditions)
		if len(findings) != 0 {
			t.Fatalf("conditions %v should produce no findings, got %+v", conditions, findings)
		}
	}
}

func TestEvaluateHealthRisksCalorieWarning(t *testing.T) {
	_, warnings := EvaluateHealthRisks(NutrientVector{Calories: 600}, nil)
	if len(warnings) != 0 {
		t.Fatalf("600 kcal exactly must not warn, got %+v", warnings)
	}

	_, warnings = EvaluateHealthRisks(NutrientVector{Calories: 750}, nil)
	if len(warnings) != 1 || warnings[0].Type != "high_calories" {
		t.Fatalf("expected one high_calories warning, got %+v", warnings)
	}
	if !strings.Contains(warnings[0].Message, "750") {
		t.Fatalf("warning should carry the rounded calorie count: %q", warnings[0].Message)
	}
}

func TestEvaluateHealthRisksKidneyPotassium(t *testing.T) {
	findings, _ := EvaluateHealthRisks(NutrientVector{Potassium: 482.5}, []string{"kidney"})
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %+v", findings)
	}
	f := findings[0]
	if f.Type != "high_potassium" || f.Severity != SeverityDanger || f.Threshold != 400 {
		t.Fatalf("unexpected finding %+v", f)
	}
}

func TestBuildRecommendations(t *testing.T) {
	findings := []RiskFinding{
		{Type: "high_sugar", Severity: SeverityDanger},
		{Type: "high_fat", Severity: SeverityWarning},
		{Type: "something_new", Severity: SeverityWarning}, // no table entry
	}

	recs := BuildRecommendations(findings)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations (unknown type skipped), got %+v", recs)
	}
	if recs[0].Priority != "high" || recs[1].Priority != "medium" {
		t.Fatalf("priorities wrong: %+v", recs)
	}
	for _, r := range recs {
		if r.Type != "dietary" || r.Message == "" {
			t.Fatalf("malformed recommendation: %+v", r)
		}
	}
}

func TestCategorizeMeal(t *testing.T) {
	cases := []struct {
		name     string
		findings []RiskFinding
		want     string
	}{
		{"empty is healthy", []RiskFinding{}, CategoryHealthy},
		{"warning only", []RiskFinding{{Severity: SeverityWarning}}, CategoryModerate},
		{"danger wins", []RiskFinding{{Severity: SeverityWarning}, {Severity: SeverityDanger}}, CategoryUnhealthy},
	}
	for _, tc := range cases {
		if got := CategorizeMeal(tc.findings); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCategorizeMealIdempotent(t *testing.T) {
	findings := []RiskFinding{
		{Severity: SeverityWarning},
		{Severity: SeverityDanger},
	}
	first := CategorizeMeal(findings)
	for i := 0; i < 5; i++ {
		if got := CategorizeMeal(findings); got != first {
			t.Fatalf("categorizer not idempotent: %q then %q", first, got)
		}
	}
}
