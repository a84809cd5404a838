package utils

import (
	"math"
	"testing"
)

func nutrientValues(v NutrientVector) []float64 {
	return []float64{
		v.Calories, v.Protein, v.Carbs, v.Fat, v.Fiber, v.Sugar,
		v.Sodium, v.Potassium, v.Cholesterol, v.SaturatedFat, v.TransFat,
		v.VitaminA, v.VitaminC, v.Calcium, v.Iron,
	}
}

func TestFallbackNutrientsTableMatch(t *testing.T) {
	// name contains a table key
	v := FallbackNutrients("Fried Rice")
	if v.Calories != 130 {
		t.Fatalf("expected rice fallback (130 kcal), got %.1f", v.Calories)
	}
	// table key contains the name
	v = FallbackNutrients("chick")
	if v.Protein != 31 {
		t.Fatalf("expected chicken fallback (31g protein), got %.1f", v.Protein)
	}
}

func TestFallbackNutrientsDefault(t *testing.T) {
	v := FallbackNutrients("zorbulon")
	want := DefaultNutrients()
	if v != want {
		t.Fatalf("expected default vector for unknown food, got %+v", v)
	}
	if want.Calories != 50 || want.Protein != 2 || want.Carbs != 8 ||
		want.Fat != 1 || want.Fiber != 1 || want.Sugar != 1 ||
		want.Sodium != 10 || want.Potassium != 50 {
		t.Fatalf("default vector drifted: %+v", want)
	}
	if want.Cholesterol != 0 || want.VitaminC != 0 || want.Iron != 0 {
		t.Fatalf("default vector should be zero outside the core keys: %+v", want)
	}
}

func TestAddWeightedHalvesContribution(t *testing.T) {
	base := fallbackNutrients["chicken"]

	var half, full NutrientVector
	half = half.AddWeighted(base, 0.5)
	full = full.AddWeighted(base, 1.0)

	hv, fv := nutrientValues(half), nutrientValues(full)
	for i := range hv {
		if math.Abs(hv[i]*2-fv[i]) > 1e-9 {
			t.Fatalf("half-confidence contribution not exactly half at index %d: %.4f vs %.4f", i, hv[i], fv[i])
		}
	}
}

func TestAddWeightedUnknownConfidenceCountsFull(t *testing.T) {
	base := fallbackNutrients["rice"]
	var got NutrientVector
	got = got.AddWeighted(base, 0)
	if got != base {
		t.Fatalf("zero weight should count as full contribution, got %+v", got)
	}
}

func TestAggregationNeverNegative(t *testing.T) {
	var total NutrientVector
	for name, weight := range map[string]float64{"rice": 0.9, "chicken": 0.85, "cheese": 0.72, "zorbulon": 0.7} {
		total = total.AddWeighted(FallbackNutrients(name), weight)
	}
	for i, v := range nutrientValues(total) {
		if v < 0 {
			t.Fatalf("nutrient value %d went negative: %f", i, v)
		}
	}
}

func TestNutrientsFromMap(t *testing.T) {
	v := NutrientsFromMap(map[string]float64{
		"ENERC_KCAL": 130,
		"PROCNT":     2.7,
		"CHOCDF":     28.2,
		"FAT":        0.3,
		"NA":         1,
		"K":          35,
		"FASAT":      0.1,
	})
	if v.Calories != 130 || v.Protein != 2.7 || v.Carbs != 28.2 || v.Fat != 0.3 {
		t.Fatalf("macro mapping wrong: %+v", v)
	}
	if v.Sodium != 1 || v.Potassium != 35 || v.SaturatedFat != 0.1 {
		t.Fatalf("micro mapping wrong: %+v", v)
	}
	if v.Fiber != 0 || v.TransFat != 0 {
		t.Fatalf("missing keys must stay zero: %+v", v)
	}
}

func TestNutrientsFromMapCaseInsensitive(t *testing.T) {
	v := NutrientsFromMap(map[string]float64{"energy": 95, "protein": 4})
	if v.Calories != 95 || v.Protein != 4 {
		t.Fatalf("case-insensitive key pick failed: %+v", v)
	}
}
