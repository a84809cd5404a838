package utils

import "strings"

// NutrientVector is the fixed set of nutrient quantities tracked per food
// and per meal. Grams unless noted; sodium/potassium/cholesterol/calcium/iron
// in mg, vitamins in IU/mg as reported by the lookup source. Values never go
// negative: the only mutation path is weighted addition of resolved vectors.
type NutrientVector struct {
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	Fiber        float64 `json:"fiber"`
	Sugar        float64 `json:"sugar"`
	Sodium       float64 `json:"sodium"`
	Potassium    float64 `json:"potassium"`
	Cholesterol  float64 `json:"cholesterol"`
	SaturatedFat float64 `json:"saturatedFat"`
	TransFat     float64 `json:"transFat"`
	VitaminA     float64 `json:"vitaminA"`
	VitaminC     float64 `json:"vitaminC"`
	Calcium      float64 `json:"calcium"`
	Iron         float64 `json:"iron"`
}

// AddWeighted returns a new vector with o scaled by weight and added in.
// A non-positive weight is treated as 1 (unknown confidence counts fully).
func (v NutrientVector) AddWeighted(o NutrientVector, weight float64) NutrientVector {
	if weight <= 0 {
		weight = 1
	}
	v.Calories += o.Calories * weight
	v.Protein += o.Protein * weight
	v.Carbs += o.Carbs * weight
	v.Fat += o.Fat * weight
	v.Fiber += o.Fiber * weight
	v.Sugar += o.Sugar * weight
	v.Sodium += o.Sodium * weight
	v.Potassium += o.Potassium * weight
	v.Cholesterol += o.Cholesterol * weight
	v.SaturatedFat += o.SaturatedFat * weight
	v.TransFat += o.TransFat * weight
	v.VitaminA += o.VitaminA * weight
	v.VitaminC += o.VitaminC * weight
	v.Calcium += o.Calcium * weight
	v.Iron += o.Iron * weight
	return v
}

// NutrientsFromMap flattens a lookup response (Edamam/USDA-style keys) into
// a NutrientVector. Missing keys stay zero.
func NutrientsFromMap(n map[string]float64) NutrientVector {
	return NutrientVector{
		Calories:     pick(n, "ENERC_KCAL", "Energy", "kcal", "Calories"),
		Protein:      pick(n, "PROCNT", "Protein"),
		Carbs:        pick(n, "CHOCDF", "Carbohydrate, by difference", "Carbs"),
		Fat:          pick(n, "FAT", "Total lipid (fat)", "Fat"),
		Fiber:        pick(n, "FIBTG", "Fiber", "Dietary fiber"),
		Sugar:        pick(n, "SUGAR", "Sugar"),
		Sodium:       pick(n, "NA", "Sodium"),
		Potassium:    pick(n, "K", "Potassium"),
		Cholesterol:  pick(n, "CHOLE", "Cholesterol"),
		SaturatedFat: pick(n, "FASAT", "FattyAcids,Saturated"),
		TransFat:     pick(n, "FATRN", "TransFattyAcids"),
		VitaminA:     pick(n, "VITA_RAE", "Vitamin A"),
		VitaminC:     pick(n, "VITC", "Vitamin C"),
		Calcium:      pick(n, "CA", "Calcium"),
		Iron:         pick(n, "FE", "Iron"),
	}
}

// pick returns the first matching key's value, trying exact then
// case-insensitive matches.
func pick(n map[string]float64, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := n[k]; ok {
			return v
		}
		for nk, v := range n {
			if strings.EqualFold(nk, k) {
				return v
			}
		}
	}
	return 0
}

// fallbackNutrients holds per-100g reference values for common foods, used
// when the external lookup is unavailable or returns nothing.
var fallbackNutrients = map[string]NutrientVector{
	"rice":    {Calories: 130, Protein: 2.7, Carbs: 28.2, Fat: 0.3, Fiber: 0.4, Sugar: 0.1, Sodium: 1, Potassium: 35, SaturatedFat: 0.1},
	"chicken": {Calories: 165, Protein: 31, Fat: 3.6, Sodium: 74, Potassium: 256, Cholesterol: 85, SaturatedFat: 1},
	"bread":   {Calories: 265, Protein: 9, Carbs: 49, Fat: 3.2, Fiber: 2.7, Sugar: 5, Sodium: 491, Potassium: 115, SaturatedFat: 0.7, Calcium: 144, Iron: 3.6},
	"pasta":   {Calories: 131, Protein: 5, Carbs: 25, Fat: 1.1, Fiber: 1.8, Sugar: 0.6, Sodium: 1, Potassium: 44, Iron: 0.5},
	"noodle":  {Calories: 138, Protein: 4.5, Carbs: 25, Fat: 2.1, Fiber: 1.2, Sugar: 0.6, Sodium: 5, Potassium: 40},
	"egg":     {Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11, Sugar: 1.1, Sodium: 124, Potassium: 126, Cholesterol: 373, SaturatedFat: 3.3, VitaminA: 149, Iron: 1.2},
	"fish":    {Calories: 206, Protein: 22, Fat: 12, Sodium: 61, Potassium: 384, Cholesterol: 63, SaturatedFat: 2.5},
	"salmon":  {Calories: 208, Protein: 20, Fat: 13, Sodium: 59, Potassium: 363, Cholesterol: 55, SaturatedFat: 3.1},
	"beef":    {Calories: 250, Protein: 26, Fat: 15, Sodium: 72, Potassium: 318, Cholesterol: 90, SaturatedFat: 6, Iron: 2.6},
	"potato":  {Calories: 77, Protein: 2, Carbs: 17, Fat: 0.1, Fiber: 2.2, Sugar: 0.8, Sodium: 6, Potassium: 421, VitaminC: 19.7},
	"tomato":  {Calories: 18, Protein: 0.9, Carbs: 3.9, Fat: 0.2, Fiber: 1.2, Sugar: 2.6, Sodium: 5, Potassium: 237, VitaminA: 42, VitaminC: 13.7},
	"salad":   {Calories: 15, Protein: 1.4, Carbs: 2.9, Fat: 0.2, Fiber: 1.3, Sugar: 0.8, Sodium: 28, Potassium: 194, VitaminA: 370, VitaminC: 9.2},
	"apple":   {Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2, Fiber: 2.4, Sugar: 10.4, Sodium: 1, Potassium: 107, VitaminC: 4.6},
	"banana":  {Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3, Fiber: 2.6, Sugar: 12.2, Sodium: 1, Potassium: 358, VitaminC: 8.7},
	"cheese":  {Calories: 402, Protein: 25, Carbs: 1.3, Fat: 33, Sugar: 0.5, Sodium: 621, Potassium: 98, Cholesterol: 105, SaturatedFat: 21, Calcium: 721, VitaminA: 263},
	"milk":    {Calories: 61, Protein: 3.2, Carbs: 4.8, Fat: 3.3, Sugar: 5.1, Sodium: 43, Potassium: 150, Cholesterol: 10, SaturatedFat: 1.9, Calcium: 113},
	"pizza":   {Calories: 266, Protein: 11, Carbs: 33, Fat: 10, Fiber: 2.3, Sugar: 3.6, Sodium: 598, Potassium: 172, Cholesterol: 17, SaturatedFat: 4.5, Calcium: 188},
	"burger":  {Calories: 295, Protein: 17, Carbs: 24, Fat: 14, Fiber: 1.1, Sugar: 4.1, Sodium: 414, Potassium: 223, Cholesterol: 37, SaturatedFat: 5},
	"soup":    {Calories: 36, Protein: 1.8, Carbs: 5.6, Fat: 0.9, Fiber: 0.8, Sugar: 1.6, Sodium: 334, Potassium: 96},
	"curry":   {Calories: 120, Protein: 6, Carbs: 10, Fat: 6.5, Fiber: 1.9, Sugar: 3.2, Sodium: 412, Potassium: 280},
}

// DefaultNutrients is the low-magnitude vector used when nothing else
// matches — keeps non-food detections (e.g. "plate") from skewing the meal.
func DefaultNutrients() NutrientVector {
	return NutrientVector{
		Calories:  50,
		Protein:   2,
		Carbs:     8,
		Fat:       1,
		Fiber:     1,
		Sugar:     1,
		Sodium:    10,
		Potassium: 50,
	}
}

// FallbackNutrients resolves a food name against the local reference table:
// either the name contains a table key or the key contains the name.
// Unmatched names get DefaultNutrients.
func FallbackNutrients(foodName string) NutrientVector {
	name := strings.ToLower(strings.TrimSpace(foodName))
	if name != "" {
		for key, vec := range fallbackNutrients {
			if strings.Contains(name, key) || strings.Contains(key, name) {
				return vec
			}
		}
	}
	return DefaultNutrients()
}
