package utils

import (
	"sort"
	"strings"
)

const (
	// MinDetectionConfidence gates which vision signals are considered at all.
	MinDetectionConfidence = 0.7
	// MaxFoodItems caps how many recognized foods feed one meal analysis.
	MaxFoodItems = 10
)

const (
	DetectionSourceLabel  = "label"
	DetectionSourceObject = "object"
)

// BoundingBox locates an object detection within the image (ratios 0–1).
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Detection is one raw labeled signal from the vision call.
type Detection struct {
	Name       string       `json:"name"`
	Confidence float64      `json:"confidence"` // 0–1
	Source     string       `json:"source"`     // "label" | "object"
	Box        *BoundingBox `json:"boundingBox,omitempty"`
}

// FoodItem is a detection that passed the food filter, deduplicated by name.
type FoodItem struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// foodVocabulary is a coarse recall-oriented term list. Substring matching
// against it deliberately lets meal-context words like "plate" through;
// nutrient resolution degrades those to the default vector anyway.
var foodVocabulary = []string{
	"food", "meal", "dish", "cuisine", "snack", "breakfast", "lunch", "dinner",
	"plate", "bowl",
	"rice", "bread", "pasta", "noodle", "pizza", "burger", "sandwich",
	"salad", "soup", "curry", "stew", "fries",
	"chicken", "beef", "pork", "lamb", "fish", "salmon", "tuna", "shrimp",
	"seafood", "meat", "bacon", "sausage",
	"egg", "cheese", "milk", "yogurt", "butter", "tofu",
	"bean", "lentil", "vegetable", "tomato", "potato", "carrot", "onion",
	"broccoli", "spinach", "lettuce", "corn", "mushroom", "pepper", "cucumber",
	"fruit", "apple", "banana", "orange", "grape", "mango", "berry", "avocado",
	"dessert", "cake", "cookie", "chocolate", "pastry", "juice",
}

// IsFoodRelated reports whether a detection name contains a food
// vocabulary term (case-insensitive).
func IsFoodRelated(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	for _, term := range foodVocabulary {
		if strings.Contains(n, term) {
			return true
		}
	}
	return false
}

// ExtractFoodItems filters raw detections down to the foods that drive the
// analysis: confidence ≥ 0.7, food-related name, one item per lowercased
// name (first occurrence wins, so callers list label detections before
// object detections), sorted by confidence descending, capped at 10.
// Pure: an empty result is normal, not an error.
func ExtractFoodItems(detections []Detection) []FoodItem {
	seen := make(map[string]struct{}, len(detections))
	items := make([]FoodItem, 0, len(detections))

	for _, d := range detections {
		if d.Confidence < MinDetectionConfidence {
			continue
		}
		if !IsFoodRelated(d.Name) {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(d.Name))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, FoodItem{
			Name:       d.Name,
			Confidence: d.Confidence,
			Source:     d.Source,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Confidence > items[j].Confidence
	})
	if len(items) > MaxFoodItems {
		items = items[:MaxFoodItems]
	}
	return items
}
