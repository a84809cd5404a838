package utils

import (
	"fmt"
	"testing"
)

func TestExtractFoodItemsFiltersAndSorts(t *testing.T) {
	detections := []Detection{
		{Name: "Chicken", Confidence: 0.85, Source: DetectionSourceLabel},
		{Name: "Rice", Confidence: 0.9, Source: DetectionSourceLabel},
		{Name: "Table", Confidence: 0.95, Source: DetectionSourceLabel},  // not food
		{Name: "Salad", Confidence: 0.5, Source: DetectionSourceLabel},   // below threshold
		{Name: "rice", Confidence: 0.8, Source: DetectionSourceObject},   // duplicate, later
	}

	items := ExtractFoodItems(detections)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].Name != "Rice" || items[0].Confidence != 0.9 {
		t.Fatalf("expected first item Rice@0.9 (label wins over object dup), got %+v", items[0])
	}
	if items[1].Name != "Chicken" {
		t.Fatalf("expected second item Chicken, got %+v", items[1])
	}
}

func TestExtractFoodItemsDedupFirstOccurrenceWins(t *testing.T) {
	detections := []Detection{
		{Name: "Pasta", Confidence: 0.75, Source: DetectionSourceLabel},
		{Name: "pasta", Confidence: 0.99, Source: DetectionSourceObject},
	}

	items := ExtractFoodItems(detections)
	if len(items) != 1 {
		t.Fatalf("expected 1 item after dedup, got %d", len(items))
	}
	if items[0].Confidence != 0.75 || items[0].Source != DetectionSourceLabel {
		t.Fatalf("expected the earlier label detection to win, got %+v", items[0])
	}
}

func TestExtractFoodItemsCap(t *testing.T) {
	var detections []Detection
	for i := 0; i < 15; i++ {
		detections = append(detections, Detection{
			Name:       fmt.Sprintf("rice dish %d", i),
			Confidence: 0.71 + float64(i)*0.01,
			Source:     DetectionSourceLabel,
		})
	}

	items := ExtractFoodItems(detections)
	if len(items) != MaxFoodItems {
		t.Fatalf("expected cap at %d items, got %d", MaxFoodItems, len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Confidence > items[i-1].Confidence {
			t.Fatalf("items not sorted by confidence descending at %d", i)
		}
	}
}

func TestExtractFoodItemsEmpty(t *testing.T) {
	if items := ExtractFoodItems(nil); len(items) != 0 {
		t.Fatalf("expected no items for no detections, got %+v", items)
	}
	detections := []Detection{
		{Name: "Laptop", Confidence: 0.99, Source: DetectionSourceLabel},
	}
	if items := ExtractFoodItems(detections); len(items) != 0 {
		t.Fatalf("expected no items for non-food detections, got %+v", items)
	}
}

func TestIsFoodRelated(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Fried Chicken", true},
		{"rice", true},
		{"Plate", true}, // accepted false positive, degrades to default nutrients
		{"Laptop", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsFoodRelated(tc.name); got != tc.want {
			t.Fatalf("IsFoodRelated(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
