package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"backend/utils"
)

// ErrNutrientsUnavailable signals that the lookup produced no usable data.
// Callers fall back to the local table; it never fails an analysis.
var ErrNutrientsUnavailable = errors.New("nutrient data unavailable")

// NutritionLookupTimeout bounds each per-food lookup so one slow call
// cannot stall the rest of the meal.
const NutritionLookupTimeout = 5 * time.Second

type NutritionService struct {
	appID   string
	appKey  string
	baseURL string
	client  *http.Client
}

func NewNutritionService() *NutritionService {
	return &NutritionService{
		appID:   os.Getenv("NUTRITION_APP_ID"),
		appKey:  os.Getenv("NUTRITION_APP_KEY"),
		baseURL: "https://api.edamam.com",
		client:  &http.Client{Timeout: NutritionLookupTimeout},
	}
}

// parser endpoint response: per-100g nutrients on the first hint
type foodParserResponse struct {
	Hints []struct {
		Food struct {
			Label     string             `json:"label"`
			Nutrients map[string]float64 `json:"nutrients"`
		} `json:"food"`
	} `json:"hints"`
}

// LookupNutrients resolves a food name to its per-100g nutrient vector via
// the food database parser endpoint. Any transport error, non-200 status,
// or empty hint list comes back as ErrNutrientsUnavailable (wrapped).
func (s *NutritionService) LookupNutrients(ctx context.Context, foodName string) (utils.NutrientVector, error) {
	u := fmt.Sprintf("%s/api/food-database/v2/parser?ingr=%s&app_id=%s&app_key=%s",
		s.baseURL, url.QueryEscape(foodName), s.appID, s.appKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return utils.NutrientVector{}, fmt.Errorf("%w: %v", ErrNutrientsUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return utils.NutrientVector{}, fmt.Errorf("%w: %v", ErrNutrientsUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return utils.NutrientVector{}, fmt.Errorf("%w: %v", ErrNutrientsUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return utils.NutrientVector{}, fmt.Errorf("%w: parser API error %d", ErrNutrientsUnavailable, resp.StatusCode)
	}

	var pr foodParserResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return utils.NutrientVector{}, fmt.Errorf("%w: bad parser JSON: %v", ErrNutrientsUnavailable, err)
	}
	if len(pr.Hints) == 0 || len(pr.Hints[0].Food.Nutrients) == 0 {
		return utils.NutrientVector{}, fmt.Errorf("%w: no match for %q", ErrNutrientsUnavailable, foodName)
	}

	return utils.NutrientsFromMap(pr.Hints[0].Food.Nutrients), nil
}
