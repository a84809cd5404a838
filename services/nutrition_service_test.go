package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupNutrientsParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ingr"); got != "brown rice" {
			t.Errorf("ingr query = %q, want %q", got, "brown rice")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hints":[{"food":{"label":"Brown Rice","nutrients":{
			"ENERC_KCAL":111,"PROCNT":2.6,"CHOCDF":23,"FAT":0.9,"FIBTG":1.8,"NA":5,"K":43
		}}}]}`))
	}))
	defer srv.Close()

	s := &NutritionService{baseURL: srv.URL, client: srv.Client()}
	v, err := s.LookupNutrients(context.Background(), "brown rice")
	if err != nil {
		t.Fatalf("LookupNutrients returned error: %v", err)
	}
	if v.Calories != 111 || v.Protein != 2.6 || v.Carbs != 23 || v.Fat != 0.9 {
		t.Fatalf("macros wrong: %+v", v)
	}
	if v.Fiber != 1.8 || v.Sodium != 5 || v.Potassium != 43 {
		t.Fatalf("micros wrong: %+v", v)
	}
}

func TestLookupNutrientsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := &NutritionService{baseURL: srv.URL, client: srv.Client()}
	_, err := s.LookupNutrients(context.Background(), "rice")
	if !errors.Is(err, ErrNutrientsUnavailable) {
		t.Fatalf("expected ErrNutrientsUnavailable, got %v", err)
	}
}

func TestLookupNutrientsNoHints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hints":[]}`))
	}))
	defer srv.Close()

	s := &NutritionService{baseURL: srv.URL, client: srv.Client()}
	_, err := s.LookupNutrients(context.Background(), "zorbulon")
	if !errors.Is(err, ErrNutrientsUnavailable) {
		t.Fatalf("expected ErrNutrientsUnavailable, got %v", err)
	}
}

func TestLookupNutrientsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	s := &NutritionService{baseURL: srv.URL, client: &http.Client{}}
	_, err := s.LookupNutrients(context.Background(), "rice")
	if !errors.Is(err, ErrNutrientsUnavailable) {
		t.Fatalf("expected ErrNutrientsUnavailable, got %v", err)
	}
}
