package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPredictedResult_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		result   PredictedResult
		expected bool
	}{
		{name: "home win", result: ResultHomeWin, expected: true},
		{name: "away win", result: ResultAwayWin, expected: true},
		{name: "draw", result: ResultDraw, expected: true},
		{name: "lower case", result: "draw", expected: false},
		{name: "empty", result: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPrediction_JSONFieldNames(t *testing.T) {
	p := Prediction{
		MatchID:         "m-1",
		HomeTeam:        "Arsenal",
		AwayTeam:        "Chelsea",
		League:          "PL",
		MatchDate:       "2025-03-20",
		Probabilities:   Probabilities{HomeWin: 0.5, Draw: 0.3, AwayWin: 0.2},
		PredictedResult: ResultHomeWin,
		PredictedScore:  PredictedScore{Home: 2, Away: 1},
		Confidence:      0.75,
		Insights:        []string{"a"},
		KeyFactors:      []string{"b"},
		Timestamp:       time.Date(2025, 3, 19, 12, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{
		"match_id", "home_team", "away_team", "league", "match_date", "probabilities",
		"predicted_result", "predicted_score", "confidence", "insights", "key_factors", "timestamp",
	} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing JSON field %q in %s", key, raw)
		}
	}

	var probs map[string]float64
	if err := json.Unmarshal(fields["probabilities"], &probs); err != nil {
		t.Fatalf("unmarshal probabilities: %v", err)
	}
	if probs["home_win"] != 0.5 || probs["draw"] != 0.3 || probs["away_win"] != 0.2 {
		t.Errorf("unexpected probabilities %v", probs)
	}
}

func TestErrorResponse_OmitsIndexWhenUnset(t *testing.T) {
	raw, err := json.Marshal(ErrorResponse{Error: "Invalid request format"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"error":"Invalid request format"}` {
		t.Errorf("unexpected body %s", raw)
	}

	idx := 0
	raw, err = json.Marshal(ErrorResponse{Error: "Missing required field: league", Index: &idx})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"error":"Missing required field: league","index":0}` {
		t.Errorf("unexpected body %s", raw)
	}
}
