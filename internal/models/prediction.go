package models

import (
	"time"
)

// PredictedResult is the headline outcome of a prediction.
type PredictedResult string

const (
	ResultHomeWin PredictedResult = "HOME_WIN"
	ResultAwayWin PredictedResult = "AWAY_WIN"
	ResultDraw    PredictedResult = "DRAW"
)

// IsValid reports whether r is one of the known results.
func (r PredictedResult) IsValid() bool {
	switch r {
	case ResultHomeWin, ResultAwayWin, ResultDraw:
		return true
	}
	return false
}

// MatchRequest asks for a single match forecast. Date is optional and, when
// empty, defaults to the current day.
type MatchRequest struct {
	HomeTeam string `json:"home_team" validate:"required"`
	AwayTeam string `json:"away_team" validate:"required"`
	League   string `json:"league" validate:"required"`
	Date     string `json:"date,omitempty"`
}

// Probabilities holds the three outcome probabilities. The placeholder model
// does not guarantee they sum to one.
type Probabilities struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

// PredictedScore is the most likely final score.
type PredictedScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Prediction is the output record of a single match forecast. It is never
// mutated after creation.
type Prediction struct {
	MatchID         string          `json:"match_id"`
	HomeTeam        string          `json:"home_team"`
	AwayTeam        string          `json:"away_team"`
	League          string          `json:"league"`
	MatchDate       string          `json:"match_date"`
	Probabilities   Probabilities   `json:"probabilities"`
	PredictedResult PredictedResult `json:"predicted_result"`
	PredictedScore  PredictedScore  `json:"predicted_score"`
	Confidence      float64         `json:"confidence"`
	Insights        []string        `json:"insights"`
	KeyFactors      []string        `json:"key_factors"`
	Timestamp       time.Time       `json:"timestamp"`
}

// UpcomingMatch is a synthetic fixture. It is generated per request and never stored.
type UpcomingMatch struct {
	ID       string `json:"id"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	League   string `json:"league"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM kickoff
}
