package models

import "encoding/json"

// BatchPredictRequest is the body of POST /api/batch-predict. Matches is kept
// raw so the handler can tell a missing field from one that is not an array.
type BatchPredictRequest struct {
	Matches json.RawMessage `json:"matches"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status      string  `json:"status"`
	ModelLoaded bool    `json:"model_loaded"`
	Timestamp   float64 `json:"timestamp"`
}

// ErrorResponse is the JSON body of every failed request. Index points at the
// offending entry of a batch request.
type ErrorResponse struct {
	Error string `json:"error"`
	Index *int   `json:"index,omitempty"`
}
