package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matchpredict/matchpredict/internal/models"
	"github.com/matchpredict/matchpredict/internal/predictor"
)

const defaultTeamsLeague = "PL"

// Predictor is the prediction backend the HTTP layer forwards to.
type Predictor interface {
	IsModelLoaded() bool
	PredictMatch(homeTeam, awayTeam, league, matchDate string) models.Prediction
	AvailableLeagues() []models.League
	TeamsByLeague(leagueID string) []models.Team
	UpcomingMatches(league string, days int) []models.UpcomingMatch
	LoadPredictionHistory(ctx context.Context) ([]models.Prediction, error)
	SavePrediction(ctx context.Context, p models.Prediction) error
	SaveBatchPredictions(ctx context.Context, ps []models.Prediction) error
}

// PredictionObserver is notified of every issued prediction.
type PredictionObserver interface {
	ObservePrediction(result string)
}

type Handler struct {
	predictor Predictor
	observer  PredictionObserver
	validate  *validator.Validate
	logger    *slog.Logger
	now       func() time.Time
}

func NewHandler(p Predictor, observer PredictionObserver, logger *slog.Logger) *Handler {
	return &Handler{
		predictor: p,
		observer:  observer,
		validate:  newValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) error {
	now := h.now()
	return writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.predictor.IsModelLoaded(),
		Timestamp:   float64(now.UnixNano()) / float64(time.Second),
	})
}

// Predict handles POST /api/predict
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) error {
	var req models.MatchRequest
	if err := decodeBody(r, &req); err != nil {
		return badRequest("Invalid request body")
	}
	req = trimMatch(req)
	if reqErr := validateMatch(h.validate, req); reqErr != nil {
		return reqErr
	}

	pred := h.predictor.PredictMatch(req.HomeTeam, req.AwayTeam, req.League, req.Date)
	if err := h.predictor.SavePrediction(r.Context(), pred); err != nil {
		return err
	}
	h.observe(pred)

	h.logger.Info("prediction issued",
		"match_id", pred.MatchID,
		"home_team", pred.HomeTeam,
		"away_team", pred.AwayTeam,
		"league", pred.League,
		"result", pred.PredictedResult)

	return writeJSON(w, http.StatusOK, pred)
}

// BatchPredict handles POST /api/batch-predict. Every entry is validated before
// any prediction is made, so a bad entry rejects the whole batch and nothing
// reaches the history.
func (h *Handler) BatchPredict(w http.ResponseWriter, r *http.Request) error {
	var req models.BatchPredictRequest
	if err := decodeBody(r, &req); err != nil {
		return badRequest("Invalid request format")
	}

	raw := bytes.TrimSpace(req.Matches)
	if len(raw) == 0 || raw[0] != '[' {
		return badRequest("Invalid request format")
	}

	var matches []models.MatchRequest
	if err := json.Unmarshal(raw, &matches); err != nil {
		return badRequest("Invalid request format")
	}

	for i, m := range matches {
		m = trimMatch(m)
		matches[i] = m
		if reqErr := validateMatch(h.validate, m); reqErr != nil {
			idx := i
			reqErr.Index = &idx
			return reqErr
		}
	}

	preds := make([]models.Prediction, 0, len(matches))
	for _, m := range matches {
		preds = append(preds, h.predictor.PredictMatch(m.HomeTeam, m.AwayTeam, m.League, m.Date))
	}

	if err := h.predictor.SaveBatchPredictions(r.Context(), preds); err != nil {
		return err
	}
	for _, p := range preds {
		h.observe(p)
	}

	h.logger.Info("batch prediction issued", "count", len(preds))

	return writeJSON(w, http.StatusOK, preds)
}

// Leagues handles GET /api/leagues
func (h *Handler) Leagues(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, h.predictor.AvailableLeagues())
}

// Teams handles GET /api/teams?league=<id>
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	league := defaultTeamsLeague
	if q.Has("league") {
		league = q.Get("league")
	}
	return writeJSON(w, http.StatusOK, h.predictor.TeamsByLeague(league))
}

// Upcoming handles GET /api/upcoming?league=<id>&days=<n>
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	days := predictor.DefaultUpcomingDays
	if raw := q.Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > predictor.MaxUpcomingDays {
			return badRequest("Invalid days parameter")
		}
		days = parsed
	}

	return writeJSON(w, http.StatusOK, h.predictor.UpcomingMatches(q.Get("league"), days))
}

// History handles GET /api/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) error {
	preds, err := h.predictor.LoadPredictionHistory(r.Context())
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if preds == nil {
		preds = []models.Prediction{}
	}
	return writeJSON(w, http.StatusOK, preds)
}

// decodeBody decodes exactly one JSON value from the request body. Anything
// after it other than whitespace is an error.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// trimMatch strips surrounding whitespace so blank names count as missing.
func trimMatch(m models.MatchRequest) models.MatchRequest {
	m.HomeTeam = strings.TrimSpace(m.HomeTeam)
	m.AwayTeam = strings.TrimSpace(m.AwayTeam)
	m.League = strings.TrimSpace(m.League)
	m.Date = strings.TrimSpace(m.Date)
	return m
}

func (h *Handler) observe(p models.Prediction) {
	if h.observer != nil {
		h.observer.ObservePrediction(string(p.PredictedResult))
	}
}
