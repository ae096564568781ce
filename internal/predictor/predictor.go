// Package predictor produces match forecasts and serves the league reference
// data. The forecasting model is a random placeholder that can be replaced
// without changing the exported contract.
package predictor

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matchpredict/matchpredict/internal/history"
	"github.com/matchpredict/matchpredict/internal/models"
	"github.com/matchpredict/matchpredict/internal/reference"
)

const dateLayout = "2006-01-02"

const (
	// DefaultUpcomingDays is the fixture window used when a caller does not pick one.
	DefaultUpcomingDays = 7
	// MaxUpcomingDays caps the fixture window to one year ahead.
	MaxUpcomingDays = 365
)

var keyFactors = []string{
	"Recent form",
	"Home advantage",
	"Head-to-head record",
	"Squad availability",
}

// kickoffSlots holds every quarter hour from 12:00 to 21:45.
var kickoffSlots = func() []string {
	slots := make([]string, 0, 40)
	for hour := 12; hour <= 21; hour++ {
		for _, minute := range []int{0, 15, 30, 45} {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}()

// Options tunes a Predictor. The zero value gives the raw placeholder model
// with a time-seeded random source.
type Options struct {
	// NormalizeProbabilities clamps a negative away-win probability to zero
	// and rescales the three probabilities to sum to one.
	NormalizeProbabilities bool
	// Seed fixes the random source. Zero picks a time-based seed.
	Seed uint64
	// Now overrides the clock.
	Now func() time.Time
}

// Predictor owns the reference data, the random model and the prediction history.
type Predictor struct {
	ref       *reference.Data
	history   history.Store
	normalize bool
	now       func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs a Predictor over the given reference data and history store.
func New(ref *reference.Data, store history.Store, opts Options) *Predictor {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Predictor{
		ref:       ref,
		history:   store,
		normalize: opts.NormalizeProbabilities,
		now:       now,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// IsModelLoaded reports readiness. The placeholder model is ready as soon as
// the predictor exists.
func (p *Predictor) IsModelLoaded() bool {
	return p != nil && p.ref != nil
}

// PredictMatch builds a prediction for one match. It does not record the
// prediction; callers decide whether to save it. An empty matchDate defaults
// to today.
func (p *Predictor) PredictMatch(homeTeam, awayTeam, league, matchDate string) models.Prediction {
	p.mu.Lock()
	home := 0.25 + p.rng.Float64()*0.5
	draw := 0.15 + p.rng.Float64()*0.3
	homeGoals := p.rng.IntN(3)
	awayGoals := p.rng.IntN(3)
	confidence := 0.6 + p.rng.Float64()*0.3
	p.mu.Unlock()

	// away can go negative when home+draw > 1
	away := 1 - home - draw
	if p.normalize {
		home, draw, away = normalize(home, draw, away)
	}

	probs := models.Probabilities{
		HomeWin: round4(home),
		Draw:    round4(draw),
		AwayWin: round4(away),
	}

	now := p.now()
	if matchDate == "" {
		matchDate = now.Format(dateLayout)
	}

	return models.Prediction{
		MatchID:         uuid.New().String(),
		HomeTeam:        homeTeam,
		AwayTeam:        awayTeam,
		League:          league,
		MatchDate:       matchDate,
		Probabilities:   probs,
		PredictedResult: ResultFor(probs.HomeWin, probs.Draw, probs.AwayWin),
		PredictedScore:  models.PredictedScore{Home: homeGoals, Away: awayGoals},
		Confidence:      round4(confidence),
		Insights: []string{
			fmt.Sprintf("%s has strong home form recently.", homeTeam),
			fmt.Sprintf("%s has struggled in away matches this season.", awayTeam),
			"Historical head-to-head matches favor the home team.",
			"Weather conditions are favorable for high-scoring game.",
		},
		KeyFactors: append([]string(nil), keyFactors...),
		Timestamp:  now,
	}
}

// ResultFor picks the outcome with the strictly greatest probability. Any tie
// for the maximum resolves to a draw.
func ResultFor(home, draw, away float64) models.PredictedResult {
	switch {
	case home > draw && home > away:
		return models.ResultHomeWin
	case away > home && away > draw:
		return models.ResultAwayWin
	default:
		return models.ResultDraw
	}
}

// AvailableLeagues returns the leagues in their stable reference order.
func (p *Predictor) AvailableLeagues() []models.League {
	return p.ref.Leagues()
}

// TeamsByLeague returns the teams of a league, empty for an unknown id.
func (p *Predictor) TeamsByLeague(leagueID string) []models.Team {
	return p.ref.Teams(leagueID)
}

// UpcomingMatches generates two or three synthetic fixtures per league, dated
// between tomorrow and days from now. An empty league covers every league.
// Leagues with fewer than two teams are skipped. days is clamped to
// [1, MaxUpcomingDays].
func (p *Predictor) UpcomingMatches(league string, days int) []models.UpcomingMatch {
	days = min(max(days, 1), MaxUpcomingDays)

	var scope []string
	if league != "" {
		scope = []string{league}
	} else {
		for _, l := range p.ref.Leagues() {
			scope = append(scope, l.ID)
		}
	}

	today := p.now()
	matches := make([]models.UpcomingMatch, 0, len(scope)*3)

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, leagueID := range scope {
		teams := p.ref.Teams(leagueID)
		if len(teams) < 2 {
			continue
		}

		n := 2 + p.rng.IntN(2)
		for i := 0; i < n; i++ {
			homeIdx := p.rng.IntN(len(teams))
			awayIdx := p.rng.IntN(len(teams))
			for awayIdx == homeIdx {
				awayIdx = p.rng.IntN(len(teams))
			}

			offset := 1 + p.rng.IntN(days)
			matches = append(matches, models.UpcomingMatch{
				ID:       "fixture-" + uuid.New().String(),
				HomeTeam: teams[homeIdx].Name,
				AwayTeam: teams[awayIdx].Name,
				League:   leagueID,
				Date:     today.AddDate(0, 0, offset).Format(dateLayout),
				Time:     kickoffSlots[p.rng.IntN(len(kickoffSlots))],
			})
		}
	}

	return matches
}

// LoadPredictionHistory returns every saved prediction in insertion order.
func (p *Predictor) LoadPredictionHistory(ctx context.Context) ([]models.Prediction, error) {
	preds, err := p.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return preds, nil
}

// SavePrediction appends one prediction to the history.
func (p *Predictor) SavePrediction(ctx context.Context, pred models.Prediction) error {
	if err := p.history.Append(ctx, pred); err != nil {
		return fmt.Errorf("save prediction %s: %w", pred.MatchID, err)
	}
	return nil
}

// SaveBatchPredictions appends predictions to the history as one block.
func (p *Predictor) SaveBatchPredictions(ctx context.Context, preds []models.Prediction) error {
	if err := p.history.AppendBatch(ctx, preds); err != nil {
		return fmt.Errorf("save %d predictions: %w", len(preds), err)
	}
	return nil
}

func normalize(home, draw, away float64) (float64, float64, float64) {
	if away < 0 {
		away = 0
	}
	sum := home + draw + away
	if sum <= 0 {
		return 1.0 / 3, 1.0 / 3, 1.0 / 3
	}
	return home / sum, draw / sum, away / sum
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
