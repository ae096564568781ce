// Package reference loads the static league and team data the predictor serves.
package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matchpredict/matchpredict/internal/models"
)

//go:embed leagues.yaml
var defaultSeed []byte

var (
	ErrDuplicateLeague = errors.New("duplicate league id")
	ErrDuplicateTeam   = errors.New("duplicate team id")
	ErrUnknownLeague   = errors.New("team references unknown league")
)

// Data is an immutable, validated set of leagues and their teams.
type Data struct {
	leagues []models.League
	teams   map[string][]models.Team
}

type document struct {
	Leagues []models.League `yaml:"leagues"`
	Teams   []models.Team   `yaml:"teams"`
}

// Default returns the embedded seed data.
func Default() (*Data, error) {
	return Parse(defaultSeed)
}

// Load reads reference data from a YAML file. An empty path selects the
// embedded seed.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference data: %w", err)
	}
	data, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Parse decodes and validates a YAML reference document.
func Parse(raw []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode reference data: %w", err)
	}
	return New(doc.Leagues, doc.Teams)
}

// New validates leagues and teams and groups the teams by league, keeping
// their input order.
func New(leagues []models.League, teams []models.Team) (*Data, error) {
	d := &Data{
		leagues: make([]models.League, 0, len(leagues)),
		teams:   make(map[string][]models.Team, len(leagues)),
	}

	for _, l := range leagues {
		if _, dup := d.teams[l.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLeague, l.ID)
		}
		d.leagues = append(d.leagues, l)
		d.teams[l.ID] = []models.Team{}
	}

	seen := make(map[int]struct{}, len(teams))
	for _, t := range teams {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTeam, t.ID)
		}
		seen[t.ID] = struct{}{}

		group, ok := d.teams[t.League]
		if !ok {
			return nil, fmt.Errorf("%w: team %d (%s) -> %q", ErrUnknownLeague, t.ID, t.Name, t.League)
		}
		d.teams[t.League] = append(group, t)
	}

	return d, nil
}

// Leagues returns a copy of the leagues in their declared order.
func (d *Data) Leagues() []models.League {
	out := make([]models.League, len(d.leagues))
	copy(out, d.leagues)
	return out
}

// Teams returns a copy of the teams of one league, or an empty slice when the
// league is unknown.
func (d *Data) Teams(leagueID string) []models.Team {
	group := d.teams[leagueID]
	out := make([]models.Team, len(group))
	copy(out, group)
	return out
}

// HasLeague reports whether id names a known league.
func (d *Data) HasLeague(id string) bool {
	_, ok := d.teams[id]
	return ok
}
