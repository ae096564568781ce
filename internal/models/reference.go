package models

// League is a competition grouping teams, identified by a short code.
type League struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Country string `json:"country" yaml:"country"`
}

// Team is a club belonging to exactly one league.
type Team struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	League string `json:"league" yaml:"league"`
}
