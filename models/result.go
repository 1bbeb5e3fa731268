package models

// Result records one medal outcome for one team in one event. Results are
// append-only: recording a new score inserts a new row, it never mutates an
// existing one, and several rows may exist for the same (team, event) pair
// because a team can field multiple entrants. Team/event references are soft
// — deleting neither side cascades here.
type Result struct {
	ID      uint  `json:"id" gorm:"primaryKey"`
	TeamID  uint  `json:"teamId" gorm:"not null;index"`
	EventID uint  `json:"eventId" gorm:"not null;index"`
	Medal   Medal `json:"medal" gorm:"type:varchar(20);not null"`
	Points  int   `json:"points" gorm:"not null"`
}

// MedalWinner is the denormalized team identity shown in an event summary.
type MedalWinner struct {
	TeamID    uint   `json:"teamId"`
	TeamName  string `json:"teamName"`
	TeamColor string `json:"teamColor"`
}

// EventResult is the per-event view: one illustrative winner per podium
// medal plus the complete result list. The summary picks the first matching
// row in insertion order; the full list is authoritative.
type EventResult struct {
	EventID   uint         `json:"eventId"`
	EventName string       `json:"eventName"`
	Gold      *MedalWinner `json:"gold,omitempty"`
	Silver    *MedalWinner `json:"silver,omitempty"`
	Bronze    *MedalWinner `json:"bronze,omitempty"`
	Results   []Result     `json:"results"`
}
