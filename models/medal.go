package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Medal is the outcome of one team entry in one event.
type Medal string

const (
	MedalGold      Medal = "gold"
	MedalSilver    Medal = "silver"
	MedalBronze    Medal = "bronze"
	MedalNonWinner Medal = "non_winner" // participated, no podium
	MedalNoEntry   Medal = "no_entry"   // did not participate
)

// Points resolves the fixed medal→points table. Result rows store the value
// they were created with; changing this table never rewrites history.
func (m Medal) Points() int {
	switch m {
	case MedalGold:
		return 10
	case MedalSilver:
		return 7
	case MedalBronze:
		return 5
	case MedalNonWinner:
		return 1
	case MedalNoEntry:
		return 0
	}
	return 0
}

func (m Medal) Valid() bool {
	switch m {
	case MedalGold, MedalSilver, MedalBronze, MedalNonWinner, MedalNoEntry:
		return true
	}
	return false
}

var medalTitle = cases.Title(language.English)

// Label returns the display form of the medal, e.g. "Non Winner".
func (m Medal) Label() string {
	return medalTitle.String(strings.ReplaceAll(string(m), "_", " "))
}
