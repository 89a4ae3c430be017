package model

import (
	"time"

	"github.com/google/uuid"
)

// Selection исход матча: победа хозяев, ничья, победа гостей
type Selection string

const (
	SelectionHome Selection = "H"
	SelectionDraw Selection = "D"
	SelectionAway Selection = "A"
)

// Valid проверяет, что исход один из H/D/A
func (s Selection) Valid() bool {
	switch s {
	case SelectionHome, SelectionDraw, SelectionAway:
		return true
	}
	return false
}

// Match матч вместе с коэффициентами и вероятностями модели
type Match struct {
	ID      uuid.UUID
	League  string
	Season  string
	Kickoff time.Time

	HomeTeam string
	AwayTeam string

	HomeGoals int
	AwayGoals int
	Result    Selection

	HomeWinOdds float64
	DrawOdds    float64
	AwayWinOdds float64

	// Вероятности модели могут отсутствовать
	ModelHomeProb *float64
	ModelDrawProb *float64
	ModelAwayProb *float64
}

// OddsFor возвращает десятичный коэффициент на исход
func (m Match) OddsFor(sel Selection) (float64, bool) {
	switch sel {
	case SelectionHome:
		return m.HomeWinOdds, true
	case SelectionDraw:
		return m.DrawOdds, true
	case SelectionAway:
		return m.AwayWinOdds, true
	}
	return 0, false
}

// ModelProbFor возвращает вероятность модели на исход или nil
func (m Match) ModelProbFor(sel Selection) *float64 {
	switch sel {
	case SelectionHome:
		return m.ModelHomeProb
	case SelectionDraw:
		return m.ModelDrawProb
	case SelectionAway:
		return m.ModelAwayProb
	}
	return nil
}

// Dataset лига и сезон, загруженные в хранилище
type Dataset struct {
	League  string
	Season  string
	Matches int
}
