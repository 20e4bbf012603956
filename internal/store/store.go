// Package store persists reports of finished battles.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("battle report not found")

// BattleReport is the record kept once a battle has a winner.
type BattleReport struct {
	ID         string    `json:"id"`
	Winner     string    `json:"winner"`
	PlayerName string    `json:"player_name"`
	Turns      int       `json:"turns"`
	Log        []string  `json:"log"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

type Repository interface {
	Create(ctx context.Context, report *BattleReport) error
	Get(ctx context.Context, id string) (*BattleReport, error)
}
