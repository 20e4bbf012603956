package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS battle_reports (
	id          UUID PRIMARY KEY,
	winner      TEXT        NOT NULL,
	player_name TEXT        NOT NULL,
	turns       INTEGER     NOT NULL,
	log         JSONB       NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
)`

// Postgres stores reports in a battle_reports table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Open connects with the postgres driver and checks the connection.
func Open(ctx context.Context, dbURL string) (*Postgres, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return NewPostgres(db), nil
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create battle_reports: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) Create(ctx context.Context, report *BattleReport) error {
	logJSON, err := json.Marshal(report.Log)
	if err != nil {
		return fmt.Errorf("encode battle log: %w", err)
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO battle_reports (id, winner, player_name, turns, log, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.ID, report.Winner, report.PlayerName, report.Turns, logJSON, report.StartedAt, report.FinishedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("battle report %s already exists", report.ID)
	}
	if err != nil {
		return fmt.Errorf("insert battle report: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*BattleReport, error) {
	var (
		r       BattleReport
		logJSON []byte
	)
	err := p.db.QueryRowContext(ctx,
		`SELECT id, winner, player_name, turns, log, started_at, finished_at
		 FROM battle_reports WHERE id = $1`, id,
	).Scan(&r.ID, &r.Winner, &r.PlayerName, &r.Turns, &logJSON, &r.StartedAt, &r.FinishedAt)
	var pqErr *pq.Error
	if errors.Is(err, sql.ErrNoRows) || (errors.As(err, &pqErr) && pqErr.Code.Name() == "invalid_text_representation") {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select battle report: %w", err)
	}
	if err := json.Unmarshal(logJSON, &r.Log); err != nil {
		return nil, fmt.Errorf("decode battle log: %w", err)
	}
	return &r, nil
}
