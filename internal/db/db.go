// Package db provides PostgreSQL storage for match reports.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jonathan/ats-matcher/internal/types"
)

// DefaultListLimit is used when ListReports is called with a non-positive limit
const DefaultListLimit = 20

const schemaSQL = `
CREATE TABLE IF NOT EXISTS match_reports (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	label       TEXT NOT NULL DEFAULT '',
	company     TEXT NOT NULL DEFAULT '',
	role_title  TEXT NOT NULL DEFAULT '',
	score       DOUBLE PRECISION NOT NULL,
	result      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_match_reports_created_at ON match_reports (created_at DESC);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string, log *zap.Logger) (*DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, logger: log}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the reports table if it does not exist yet
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveReport stores a match result and returns the generated report id
func (db *DB) SaveReport(ctx context.Context, report *Report) (uuid.UUID, error) {
	if report == nil || report.Result == nil {
		return uuid.Nil, fmt.Errorf("report has no result")
	}

	resultJSON, err := json.Marshal(report.Result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	id := report.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO match_reports (id, label, company, role_title, score, result)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		id, report.Label, report.Company, report.RoleTitle, report.Result.Score, resultJSON,
	).Scan(&report.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save report: %w", err)
	}

	report.ID = id
	db.logger.Debug("saved report", zap.String("id", id.String()), zap.Float64("score", report.Result.Score))
	return id, nil
}

// GetReport retrieves a report by id. A missing report returns (nil, nil).
func (db *DB) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	var report Report
	var resultJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, label, company, role_title, score, result, created_at
		 FROM match_reports WHERE id = $1`,
		id,
	).Scan(&report.ID, &report.Label, &report.Company, &report.RoleTitle, &report.Score, &resultJSON, &report.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var result types.MatchResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	report.Result = &result
	return &report, nil
}

// ListReports returns the most recent reports without their full results
func (db *DB) ListReports(ctx context.Context, limit int) ([]ReportSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, label, company, role_title, score, created_at
		 FROM match_reports ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	summaries := []ReportSummary{}
	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(&s.ID, &s.Label, &s.Company, &s.RoleTitle, &s.Score, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return summaries, nil
}
