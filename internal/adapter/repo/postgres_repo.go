package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"praxis-server/internal/domain"
)

// PostgresStore implements domain.ResultStore on a single results table.
// Expired rows are swept opportunistically on each create; there is no
// background job.
type PostgresStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPostgresStore creates the postgres-backed result store and bootstraps
// its schema. The table is small enough that a migration tool would be
// overhead.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, ttl time.Duration) (*PostgresStore, error) {
	schema := `
CREATE TABLE IF NOT EXISTS processing_results (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    status     TEXT NOT NULL,
    media_type TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    expires_at TIMESTAMPTZ,
    analysis   JSONB,
    skills     JSONB,
    jobs       JSONB
);
`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("bootstrap results table: %w", err)
	}
	return &PostgresStore{pool: pool, ttl: ttl}, nil
}

func (s *PostgresStore) CreateProcessing(ctx context.Context, id string, record domain.ProcessingRecord) error {
	s.sweep(ctx)

	var expires *time.Time
	if s.ttl > 0 {
		t := time.Now().Add(s.ttl)
		expires = &t
	}
	query := `
INSERT INTO processing_results (id, user_id, status, media_type, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
	_, err := s.pool.Exec(ctx, query, id, record.UserID, record.Status, record.MediaType, record.CreatedAt, expires)
	return err
}

func (s *PostgresStore) sweep(ctx context.Context) {
	_, _ = s.pool.Exec(ctx, `DELETE FROM processing_results WHERE expires_at IS NOT NULL AND expires_at < NOW();`)
}

func (s *PostgresStore) SetStatus(ctx context.Context, id string, status domain.ProcessingStatus) error {
	tag, err := s.pool.Exec(ctx, `UPDATE processing_results SET status = $2 WHERE id = $1;`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetProcessing(ctx context.Context, id string) (*domain.ProcessingRecord, error) {
	query := `
SELECT user_id, status, media_type, created_at
FROM processing_results
WHERE id = $1 AND (expires_at IS NULL OR expires_at >= NOW());
`
	var record domain.ProcessingRecord
	err := s.pool.QueryRow(ctx, query, id).Scan(&record.UserID, &record.Status, &record.MediaType, &record.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *PostgresStore) setColumn(ctx context.Context, id, column string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", column, err)
	}
	query := fmt.Sprintf(`UPDATE processing_results SET %s = $2 WHERE id = $1;`, column)
	tag, err := s.pool.Exec(ctx, query, id, data)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) getColumn(ctx context.Context, id, column string, out any) error {
	query := fmt.Sprintf(`
SELECT %s
FROM processing_results
WHERE id = $1 AND (expires_at IS NULL OR expires_at >= NOW());
`, column)
	var data []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if data == nil {
		return domain.ErrNotFound
	}
	return json.Unmarshal(data, out)
}

func (s *PostgresStore) SetAnalysis(ctx context.Context, id string, analysis domain.Analysis) error {
	return s.setColumn(ctx, id, "analysis", analysis)
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*domain.Analysis, error) {
	var analysis domain.Analysis
	if err := s.getColumn(ctx, id, "analysis", &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (s *PostgresStore) SetSkills(ctx context.Context, id string, skills []domain.Skill) error {
	return s.setColumn(ctx, id, "skills", skills)
}

func (s *PostgresStore) GetSkills(ctx context.Context, id string) ([]domain.Skill, error) {
	var skills []domain.Skill
	if err := s.getColumn(ctx, id, "skills", &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *PostgresStore) SetJobs(ctx context.Context, id string, jobs []domain.Job) error {
	return s.setColumn(ctx, id, "jobs", jobs)
}

func (s *PostgresStore) GetJobs(ctx context.Context, id string) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := s.getColumn(ctx, id, "jobs", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

var _ domain.ResultStore = (*PostgresStore)(nil)
