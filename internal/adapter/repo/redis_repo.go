package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"praxis-server/internal/domain"
)

// RedisStore implements domain.ResultStore on top of Redis. Every value is a
// JSON blob under a namespaced key; eviction relies on Redis' native TTL, so
// no janitor is needed.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates the redis-backed result store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(section, id string) string {
	return fmt.Sprintf("praxis:%s:%s", section, id)
}

func (s *RedisStore) set(ctx context.Context, section, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", section, err)
	}
	if err := s.client.Set(ctx, redisKey(section, id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", section, err)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, section, id string, out any) error {
	data, err := s.client.Get(ctx, redisKey(section, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", section, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", section, err)
	}
	return nil
}

func (s *RedisStore) CreateProcessing(ctx context.Context, id string, record domain.ProcessingRecord) error {
	return s.set(ctx, "processing", id, record)
}

func (s *RedisStore) SetStatus(ctx context.Context, id string, status domain.ProcessingStatus) error {
	// Only the request that created the record ever mutates it, so a plain
	// read-modify-write is safe here.
	record, err := s.GetProcessing(ctx, id)
	if err != nil {
		return err
	}
	record.Status = status
	return s.set(ctx, "processing", id, record)
}

func (s *RedisStore) GetProcessing(ctx context.Context, id string) (*domain.ProcessingRecord, error) {
	var record domain.ProcessingRecord
	if err := s.get(ctx, "processing", id, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RedisStore) SetAnalysis(ctx context.Context, id string, analysis domain.Analysis) error {
	return s.set(ctx, "analysis", id, analysis)
}

func (s *RedisStore) GetAnalysis(ctx context.Context, id string) (*domain.Analysis, error) {
	var analysis domain.Analysis
	if err := s.get(ctx, "analysis", id, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (s *RedisStore) SetSkills(ctx context.Context, id string, skills []domain.Skill) error {
	return s.set(ctx, "skills", id, skills)
}

func (s *RedisStore) GetSkills(ctx context.Context, id string) ([]domain.Skill, error) {
	var skills []domain.Skill
	if err := s.get(ctx, "skills", id, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *RedisStore) SetJobs(ctx context.Context, id string, jobs []domain.Job) error {
	return s.set(ctx, "jobs", id, jobs)
}

func (s *RedisStore) GetJobs(ctx context.Context, id string) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := s.get(ctx, "jobs", id, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

var _ domain.ResultStore = (*RedisStore)(nil)
