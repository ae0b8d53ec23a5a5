package repo

import (
	"context"
	"sync"
	"time"

	"praxis-server/internal/domain"
)

type memoryEntry struct {
	record   domain.ProcessingRecord
	analysis *domain.Analysis
	skills   []domain.Skill
	jobs     []domain.Job
	expires  time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// MemoryStore implements domain.ResultStore with process-local maps. Entries
// are evicted by a janitor goroutine once their TTL elapses; a TTL of zero
// keeps them for the process lifetime.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	ttl     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates the in-memory result store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	if ttl > 0 {
		go s.janitor()
	}
	return s
}

func (s *MemoryStore) janitor() {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				if e.expired(now) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) CreateProcessing(ctx context.Context, id string, record domain.ProcessingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := &memoryEntry{record: record}
	if s.ttl > 0 {
		entry.expires = time.Now().Add(s.ttl)
	}
	s.entries[id] = entry
	return nil
}

func (s *MemoryStore) SetStatus(ctx context.Context, id string, status domain.ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	entry.record.Status = status
	return nil
}

func (s *MemoryStore) GetProcessing(ctx context.Context, id string) (*domain.ProcessingRecord, error) {
	entry, err := s.live(id)
	if err != nil {
		return nil, err
	}
	record := entry.record
	return &record, nil
}

func (s *MemoryStore) SetAnalysis(ctx context.Context, id string, analysis domain.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	entry.analysis = &analysis
	return nil
}

func (s *MemoryStore) GetAnalysis(ctx context.Context, id string) (*domain.Analysis, error) {
	entry, err := s.live(id)
	if err != nil {
		return nil, err
	}
	if entry.analysis == nil {
		return nil, domain.ErrNotFound
	}
	analysis := *entry.analysis
	return &analysis, nil
}

func (s *MemoryStore) SetSkills(ctx context.Context, id string, skills []domain.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	entry.skills = append([]domain.Skill(nil), skills...)
	return nil
}

func (s *MemoryStore) GetSkills(ctx context.Context, id string) ([]domain.Skill, error) {
	entry, err := s.live(id)
	if err != nil {
		return nil, err
	}
	if entry.skills == nil {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Skill(nil), entry.skills...), nil
}

func (s *MemoryStore) SetJobs(ctx context.Context, id string, jobs []domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	entry.jobs = append([]domain.Job(nil), jobs...)
	return nil
}

func (s *MemoryStore) GetJobs(ctx context.Context, id string) ([]domain.Job, error) {
	entry, err := s.live(id)
	if err != nil {
		return nil, err
	}
	if entry.jobs == nil {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Job(nil), entry.jobs...), nil
}

func (s *MemoryStore) live(id string) (*memoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok || entry.expired(time.Now()) {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

var _ domain.ResultStore = (*MemoryStore)(nil)
