package domain

import "context"

// ResultStore holds processing records and their derived results keyed by
// processing identifier. Implementations are free to evict entries after a
// configured TTL; a process restart may lose all records.
//
// Writers only touch identifiers they generated themselves, so backends do
// not need per-key synchronization beyond making individual operations safe
// for concurrent use.
type ResultStore interface {
	CreateProcessing(ctx context.Context, id string, record ProcessingRecord) error
	SetStatus(ctx context.Context, id string, status ProcessingStatus) error
	GetProcessing(ctx context.Context, id string) (*ProcessingRecord, error)

	SetAnalysis(ctx context.Context, id string, analysis Analysis) error
	GetAnalysis(ctx context.Context, id string) (*Analysis, error)

	SetSkills(ctx context.Context, id string, skills []Skill) error
	GetSkills(ctx context.Context, id string) ([]Skill, error)

	SetJobs(ctx context.Context, id string, jobs []Job) error
	GetJobs(ctx context.Context, id string) ([]Job, error)
}
