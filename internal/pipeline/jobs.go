package pipeline

import (
	"sync"
	"time"

	"github.com/tkaine/mdstruct/internal/localize"
)

// JobStatus represents the state of a localization job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusParsing     JobStatus = "parsing"
	StatusDownloading JobStatus = "downloading"
	StatusRendering   JobStatus = "rendering"
	StatusCompleted   JobStatus = "completed"
	StatusPartial     JobStatus = "partial"
	StatusFailed      JobStatus = "failed"
)

// Job tracks one document through image localization.
type Job struct {
	mu sync.Mutex

	ID     string    `json:"job_id"`
	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Per-job overrides of the configured asset defaults.
	AssetDir    string `json:"-"`
	NamePattern string `json:"-"`

	// Internal: not serialized.
	content string
	result  string
	images  []localize.Result
	errors  []string
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records a job-level error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetContent sets the source document.
func (j *Job) SetContent(content string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.content = content
}

// Content returns the source document.
func (j *Job) Content() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.content
}

// SetResult stores the rewritten document.
func (j *Job) SetResult(result string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = result
	j.UpdatedAt = time.Now()
}

// SetImages records the per-image outcomes.
func (j *Job) SetImages(images []localize.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.images = images
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string            `json:"job_id"`
	Status    JobStatus         `json:"status"`
	Phase     string            `json:"phase"`
	Images    []localize.Result `json:"images"`
	Errors    []string          `json:"errors"`
	Result    string            `json:"result,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy. The rewritten document is included
// only once the job has reached a terminal state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()

	images := j.images
	if images == nil {
		images = []localize.Result{}
	}
	errs := j.errors
	if errs == nil {
		errs = []string{}
	}

	snap := JobSnapshot{
		ID:        j.ID,
		Status:    j.Status,
		Phase:     j.Phase,
		Images:    images,
		Errors:    errs,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	switch j.Status {
	case StatusCompleted, StatusPartial:
		snap.Result = j.result
	}
	return snap
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes jobs idle longer than the TTL.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}
