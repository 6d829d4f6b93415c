package audit

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job lifecycle states.
const (
	StatusDiscovering = "discovering"
	StatusAuditing    = "auditing"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
)

var ErrJobNotFound = errors.New("job not found")

// Job tracks one asynchronous domain audit from URL discovery to completion.
// Percentage is owned here, derived from raw progress deltas: discovery maps
// to the first 10 percent, auditing to the rest.
type Job struct {
	ID         string       `json:"id"`
	Domain     string       `json:"domain"`
	Status     string       `json:"status"`
	Percentage float64      `json:"percentage"`
	Message    string       `json:"message"`
	Error      string       `json:"error,omitempty"`
	Result     *DomainAudit `json:"result,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	publisher *Publisher
}

// Registry is an in-memory job store guarded by a RWMutex. Jobs live for the
// process lifetime; persistence is deliberately out of scope.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*Job)}
}

// Create registers a new job in the discovering state and returns it along
// with its progress publisher.
func (r *Registry) Create(domain string) (*Job, *Publisher) {
	id := "job_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	now := time.Now().UTC()
	job := &Job{
		ID:        id,
		Domain:    domain,
		Status:    StatusDiscovering,
		Message:   "Discovering pages",
		CreatedAt: now,
		UpdatedAt: now,
		publisher: NewPublisher(),
	}

	r.mu.Lock()
	r.jobs[id] = job
	r.mu.Unlock()

	return job, job.publisher
}

// Get returns a snapshot of the job's public fields.
func (r *Registry) Get(id string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrJobNotFound
	}
	return *job, nil
}

// Subscribe attaches a progress listener to a running job.
func (r *Registry) Subscribe(id string) (<-chan ProgressEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return job.publisher.Subscribe(), nil
}

// SetDiscovered moves a job to the auditing state once the crawler has
// produced its URL list.
func (r *Registry) SetDiscovered(id string, urlCount int) {
	r.update(id, func(job *Job) {
		job.Status = StatusAuditing
		job.Percentage = 10
		job.Message = "Auditing pages"
		job.publisher.Publish(ProgressEvent{
			TotalPages: urlCount,
			Message:    "Page discovery complete",
		})
	})
}

// RecordProgress folds an audit progress delta into the job's percentage:
// 10 percent for discovery, the remaining 90 spread over audited pages.
func (r *Registry) RecordProgress(id string, event ProgressEvent) {
	r.update(id, func(job *Job) {
		if event.TotalPages > 0 {
			job.Percentage = 10 + 90*float64(event.PagesAudited)/float64(event.TotalPages)
		}
		if event.Message != "" {
			job.Message = event.Message
		}
	})
}

// Complete stores the final result and closes the progress stream.
func (r *Registry) Complete(id string, result *DomainAudit) {
	r.update(id, func(job *Job) {
		job.Status = StatusCompleted
		job.Percentage = 100
		job.Message = "Audit complete"
		job.Result = result
		job.publisher.Close()
	})
}

// Fail marks the job failed and closes the progress stream.
func (r *Registry) Fail(id string, errMsg string) {
	r.update(id, func(job *Job) {
		job.Status = StatusFailed
		job.Error = errMsg
		job.Message = "Audit failed"
		job.publisher.Close()
	})
}

func (r *Registry) update(id string, fn func(*Job)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return
	}
	fn(job)
	job.UpdatedAt = time.Now().UTC()
}
