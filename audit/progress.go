package audit

import "sync"

// ProgressEvent is the incremental delta published after each page audit in a
// domain run. Percentage computation belongs to the job tracker, not here.
type ProgressEvent struct {
	PagesAudited int    `json:"pages_audited"`
	TotalPages   int    `json:"total_pages"`
	CurrentURL   string `json:"current_url"`
	Message      string `json:"message"`
}

const progressBuffer = 64

// Publisher fans progress events out to subscribers without ever blocking
// the audit. Events are dropped when a subscriber's channel is full.
type Publisher struct {
	mu     sync.RWMutex
	subs   []chan ProgressEvent
	closed bool
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

// Subscribe registers a listener. The returned channel is closed when the
// publisher closes; a slow reader loses events rather than stalling the run.
func (p *Publisher) Subscribe() <-chan ProgressEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan ProgressEvent, progressBuffer)
	if p.closed {
		close(ch)
		return ch
	}
	p.subs = append(p.subs, ch)
	return ch
}

// Publish delivers an event best-effort to every subscriber.
func (p *Publisher) Publish(event ProgressEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return
	}
	for _, ch := range p.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up; drop the event.
		}
	}
}

// Close ends the stream for all subscribers. Publish after Close is a no-op.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
}
