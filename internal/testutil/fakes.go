package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/achrafato/MarkDown-App/pkg/mailer"
)

// MemorySessions is an in-memory session store keyed by user id.
type MemorySessions struct {
	mu   sync.Mutex
	sids map[int64]string
	Err  error
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sids: map[int64]string{}}
}

func (s *MemorySessions) Save(_ context.Context, userID int64, sid, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.sids[userID] = sid
	return nil
}

func (s *MemorySessions) Current(_ context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.sids[userID], nil
}

func (s *MemorySessions) Revoke(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.sids, userID)
	return nil
}

// RecordingPublisher keeps every published job; Err makes publishing fail.
type RecordingPublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	Err  error
}

func (p *RecordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	// round-trip through JSON, as the real queue does
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	var job mailer.EmailJob
	if err := json.Unmarshal(b, &job); err != nil {
		return err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

func (p *RecordingPublisher) Jobs() []mailer.EmailJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]mailer.EmailJob(nil), p.jobs...)
}
