package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"task-dashboard/internal/auth"
	"task-dashboard/internal/domain"
)

// maxSnapshots bounds how many credentials keep a last snapshot.
const maxSnapshots = 128

type TaskLister interface {
	ListTasks(ctx context.Context, cred auth.Credential) ([]domain.Task, error)
}

// Snapshot is the result of one successful fetch.
type Snapshot struct {
	Tasks     []domain.Task
	Summary   domain.Summary
	FetchedAt time.Time
}

// Store holds the employee-side view of the task service: the last
// successful snapshot per credential. Every Refresh goes to the service.
type Store struct {
	logger *logrus.Logger
	lister TaskLister
	now    func() time.Time
	limit  int

	mu   sync.RWMutex
	last map[auth.Credential]Snapshot
}

func New(logger *logrus.Logger, lister TaskLister) *Store {
	return &Store{
		logger: logger,
		lister: lister,
		now:    time.Now,
		limit:  maxSnapshots,
		last:   make(map[auth.Credential]Snapshot),
	}
}

func (s *Store) Refresh(ctx context.Context, cred auth.Credential) (Snapshot, error) {
	list, err := s.lister.ListTasks(ctx, cred)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("fetch tasks failed")
		return Snapshot{}, err
	}

	snap := Snapshot{
		Tasks:     list,
		Summary:   domain.Summarize(list),
		FetchedAt: s.now(),
	}

	s.mu.Lock()
	if _, ok := s.last[cred]; !ok && len(s.last) >= s.limit {
		s.evictOldest()
	}
	s.last[cred] = snap
	s.mu.Unlock()

	return snap, nil
}

// Last returns the most recent successful snapshot for cred.
func (s *Store) Last(cred auth.Credential) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.last[cred]
	return snap, ok
}

// evictOldest drops the snapshot fetched longest ago. Callers hold mu.
func (s *Store) evictOldest() {
	var oldest auth.Credential
	var at time.Time
	first := true
	for cred, snap := range s.last {
		if first || snap.FetchedAt.Before(at) {
			oldest, at, first = cred, snap.FetchedAt, false
		}
	}
	delete(s.last, oldest)
}
