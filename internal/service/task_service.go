package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"task-dashboard/internal/auth"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/taskclient"
	"task-dashboard/internal/tasks"
	"task-dashboard/internal/workerpool"
)

type StatusWriter interface {
	UpdateStatus(ctx context.Context, cred auth.Credential, id int64, status domain.TaskStatus) error
}

type TaskStore interface {
	Refresh(ctx context.Context, cred auth.Credential) (tasks.Snapshot, error)
	Last(cred auth.Credential) (tasks.Snapshot, bool)
}

// Result is the outcome of one status transition as seen by the view layer.
type Result struct {
	TaskID int64
	Status domain.TaskStatus
	// Applied is true once the task service accepted the write.
	Applied  bool
	Snapshot tasks.Snapshot
	Err      error
}

func (r Result) OK() bool { return r.Err == nil }

// Retryable reports whether resubmitting the same transition may succeed.
// An applied write is never retryable; only the refresh failed.
func (r Result) Retryable() bool {
	if r.Err == nil || r.Applied {
		return false
	}

	switch {
	case errors.Is(r.Err, ErrInvalidID),
		errors.Is(r.Err, ErrInvalidStatus),
		errors.Is(r.Err, ErrInFlight),
		errors.Is(r.Err, ErrInvalidTransition),
		errors.Is(r.Err, workerpool.ErrPoolClosed),
		errors.Is(r.Err, taskclient.ErrUnauthorized):
		return false
	case errors.Is(r.Err, workerpool.ErrPoolFull):
		return true
	}

	var se *taskclient.StatusError
	if errors.As(r.Err, &se) {
		return se.Temporary()
	}
	return true
}

type TaskService struct {
	logger *logrus.Logger
	writer StatusWriter
	store  TaskStore
	pool   workerpool.Submitter

	mu       sync.Mutex
	inflight map[int64]struct{}
}

func New(logger *logrus.Logger, writer StatusWriter, store TaskStore, pool workerpool.Submitter) (*TaskService, error) {
	if writer == nil {
		return nil, ErrWriterNil
	}
	if store == nil {
		return nil, ErrStoreNil
	}
	if pool == nil {
		return nil, ErrPoolNil
	}

	return &TaskService{
		logger:   logger,
		writer:   writer,
		store:    store,
		pool:     pool,
		inflight: make(map[int64]struct{}),
	}, nil
}

// Tasks fetches the current task list for cred.
func (s *TaskService) Tasks(ctx context.Context, cred auth.Credential) (tasks.Snapshot, error) {
	return s.store.Refresh(ctx, cred)
}

// LastTasks returns the last successfully fetched list for cred, if any.
func (s *TaskService) LastTasks(cred auth.Credential) (tasks.Snapshot, bool) {
	return s.store.Last(cred)
}

// SetStatus writes the new status to the task service and then re-fetches
// the task list. Only one request per task id may be outstanding. A move the
// last fetched list shows as backwards is rejected without a write.
func (s *TaskService) SetStatus(ctx context.Context, cred auth.Credential, id int64, status domain.TaskStatus) Result {
	res := Result{TaskID: id, Status: status}

	if id <= 0 {
		res.Err = ErrInvalidID
		return res
	}
	if !domain.IsTarget(status) {
		res.Err = ErrInvalidStatus
		return res
	}

	if snap, ok := s.store.Last(cred); ok {
		for _, t := range snap.Tasks {
			if t.ID == id && !domain.CanTransition(t.Status, status) {
				res.Err = fmt.Errorf("%w: %s to %s", ErrInvalidTransition, t.Status, status)
				return res
			}
		}
	}

	if !s.acquire(id) {
		res.Err = ErrInFlight
		return res
	}
	release := true
	defer func() {
		if release {
			s.release(id)
		}
	}()

	log := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"task_id": id,
		"status":  status,
	})

	done, err := s.pool.Submit(ctx, func(ctx context.Context) error {
		return s.writer.UpdateStatus(ctx, cred, id, status)
	})
	if err != nil {
		log.WithError(err).Warn("status update not queued")
		res.Err = err
		return res
	}

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
		// keep the id guarded until the queued write actually finishes
		release = false
		go func() {
			<-done
			s.release(id)
		}()
	}
	if err != nil {
		log.WithError(err).Error("status update failed")
		res.Err = fmt.Errorf("update task %d: %w", id, err)
		return res
	}
	res.Applied = true

	snap, err := s.store.Refresh(ctx, cred)
	if err != nil {
		log.WithError(err).Error("refresh after status update failed")
		res.Err = fmt.Errorf("%w: %w", ErrRefreshFailed, err)
		return res
	}
	res.Snapshot = snap

	log.Info("task status updated")
	return res
}

func (s *TaskService) acquire(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[id]; busy {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *TaskService) release(id int64) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}
