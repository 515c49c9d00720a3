// internal/common/camunda/worker.go
package camunda

import (
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"institute-discovery/internal/common/config"
	"institute-discovery/internal/common/logger"
)

// WorkerSet opens job workers and closes them together on shutdown.
type WorkerSet struct {
	client zbc.Client
	logger logger.Logger

	mu      sync.Mutex
	workers []worker.JobWorker
}

func NewWorkerSet(client zbc.Client, log logger.Logger) *WorkerSet {
	return &WorkerSet{client: client, logger: log}
}

// Start opens a job worker for taskType unless it is disabled in wcfg.
func (s *WorkerSet) Start(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) bool {
	if !wcfg.Enabled {
		s.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	jw := s.client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	s.mu.Lock()
	s.workers = append(s.workers, jw)
	s.mu.Unlock()

	s.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// Len returns the number of open workers.
func (s *WorkerSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workers)
}

// Close stops polling on every worker and waits for in-flight jobs.
func (s *WorkerSet) Close() {
	s.mu.Lock()
	workers := s.workers
	s.workers = nil
	s.mu.Unlock()

	for _, jw := range workers {
		jw.Close()
		jw.AwaitClose()
	}
	s.logger.Info("workers stopped", map[string]interface{}{"count": len(workers)})
}
