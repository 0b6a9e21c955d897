package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"summaryhub-backend/internal/summary/domain"
	"summaryhub-backend/pkg/zlog"
)

// jobTimeout bounds a single background summarize call
const jobTimeout = 30 * time.Second

// IngestJob represents a message queued for background summarization
type IngestJob struct {
	Payload domain.MessagePayload
}

// IngestResult reports how many messages were accepted by the queue
type IngestResult struct {
	Queued   int `json:"queued"`
	Rejected int `json:"rejected"`
}

// IngestWorkerService summarizes queued messages in the background
type IngestWorkerService struct {
	summarizer interface {
		Summarize(ctx context.Context, payload domain.MessagePayload) (*SummarizeResult, error)
	}
	jobQueue    chan IngestJob
	workerWg    sync.WaitGroup
	workerCount int
	started     bool
	stopped     bool
	mu          sync.Mutex
}

// NewIngestWorkerService creates a new ingest worker service
func NewIngestWorkerService(summarizer interface {
	Summarize(ctx context.Context, payload domain.MessagePayload) (*SummarizeResult, error)
}, workerCount, queueSize int) *IngestWorkerService {
	if workerCount <= 0 {
		workerCount = 3 // Default to 3 workers
	}
	if queueSize <= 0 {
		queueSize = 500
	}

	return &IngestWorkerService{
		summarizer:  summarizer,
		jobQueue:    make(chan IngestJob, queueSize), // Buffered channel
		workerCount: workerCount,
	}
}

// Start starts the ingest workers
func (s *IngestWorkerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}

	for i := 0; i < s.workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(i)
	}
	s.started = true
	zlog.Info("ingest workers started", zap.Int("workers", s.workerCount))
}

// Stop closes the queue and waits for queued jobs to drain
func (s *IngestWorkerService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.jobQueue)
	s.mu.Unlock()

	s.workerWg.Wait()
	zlog.Info("ingest workers stopped")
}

// worker processes jobs from the queue
func (s *IngestWorkerService) worker(id int) {
	defer s.workerWg.Done()

	for job := range s.jobQueue {
		s.processJob(job)
	}

	zlog.Debug("ingest worker stopped", zap.Int("worker", id))
}

// processJob summarizes a single message; failures are logged, never retried
func (s *IngestWorkerService) processJob(job IngestJob) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := s.summarizer.Summarize(ctx, job.Payload)
	if err != nil {
		zlog.Error("ingest summarize failed",
			zap.String("message_id", job.Payload.MessageID),
			zap.Error(err),
		)
		return
	}
	if !result.Persisted() {
		// already logged and counted by the usecase
		return
	}
	zlog.Debug("ingested message",
		zap.String("message_id", job.Payload.MessageID),
		zap.String("summary_id", result.Record.SummaryID),
	)
}

// QueueJob adds a single job to the queue (non-blocking)
func (s *IngestWorkerService) QueueJob(job IngestJob) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}
	select {
	case s.jobQueue <- job:
		return true
	default:
		return false // Queue full
	}
}

// Ingest queues every payload; messages that do not fit are rejected, not blocked on
func (s *IngestWorkerService) Ingest(payloads []domain.MessagePayload) IngestResult {
	var res IngestResult
	for _, p := range payloads {
		if s.QueueJob(IngestJob{Payload: p}) {
			res.Queued++
		} else {
			res.Rejected++
		}
	}
	if res.Rejected > 0 {
		zlog.Warn("ingest queue full", zap.Int("rejected", res.Rejected))
	}
	return res
}
