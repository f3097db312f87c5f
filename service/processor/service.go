// Package processor hosts the workers that regenerate documents. Documents
// are fanned out across a bounded worker pool; the tools of one document
// always run sequentially in recipe order, only the per-document loop is
// parallel. Process acts as a barrier: it returns once every published
// document has been handled.
package processor

import (
	"context"
	"fmt"
	"sync"

	"github.com/courseops/courseops/model"
	"github.com/courseops/courseops/report"
	"github.com/courseops/courseops/service/executor"
	"github.com/courseops/courseops/service/messaging"
	"github.com/courseops/courseops/service/messaging/memory"
	"github.com/courseops/courseops/tracing"
)

// Config represents processor configuration.
type Config struct {
	// WorkerCount is the number of workers processing documents.
	WorkerCount int
}

// DefaultConfig returns the default processor configuration.
func DefaultConfig() Config {
	return Config{WorkerCount: 4}
}

// Service fans documents out to workers.
type Service struct {
	config   Config
	executor *executor.Service
	queue    messaging.Queue[model.Document]
}

// Option customises the service.
type Option func(*Service)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.WorkerCount = count
	}
}

// WithExecutor sets the tool executor.
func WithExecutor(service *executor.Service) Option {
	return func(s *Service) {
		s.executor = service
	}
}

// WithQueue sets the document queue implementation.
func WithQueue(queue messaging.Queue[model.Document]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// New creates a processor service.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if s.executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if s.queue == nil {
		s.queue = memory.NewQueue[model.Document](memory.DefaultConfig())
	}
	if s.config.WorkerCount <= 0 {
		s.config.WorkerCount = DefaultConfig().WorkerCount
	}
	return s, nil
}

// Process publishes every document, runs the pool and blocks until every
// published document has been handled. Workers start before publishing so a
// document backlog larger than the queue buffer drains instead of blocking
// the publisher. Tool failures are recorded in rep, never returned; the
// error covers queue publishing and caller cancellation only.
func (s *Service) Process(ctx context.Context, dir string, documents []*model.Document, table *model.ToolTable, outDir string, rep *report.Report) error {
	if len(documents) == 0 || table.Size() == 0 {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// buffered to len(documents) so workers never block reporting completion
	handled := make(chan struct{}, len(documents))
	var workers sync.WaitGroup
	for i := 0; i < s.config.WorkerCount; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			s.work(workerCtx, dir, table, outDir, rep, handled)
		}()
	}

	published := 0
	var err error
	for _, document := range documents {
		if err = s.queue.Publish(ctx, document); err != nil {
			err = fmt.Errorf("failed to queue %s: %w", document.Name, err)
			break
		}
		published++
	}

	for done := 0; err == nil && done < published; {
		// checked first so a cancelled run never reports success
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-handled:
			done++
		case <-ctx.Done():
			err = ctx.Err()
		}
	}
	cancel()
	workers.Wait()
	return err
}

func (s *Service) work(ctx context.Context, dir string, table *model.ToolTable, outDir string, rep *report.Report, handled chan<- struct{}) {
	for {
		msg, err := s.queue.Consume(ctx)
		if err != nil {
			return
		}
		document := msg.T()
		s.process(ctx, dir, document, table, outDir, rep)
		_ = msg.Ack()
		handled <- struct{}{}
	}
}

// process runs every tool of the table against one document, sequentially
// and in recipe order.
func (s *Service) process(ctx context.Context, dir string, document *model.Document, table *model.ToolTable, outDir string, rep *report.Report) {
	ctx, span := tracing.StartSpan(ctx, "document."+document.Stem())
	defer tracing.EndSpan(span, nil)

	session, err := s.executor.Open(ctx, dir)
	if err != nil {
		rep.Record(&report.Invocation{
			Tool:     "shell",
			Document: document.Name,
			Err:      err.Error(),
		})
		return
	}
	defer session.Close()

	expansion := model.NewExpansion(outDir, document)
	for _, invocation := range table.Invocations() {
		rep.Record(session.Invoke(ctx, invocation, document, expansion))
	}
}
