package executor

import (
	"context"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
)

// Runner abstracts the shell session executing expanded commands so that
// tests can substitute a recording fake.
type Runner interface {
	Run(ctx context.Context, command string) (stdout string, status int, err error)
	Close() error
}

// goshRunner runs commands through a local viant/gosh shell session.
type goshRunner struct {
	service   *gosh.Service
	timeoutMs int
}

func (r *goshRunner) Run(ctx context.Context, command string) (string, int, error) {
	var options []runner.Option
	if r.timeoutMs > 0 {
		options = append(options, runner.WithTimeout(r.timeoutMs))
	}
	return r.service.Run(ctx, command, options...)
}

func (r *goshRunner) Close() error {
	return r.service.Close()
}

// NewLocalRunner opens a local shell session with the supplied environment.
func NewLocalRunner(ctx context.Context, env map[string]string, timeoutMs int) (Runner, error) {
	var options []runner.Option
	if len(env) > 0 {
		options = append(options, runner.WithEnvironment(env))
	}
	service, err := gosh.New(ctx, local.New(options...))
	if err != nil {
		return nil, err
	}
	return &goshRunner{service: service, timeoutMs: timeoutMs}, nil
}
