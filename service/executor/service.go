package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/courseops/courseops/model"
	"github.com/courseops/courseops/policy"
	"github.com/courseops/courseops/report"
	"github.com/courseops/courseops/tracing"
)

// TexInputsKey is the environment variable surfaced to every invoked tool.
const TexInputsKey = "TEXINPUTS"

// Service opens per-directory sessions and executes tool invocations.
type Service struct {
	env       map[string]string
	timeoutMs int
	newRunner func(ctx context.Context, env map[string]string, timeoutMs int) (Runner, error)
}

// Option customises the service.
type Option func(*Service)

// WithEnv sets the environment passed to every invoked process.
func WithEnv(env map[string]string) Option {
	return func(s *Service) {
		s.env = env
	}
}

// WithTexInputs sets the TEXINPUTS value passed to every invoked process.
func WithTexInputs(value string) Option {
	return func(s *Service) {
		if s.env == nil {
			s.env = map[string]string{}
		}
		s.env[TexInputsKey] = value
	}
}

// WithTimeoutMs bounds a single invocation; zero keeps invocations unbounded
// so a hung external process blocks its worker.
func WithTimeoutMs(timeoutMs int) Option {
	return func(s *Service) {
		s.timeoutMs = timeoutMs
	}
}

// WithRunnerFactory substitutes the session factory (used by tests).
func WithRunnerFactory(factory func(ctx context.Context, env map[string]string, timeoutMs int) (Runner, error)) Option {
	return func(s *Service) {
		s.newRunner = factory
	}
}

// New creates an executor service.
func New(options ...Option) *Service {
	ret := &Service{newRunner: NewLocalRunner}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Session binds a shell session to one working directory.
type Session struct {
	runner Runner
	dir    string
}

// Open starts a session with the working directory set to dir.
func (s *Service) Open(ctx context.Context, dir string) (*Session, error) {
	run, err := s.newRunner(ctx, s.env, s.timeoutMs)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	if dir != "" {
		if _, _, err := run.Run(ctx, fmt.Sprintf("cd %s", quote(dir))); err != nil {
			_ = run.Close()
			return nil, fmt.Errorf("failed to change directory to %s: %w", dir, err)
		}
	}
	return &Session{runner: run, dir: dir}, nil
}

// Close releases the underlying shell session.
func (s *Session) Close() error {
	return s.runner.Close()
}

// Invoke expands the invocation template against doc and runs it. The result
// is always a record; the only error channel is the record itself.
func (s *Session) Invoke(ctx context.Context, inv *model.Invocation, doc *model.Document, expansion *model.Expansion) *report.Invocation {
	argv := expansion.Expand(inv.Argv)
	command := CommandLine(argv)
	record := &report.Invocation{
		Tool:     inv.Tool,
		Document: doc.Name,
		Command:  command,
	}

	runPolicy := policy.FromContext(ctx)
	if !runPolicy.IsAllowed(inv.Tool) {
		record.Skipped = true
		return record
	}
	if runPolicy.IsDryRun() {
		record.Skipped = true
		return record
	}

	ctx, span := tracing.StartSpan(ctx, "tool."+inv.Tool)
	span.WithAttributes(map[string]string{"document": doc.Name, "command": command})

	started := time.Now()
	stdout, status, err := s.runner.Run(ctx, command)
	record.Elapsed = time.Since(started)
	record.Status = status
	if status == 0 && err == nil {
		record.Stdout = stdout
	} else {
		record.Stderr = stdout
		if err != nil {
			record.Err = err.Error()
		} else {
			record.Err = fmt.Sprintf("%s exited with status %d", inv.Tool, status)
		}
	}
	tracing.EndSpan(span, nil)
	return record
}

// CommandLine joins expanded argv tokens into a shell command line.
func CommandLine(argv []string) string {
	quoted := make([]string, len(argv))
	for i, token := range argv {
		quoted[i] = quote(token)
	}
	return strings.Join(quoted, " ")
}

// quote wraps a token in single quotes when it contains shell metacharacters.
func quote(token string) string {
	if token != "" && !strings.ContainsAny(token, " \t\n'\"\\$&|;<>()*?[]{}~#") {
		return token
	}
	return "'" + strings.ReplaceAll(token, "'", `'\''`) + "'"
}
