package executor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseops/courseops/model"
	"github.com/courseops/courseops/policy"
)

// fakeRunner records commands and replays scripted results.
type fakeRunner struct {
	commands []string
	status   map[string]int
	err      map[string]error
	closed   bool
}

func (f *fakeRunner) Run(_ context.Context, command string) (string, int, error) {
	f.commands = append(f.commands, command)
	if err, ok := f.err[command]; ok {
		return "", -1, err
	}
	if status, ok := f.status[command]; ok && status != 0 {
		return "boom", status, nil
	}
	return "done", 0, nil
}

func (f *fakeRunner) Close() error {
	f.closed = true
	return nil
}

func newTestService(fake *fakeRunner, options ...Option) *Service {
	options = append(options, WithRunnerFactory(
		func(ctx context.Context, env map[string]string, timeoutMs int) (Runner, error) {
			return fake, nil
		}))
	return New(options...)
}

func TestSession_Invoke(t *testing.T) {
	fake := &fakeRunner{}
	service := newTestService(fake, WithTexInputs("/opt/texmf//:"))
	ctx := context.Background()

	session, err := service.Open(ctx, "/work/figures")
	require.NoError(t, err)
	defer session.Close()

	doc := model.NewDocument("/work/figures/arch.tex")
	inv := &model.Invocation{Tool: "latex", Argv: []string{"lualatex", "-interaction=nonstopmode", "%DOC%"}}
	record := session.Invoke(ctx, inv, doc, model.NewExpansion(".", doc))

	require.True(t, record.Succeeded())
	assert.Equal(t, "latex", record.Tool)
	assert.Equal(t, "arch.tex", record.Document)
	assert.Equal(t, "lualatex -interaction=nonstopmode /work/figures/arch.tex", record.Command)
	assert.Equal(t, "done", record.Stdout)
	// cd first, then the tool
	require.Len(t, fake.commands, 2)
	assert.Equal(t, "cd /work/figures", fake.commands[0])
}

func TestSession_InvokeFailureIsRecorded(t *testing.T) {
	ctx := context.Background()
	doc := model.NewDocument("fig.tex")
	expansion := model.NewExpansion(".", doc)

	t.Run("non-zero exit", func(t *testing.T) {
		fake := &fakeRunner{status: map[string]int{"pdf2svg fig.pdf fig.svg": 127}}
		service := newTestService(fake)
		session, err := service.Open(ctx, "")
		require.NoError(t, err)
		inv := &model.Invocation{Tool: "svg", Argv: []string{"pdf2svg", "%DOCFILE%.pdf", "%DOCFILE%.svg"}}
		record := session.Invoke(ctx, inv, doc, expansion)
		assert.False(t, record.Succeeded())
		assert.Equal(t, 127, record.Status)
		assert.Contains(t, record.Err, "status 127")
		assert.Equal(t, "boom", record.Stderr)
	})

	t.Run("runner error", func(t *testing.T) {
		fake := &fakeRunner{err: map[string]error{"missing fig.tex": fmt.Errorf("executable not found")}}
		service := newTestService(fake)
		session, err := service.Open(ctx, "")
		require.NoError(t, err)
		inv := &model.Invocation{Tool: "missing", Argv: []string{"missing", "%DOC%"}}
		record := session.Invoke(ctx, inv, doc, expansion)
		assert.False(t, record.Succeeded())
		assert.Equal(t, "executable not found", record.Err)
	})
}

func TestSession_InvokePolicy(t *testing.T) {
	fake := &fakeRunner{}
	service := newTestService(fake)
	doc := model.NewDocument("fig.tex")
	expansion := model.NewExpansion(".", doc)
	inv := &model.Invocation{Tool: "latex", Argv: []string{"lualatex", "%DOC%"}}

	t.Run("dry-run records without invoking", func(t *testing.T) {
		ctx := policy.WithPolicy(context.Background(), &policy.Policy{Mode: policy.ModeDryRun})
		session, err := service.Open(ctx, "")
		require.NoError(t, err)
		record := session.Invoke(ctx, inv, doc, expansion)
		assert.True(t, record.Skipped)
		assert.Equal(t, "lualatex fig.tex", record.Command)
		assert.Empty(t, fake.commands)
	})

	t.Run("blocked tool is skipped", func(t *testing.T) {
		ctx := policy.WithPolicy(context.Background(), &policy.Policy{BlockList: []string{"latex"}})
		session, err := service.Open(ctx, "")
		require.NoError(t, err)
		record := session.Invoke(ctx, inv, doc, expansion)
		assert.True(t, record.Skipped)
		assert.Empty(t, fake.commands)
	})
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "echo 'hello world'", CommandLine([]string{"echo", "hello world"}))
	assert.Equal(t, `echo 'it'\''s'`, CommandLine([]string{"echo", "it's"}))
	assert.Equal(t, "lualatex fig.tex", CommandLine([]string{"lualatex", "fig.tex"}))
}
