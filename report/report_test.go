package report

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport_Record(t *testing.T) {
	r := New("figures", "default")
	r.Record(&Invocation{Tool: "latex", Document: "a.tex", Status: 0})
	r.Record(&Invocation{Tool: "latex", Document: "b.tex", Status: 1})
	r.Record(&Invocation{Tool: "svg", Document: "a.tex", Skipped: true})

	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 1, r.Succeeded)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 1, r.SkippedRuns)
	assert.True(t, r.HasFailures())
}

func TestReport_ConcurrentRecord(t *testing.T) {
	r := New("figures", "default")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Record(&Invocation{Tool: "latex", Document: "a.tex"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, r.Total)
	assert.Equal(t, 50, r.Succeeded)
}

func TestReport_Print(t *testing.T) {
	r := New("figures", "default")
	r.Record(&Invocation{Tool: "latex", Document: "a.tex", Command: "lualatex a.tex", Status: 2, Err: "exit 2"})
	r.Clean([]string{"a.log"})
	r.Done()

	var buf bytes.Buffer
	r.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "failed status=2")
	assert.Contains(t, out, "lualatex a.tex")
	assert.Contains(t, out, "a.log")
}

func TestFilterReport(t *testing.T) {
	f := NewFilterReport("prepare")
	f.Process("a.qmd")
	f.Skip("b.qmd")
	f.Fail("c.qmd")

	var buf bytes.Buffer
	f.Print(&buf)
	assert.Contains(t, buf.String(), "processed=1 skipped=1 failed=1")
	assert.Contains(t, buf.String(), "failed: c.qmd")
}
