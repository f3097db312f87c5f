// Package policy provides an optional per-tool execution policy that can be
// attached to a run via context. It is deliberately decoupled from the driver
// so that using it is entirely opt-in – runs that do not embed a Policy in
// their context execute every tool for real.
package policy

import (
	"context"
	"strings"
)

// Execution modes recognised by the driver.
const (
	ModeRun    = "run"     // invoke external tools (default)
	ModeDryRun = "dry-run" // expand commands but do not invoke them
)

// Policy represents the execution settings for the current run.
//
//   - Mode controls whether external tools are actually invoked.
//   - AllowList, BlockList filter tools by name regardless of Mode.
//
// A nil *Policy means "run everything" and is the zero-cost default.
type Policy struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// IsDryRun reports whether commands should only be expanded, not invoked.
func (p *Policy) IsDryRun() bool {
	return p != nil && strings.EqualFold(p.Mode, ModeDryRun)
}

// IsAllowed evaluates AllowList / BlockList against a tool name. Matching is
// exact, case-insensitive; BlockList has priority and an empty AllowList
// allows everything.
func (p *Policy) IsAllowed(tool string) bool {
	if p == nil {
		return true
	}
	normalized := strings.ToLower(tool)
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}
	return false
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
