package codebase

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/coreos/monorepo/internal/buildctx"
	"github.com/coreos/monorepo/internal/errs"
)

// state tracks a codebase's position in the registry's construction
// lifecycle, used to detect cycles.
type state int

const (
	stateWhite state = iota // not yet seen
	stateGray               // construction in progress
	stateBlack              // fully constructed
)

// Registry is a process-wide (per-Context) memoization of CodeBase
// objects keyed by name. It is not safe for concurrent use from
// multiple goroutines; the orchestrator is single-threaded.
type Registry struct {
	ctx   *buildctx.Context
	nodes map[string]*CodeBase
	marks map[string]state
}

// NewRegistry returns an empty Registry bound to ctx.
func NewRegistry(ctx *buildctx.Context) *Registry {
	return &Registry{
		ctx:   ctx,
		nodes: map[string]*CodeBase{},
		marks: map[string]state{},
	}
}

// Get returns the CodeBase named name, constructing (loading metadata
// and fingerprinting) it on first lookup. Construction recurses into
// Get for every declared dependency; a name re-entered while still gray
// (under construction) is a cycle.
func (r *Registry) Get(name string) (*CodeBase, error) {
	if r.marks[name] == stateBlack {
		return r.nodes[name], nil
	}
	if r.marks[name] == stateGray {
		return nil, errors.Wrapf(errs.ErrCyclicDependency, "codebase %q", name)
	}

	r.marks[name] = stateGray
	cb, err := newCodeBase(r, name)
	if err != nil {
		delete(r.marks, name)
		return nil, err
	}
	r.marks[name] = stateBlack
	r.nodes[name] = cb
	return cb, nil
}

func (r *Registry) codeBaseRoot(name string) string {
	return filepath.Join(r.ctx.MonorepoRoot, name)
}
