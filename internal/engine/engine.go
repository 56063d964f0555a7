// Package engine runs the Three-Talent Five-Grid analysis of a name.
package engine

import (
	"context"

	"github.com/f3rmion/sancai/internal/dict"
	"github.com/f3rmion/sancai/internal/sancai"
	"go.uber.org/zap"
)

// Provider hands out the loaded stroke dictionary. *dict.Loader implements it.
type Provider interface {
	Load(ctx context.Context) (*dict.Dictionary, error)
}

// Static wraps an already loaded dictionary.
func Static(d *dict.Dictionary) Provider {
	return staticProvider{d: d}
}

type staticProvider struct {
	d *dict.Dictionary
}

func (p staticProvider) Load(context.Context) (*dict.Dictionary, error) {
	return p.d, nil
}

// Cache stores successful results of a dictionary snapshot. Implementations swallow
// their own failures and report them as misses.
type Cache interface {
	Get(ctx context.Context, version string, in sancai.NameInput) (*sancai.Result, bool)
	Put(ctx context.Context, version string, res *sancai.Result)
}

// Engine analyzes names. It holds no mutable state besides what its Provider and Cache keep.
type Engine struct {
	dicts  Provider
	cache  Cache
	logger *zap.Logger
}

// New creates an engine over the given dictionary provider.
func New(dicts Provider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{dicts: dicts, logger: logger}
}

// WithCache returns a copy of e that consults c before computing.
func (e *Engine) WithCache(c Cache) *Engine {
	cp := *e
	cp.cache = c
	return &cp
}

// Analyze validates in, resolves every character and derives the grids.
//
// Errors are *sancai.InvalidInputError, *sancai.DictionaryUnavailableError or
// *sancai.UnresolvedCharacterError. Validation never touches the dictionary, and no
// result is produced when any character is unresolved.
func (e *Engine) Analyze(ctx context.Context, in sancai.NameInput) (*sancai.Result, error) {
	in, err := sancai.Validate(in)
	if err != nil {
		return nil, err
	}

	d, err := e.dicts.Load(ctx)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if res, ok := e.cache.Get(ctx, d.Version(), in); ok {
			return res, nil
		}
	}

	res, err := compute(NewResolver(d), in)
	if err != nil {
		e.logger.Debug("Name has unresolved characters",
			zap.String("surname", in.Surname),
			zap.String("given_name", in.GivenName),
			zap.Error(err),
		)
		return nil, err
	}
	res.DictVersion = d.Version()

	if e.cache != nil {
		e.cache.Put(ctx, d.Version(), res)
	}

	e.logger.Debug("Name analyzed",
		zap.String("surname", in.Surname),
		zap.String("given_name", in.GivenName),
		zap.Stringer("three_talents", res.ThreeTalents),
	)
	return res, nil
}

func compute(r Resolver, in sancai.NameInput) (*sancai.Result, error) {
	var (
		unresolved []string
		seen       = make(map[string]bool)
	)
	resolveAll := func(s string) []sancai.CharStrokes {
		var out []sancai.CharStrokes
		for _, c := range s {
			char := string(c)
			cs, ok := r.Resolve(char)
			if !ok {
				if !seen[char] {
					seen[char] = true
					unresolved = append(unresolved, char)
				}
				continue
			}
			out = append(out, cs)
		}
		return out
	}

	surname := resolveAll(in.Surname)
	given := resolveAll(in.GivenName)
	if len(unresolved) > 0 {
		return nil, &sancai.UnresolvedCharacterError{Chars: unresolved}
	}

	// Compound surnames contribute the sum of their characters.
	s := 0
	for _, cs := range surname {
		s += cs.Strokes
	}
	g := make([]int, len(given))
	for i, cs := range given {
		g[i] = cs.Strokes
	}

	grids := sancai.ComputeGrids(s, g)
	return &sancai.Result{
		Input:        in,
		Surname:      surname,
		GivenName:    given,
		Grids:        grids,
		Elements:     sancai.AssignElements(grids),
		ThreeTalents: sancai.Compose(grids),
	}, nil
}
