package dict

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/f3rmion/sancai/internal/sancai"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout bounds a single fetch-and-parse of the resource.
const DefaultLoadTimeout = 30 * time.Second

const flightKey = "dictionary"

// Loader loads a Dictionary from a Source at most once.
//
// Concurrent Load calls issued before the first load completes share the same in-flight
// fetch. A successful load is kept for the lifetime of the Loader. A failed load is not
// kept, so a later call fetches again.
type Loader struct {
	source  Source
	timeout time.Duration
	logger  *zap.Logger

	group   singleflight.Group
	loaded  atomic.Pointer[Dictionary]
	fetches atomic.Int64
}

// NewLoader creates a loader. A zero timeout means DefaultLoadTimeout.
func NewLoader(source Source, timeout time.Duration, logger *zap.Logger) *Loader {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		source:  source,
		timeout: timeout,
		logger:  logger,
	}
}

// Load returns the dictionary, fetching it if no load has succeeded yet.
//
// ctx bounds only how long this caller waits. The shared fetch is not cancelled when one
// waiter gives up; it is bounded by the loader timeout instead. Every failure is reported
// as *sancai.DictionaryUnavailableError.
func (l *Loader) Load(ctx context.Context) (*Dictionary, error) {
	if d := l.loaded.Load(); d != nil {
		return d, nil
	}

	ch := l.group.DoChan(flightKey, func() (any, error) {
		if d := l.loaded.Load(); d != nil {
			return d, nil
		}
		return l.fetch(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, l.unavailable(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dictionary), nil
	}
}

// Loaded returns the dictionary if a load has already succeeded.
func (l *Loader) Loaded() (*Dictionary, bool) {
	d := l.loaded.Load()
	return d, d != nil
}

// Fetches returns how many times the source has been fetched.
func (l *Loader) Fetches() int64 {
	return l.fetches.Load()
}

// Source returns the resource location.
func (l *Loader) Source() string {
	return l.source.String()
}

func (l *Loader) fetch(ctx context.Context) (*Dictionary, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	l.fetches.Add(1)
	start := time.Now()
	l.logger.Info("Loading stroke dictionary", zap.String("source", l.source.String()))

	data, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.Error("Dictionary fetch failed", zap.String("source", l.source.String()), zap.Error(err))
		return nil, l.unavailable(err)
	}

	d, err := Parse(data)
	if err != nil {
		l.logger.Error("Dictionary rejected", zap.String("source", l.source.String()), zap.Error(err))
		return nil, l.unavailable(err)
	}

	l.loaded.Store(d)
	l.logger.Info("Stroke dictionary loaded",
		zap.Int("entries", d.Size()),
		zap.String("version", d.Version()),
		zap.Duration("took", time.Since(start)),
	)
	return d, nil
}

func (l *Loader) unavailable(cause error) error {
	return &sancai.DictionaryUnavailableError{Source: l.source.String(), Cause: cause}
}
