// SPDX-License-Identifier: MIT

package exciton

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/excitontb/interaction"
	"github.com/katalvlaran/excitontb/kernel"
)

// Interaction returns the store for cutoff and kern, adjusted by settings.
// See Store.
func (e *Engine) Interaction(ctx context.Context, cutoff float64, kern kernel.Config, settings ...Setting) (*interaction.Store, error) {
	cfg := interaction.Config{Cutoff: cutoff, Kernel: kern}
	for _, s := range settings {
		s(&cfg)
	}

	return e.Store(ctx, cfg)
}

// Store returns the cached store for cfg or builds it.
//
// Behavior highlights:
//   - The cache key is cfg.Fingerprint(); any field change is a miss.
//   - Concurrent misses for one key share a single build, run under the
//     context of the first caller.
//   - A failed build caches nothing; the previous entries stay.
//
// Errors: those of interaction.Build.
func (e *Engine) Store(ctx context.Context, cfg interaction.Config) (*interaction.Store, error) {
	key := cfg.Fingerprint()
	if st, ok := e.cache.Get(key); ok {
		e.hit()
		return st, nil
	}
	e.miss()

	v, err, shared := e.group.Do(key, func() (any, error) {
		if st, ok := e.cache.Get(key); ok {
			return st, nil
		}
		opts := []interaction.Option{interaction.WithWorkers(e.workers), interaction.WithLogger(e.logger)}
		if e.recorder != nil {
			opts = append(opts, interaction.WithObserver(e.recorder))
		}
		st, err := interaction.Build(ctx, e.ds, cfg, opts...)
		if err != nil {
			return nil, err
		}
		e.cache.Add(key, st)

		return st, nil
	})
	if err != nil {
		e.logger.Debug("exciton: build failed", zap.String("config", key), zap.Error(err))
		return nil, err
	}
	if shared {
		e.logger.Debug("exciton: build shared", zap.String("config", key))
	}

	return v.(*interaction.Store), nil
}

// Invalidate drops every cached store.
func (e *Engine) Invalidate() {
	e.cache.Purge()
	e.logger.Debug("exciton: cache purged")
}

// Cached returns the number of stores currently cached.
func (e *Engine) Cached() int { return e.cache.Len() }

func (e *Engine) hit() {
	if e.recorder != nil {
		e.recorder.CacheHit()
	}
}

func (e *Engine) miss() {
	if e.recorder != nil {
		e.recorder.CacheMiss()
	}
}
