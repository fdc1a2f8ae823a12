// Package generator turns a wordlist into stored NSEC3 reverse lookup tables,
// for one hashing configuration or a batch of presets.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hako/durafmt"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/seifreed/NSECGenerator/cache"
	"github.com/seifreed/NSECGenerator/config"
	"github.com/seifreed/NSECGenerator/engine"
	"github.com/seifreed/NSECGenerator/evt"
	"github.com/seifreed/NSECGenerator/lists"
	"github.com/seifreed/NSECGenerator/log"
	"github.com/seifreed/NSECGenerator/nsec3"
)

const loggerPrefix = "generator"

// ErrWordlist marks errors caused by the wordlist, no table is computed then
var ErrWordlist = errors.New("can't load wordlist")

// Params is one hashing configuration
type Params struct {
	Name       string
	Salt       string
	Iterations uint32
}

// ParamsFromPreset converts a configured preset
func ParamsFromPreset(p config.Preset) Params {
	return Params{Name: p.Name, Salt: p.Salt, Iterations: p.Iterations}
}

func (p Params) String() string {
	if p.Name == "" {
		return fmt.Sprintf("salt '%s', %d iterations", p.Salt, p.Iterations)
	}

	return fmt.Sprintf("%s (salt '%s', %d iterations)", p.Name, p.Salt, p.Iterations)
}

// Result describes one stored table
type Result struct {
	Params     Params
	Key        string
	Location   cache.Location
	Entries    int
	Collisions int
	Elapsed    time.Duration
}

func (r *Result) String() string {
	return fmt.Sprintf("%d hashes in %s, written to %s", r.Entries,
		durafmt.Parse(r.Elapsed).LimitFirstN(2), r.Location.Target)
}

// HashFuncFor returns the hash function the engine must use for mode
func HashFuncFor(mode config.HashMode) nsec3.HashFunc {
	if mode == config.HashModeWire {
		return nsec3.WireHash
	}

	return nsec3.Hash
}

// Generator hashes candidates with an engine and stores the tables
type Generator struct {
	engine *engine.Engine
	store  cache.Store
	mode   config.HashMode
}

// New creates a generator. The engine must hash with HashFuncFor(mode).
func New(eng *engine.Engine, store cache.Store, mode config.HashMode) *Generator {
	return &Generator{engine: eng, store: store, mode: mode}
}

// Key returns the cache key tables of params are stored under
func (g *Generator) Key(params Params) string {
	if g.mode == config.HashModeWire {
		return nsec3.WireCacheKey(params.Salt, params.Iterations)
	}

	return nsec3.CacheKey(params.Salt, params.Iterations)
}

// Run reads the wordlist and generates the table for params
func (g *Generator) Run(ctx context.Context, domain, wordlistPath string, params Params) (*Result, error) {
	candidates, err := lists.ReadWordlist(ctx, wordlistPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWordlist, err)
	}

	return g.Generate(ctx, domain, candidates, params)
}

// Generate hashes every candidate below domain and stores the table
func (g *Generator) Generate(ctx context.Context, domain string, candidates []string, params Params,
) (*Result, error) {
	key := g.Key(params)

	ctx, logger := log.CtxWithFields(ctx, logrus.Fields{
		"prefix": loggerPrefix,
		"run":    uuid.NewString(),
		"key":    key,
	})

	salt := nsec3.ParseSalt(params.Salt, logger)

	logger.Infof("hashing %d candidates below '%s' with %s", len(candidates), log.EscapeInput(domain), params)

	evt.Bus().Publish(evt.HashingStarted, key, len(candidates))

	start := time.Now()

	table, err := g.engine.Run(ctx, candidates, engine.Job{
		Key:        key,
		Domain:     domain,
		Salt:       salt,
		Iterations: params.Iterations,
	})
	if err != nil {
		return nil, fmt.Errorf("hashing interrupted: %w", err)
	}

	elapsed := time.Since(start)

	evt.Bus().Publish(evt.HashingFinished, key, table.Len(), table.Collisions(), elapsed.Seconds())

	if table.Collisions() > 0 {
		logger.Warnf("%d hash collisions, only the last name of each hash was kept", table.Collisions())
	}

	artifact := cache.NewArtifact(key, domain, params.Salt, params.Iterations, len(candidates), table.Entries())

	loc, err := g.store.Save(ctx, artifact)
	if err != nil {
		evt.Bus().Publish(evt.CacheFileFailed, key, err)

		return nil, fmt.Errorf("can't store table %s: %w", key, err)
	}

	evt.Bus().Publish(evt.CacheFileWritten, key, loc.Target, loc.Size)

	res := &Result{
		Params:     params,
		Key:        key,
		Location:   loc,
		Entries:    table.Len(),
		Collisions: table.Collisions(),
		Elapsed:    elapsed,
	}

	logger.Info(res)

	return res, nil
}

// Failure is a preset that could not be generated
type Failure struct {
	Params Params
	Err    error
}

// BatchResult collects the outcome of every preset of a batch
type BatchResult struct {
	Results []*Result
	Failed  []Failure
}

// Err returns all failures combined, nil if every preset succeeded
func (b *BatchResult) Err() error {
	var errs *multierror.Error

	for _, f := range b.Failed {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", f.Params.Name, f.Err))
	}

	return errs.ErrorOrNil()
}

// RunAll reads the wordlist once and generates a table per preset, in order.
//
// A failing preset is logged and recorded, the batch continues with the next
// one. Errors are only returned if the wordlist can't be read or ctx is done.
func (g *Generator) RunAll(ctx context.Context, domain, wordlistPath string, presets []config.Preset,
) (*BatchResult, error) {
	logger := log.PrefixedLog(loggerPrefix)

	candidates, err := lists.ReadWordlist(ctx, wordlistPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWordlist, err)
	}

	logger.Infof("generating %d tables for %d candidates", len(presets), len(candidates))

	batch := &BatchResult{}

	for i, preset := range presets {
		params := ParamsFromPreset(preset)

		logger.Infof("[%d/%d] %s", i+1, len(presets), params)

		res, err := g.Generate(ctx, domain, candidates, params)
		if err != nil {
			logger.WithField("preset", params.Name).Errorf("generation failed: %v", err)

			batch.Failed = append(batch.Failed, Failure{Params: params, Err: err})

			if ctx.Err() != nil {
				return batch, ctx.Err()
			}

			continue
		}

		batch.Results = append(batch.Results, res)
	}

	logger.Infof("batch done: %d tables written, %d failed", len(batch.Results), len(batch.Failed))

	return batch, nil
}
