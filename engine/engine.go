// Package engine fans a candidate wordlist out over a pool of goroutines and
// collects the NSEC3 hashes into a reverse lookup table.
package engine

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/seifreed/NSECGenerator/evt"
	"github.com/seifreed/NSECGenerator/log"
	"github.com/seifreed/NSECGenerator/nsec3"

	"github.com/sirupsen/logrus"
)

const defaultProgressStep = 1000

// Job describes what one run hashes
type Job struct {
	// Key labels the run in events
	Key        string
	Domain     string
	Salt       []byte
	Iterations uint32
}

// Engine computes reverse lookup tables with a fixed number of workers
type Engine struct {
	workers      int
	hashFunc     nsec3.HashFunc
	progressStep int
}

type Option func(e *Engine)

// WithHashFunc replaces the hash function, nsec3.Hash by default
func WithHashFunc(fn nsec3.HashFunc) Option {
	return func(e *Engine) {
		e.hashFunc = fn
	}
}

// WithProgressStep sets after how many hashes a worker reports progress
func WithProgressStep(step int) Option {
	return func(e *Engine) {
		if step > 0 {
			e.progressStep = step
		}
	}
}

// New creates an engine with the given number of workers, all available CPUs if workers <= 0
func New(workers int, options ...Option) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	e := &Engine{
		workers:      workers,
		hashFunc:     nsec3.Hash,
		progressStep: defaultProgressStep,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func logger() *logrus.Entry {
	return log.PrefixedLog("engine")
}

// Workers returns the degree of parallelism
func (e *Engine) Workers() int {
	return e.workers
}

// Run hashes "<candidate>.<domain>" for every candidate and returns the
// resulting table. It blocks until all workers are done. The only error is
// the context's, if it was cancelled before all candidates were hashed.
func (e *Engine) Run(ctx context.Context, candidates []string, job Job) (*Table, error) {
	table := NewTable(len(candidates))
	total := len(candidates)

	workers := e.workers
	if workers > total {
		workers = total
	}

	logger().WithFields(logrus.Fields{
		"key":        job.Key,
		"candidates": total,
		"workers":    workers,
	}).Debug("starting hash run")

	if total == 0 {
		return table, nil
	}

	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)

	chunk := (total + workers - 1) / workers

	for start := 0; start < total; start += chunk {
		end := start + chunk
		if end > total {
			end = total
		}

		wg.Add(1)

		go func(part []string) {
			defer wg.Done()

			e.hashPart(ctx, part, job, table, &done, total)
		}(candidates[start:end])
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return table, err
	}

	evt.Bus().Publish(evt.HashingProgress, job.Key, total, total)

	return table, nil
}

func (e *Engine) hashPart(ctx context.Context, part []string, job Job, table *Table, done *atomic.Int64, total int) {
	pending := 0

	for _, candidate := range part {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fqdn := candidate + "." + job.Domain

		if table.Put(e.hashFunc(fqdn, job.Salt, job.Iterations), fqdn) {
			logger().WithField("key", job.Key).Debugf("hash collision, %s replaced an earlier name", fqdn)
		}

		pending++
		if pending == e.progressStep {
			evt.Bus().Publish(evt.HashingProgress, job.Key, int(done.Add(int64(pending))), total)

			pending = 0
		}
	}

	done.Add(int64(pending))
}
