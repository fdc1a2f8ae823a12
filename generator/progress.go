package generator

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/seifreed/NSECGenerator/evt"
	"github.com/seifreed/NSECGenerator/log"
)

const progressSteps = 10

// nolint:gochecknoglobals
var registerProgressOnce sync.Once

// RegisterProgressLogger logs the hashing progress of every run in 10% steps
func RegisterProgressLogger() {
	registerProgressOnce.Do(func() {
		p := newProgressLogger(log.PrefixedLog(loggerPrefix))

		_ = evt.Bus().Subscribe(evt.HashingStarted, p.onStarted)
		_ = evt.Bus().Subscribe(evt.HashingProgress, p.onProgress)
	})
}

type progressLogger struct {
	logger *logrus.Entry

	mu   sync.Mutex
	last map[string]int
}

func newProgressLogger(logger *logrus.Entry) *progressLogger {
	return &progressLogger{logger: logger, last: map[string]int{}}
}

func (p *progressLogger) onStarted(key string, _ int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.last[key] = 0
}

// onProgress is called concurrently by the engine's workers
func (p *progressLogger) onProgress(key string, done, total int) {
	if total <= 0 {
		return
	}

	step := done * progressSteps / total

	p.mu.Lock()
	defer p.mu.Unlock()

	if step <= p.last[key] {
		return
	}

	p.last[key] = step

	p.logger.WithField("key", key).Infof("%d%% (%d/%d)", step*100/progressSteps, done, total)
}
