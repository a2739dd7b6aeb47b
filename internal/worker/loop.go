package worker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrAlreadyRunning возвращается при повторном Start
var ErrAlreadyRunning = errors.New("worker: already running")

// loop периодический запуск задачи: сразу при старте, затем по тикеру
type loop struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context)
	logger   Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func newLoop(name string, interval time.Duration, logger Logger, run func(ctx context.Context)) *loop {
	return &loop{name: name, interval: interval, run: run, logger: logger}
}

func (l *loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return ErrAlreadyRunning
	}
	l.running = true
	l.stopCh = make(chan struct{})

	l.logger.Info("%s: starting, interval=%s", l.name, l.interval)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		l.run(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-l.stopCh:
				return
			case <-ticker.C:
				l.run(ctx)
			}
		}
	}()

	return nil
}

func (l *loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	l.mu.Unlock()

	l.wg.Wait()
	l.logger.Info("%s: stopped", l.name)
}
