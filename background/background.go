package background

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Background runs fire-and-forget tasks and lets the caller wait for
// them on shutdown.
type Background struct {
	log  logrus.FieldLogger
	wg   sync.WaitGroup
	done chan struct{}
	once sync.Once
}

func New(log logrus.FieldLogger) *Background {
	return &Background{
		log:  log,
		done: make(chan struct{}),
	}
}

func (b *Background) Go(task func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.log.WithField("panic", r).Error("background task panicked")
			}
		}()
		task()
	}()
}

// After runs task once delay has elapsed. The task is dropped if the
// group shuts down first.
func (b *Background) After(delay time.Duration, task func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		t := time.NewTimer(delay)
		defer t.Stop()

		select {
		case <-t.C:
		case <-b.done:
			return
		}

		defer func() {
			if r := recover(); r != nil {
				b.log.WithField("panic", r).Error("background task panicked")
			}
		}()
		task()
	}()
}

func (b *Background) Shutdown(ctx context.Context) error {
	b.once.Do(func() { close(b.done) })

	stopped := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
