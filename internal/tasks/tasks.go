package tasks

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Runner executes queued side effects (audit writes, invoice generation)
// on a single worker goroutine. Delivery is at-least-once: a failed task
// is retried once after a short delay, then logged and dropped. Enqueue
// never blocks the caller and task failure never propagates back to the
// request that queued it.
type Runner struct {
	ch         chan task
	wg         sync.WaitGroup
	retryDelay time.Duration
	closeOnce  sync.Once
}

type task struct {
	name string
	run  func() error
}

func New(buffer int) *Runner {
	if buffer <= 0 {
		buffer = 256
	}
	r := &Runner{ch: make(chan task, buffer), retryDelay: 100 * time.Millisecond}
	go r.loop()
	return r
}

func (r *Runner) Enqueue(name string, fn func() error) {
	r.wg.Add(1)
	select {
	case r.ch <- task{name: name, run: fn}:
	default:
		// Queue full: run inline rather than lose the effect.
		go func() {
			defer r.wg.Done()
			r.exec(task{name: name, run: fn})
		}()
		return
	}
}

func (r *Runner) loop() {
	for t := range r.ch {
		r.exec(t)
		r.wg.Done()
	}
}

func (r *Runner) exec(t task) {
	err := t.run()
	if err == nil {
		return
	}
	time.Sleep(r.retryDelay)
	if err = t.run(); err == nil {
		return
	}
	b, _ := json.Marshal(map[string]any{
		"ts": time.Now().UTC().Format(time.RFC3339), "level": "error",
		"action": "task.fail", "task": t.name, "err": err.Error(),
	})
	log.Println(string(b))
}

// Drain blocks until every queued task has finished. Used in tests and
// on shutdown.
func (r *Runner) Drain() { r.wg.Wait() }

func (r *Runner) Close() {
	r.Drain()
	r.closeOnce.Do(func() { close(r.ch) })
}
