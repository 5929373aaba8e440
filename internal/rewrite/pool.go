package rewrite

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const instruction = "Rewrite the following sentence so it reads naturally, " +
	"keeping every fact, page number and title exactly as given. " +
	"Reply with the rewritten sentence only.\n\n%s"

type task struct {
	prompt string
	out    chan result
}

type result struct {
	text string
	err  error
}

// Pool runs rewrite calls on a small fixed set of workers so a slow or
// hanging rewrite process cannot monopolize request-handling capacity,
// and enforces a single timeout for submission plus execution.
type Pool struct {
	runner  Runner
	tasks   chan task
	timeout time.Duration
	log     *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPool creates a pool with the given worker count and per-call
// timeout. Workers is clamped to at least 1.
func NewPool(runner Runner, workers int, timeout time.Duration, log *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	p := &Pool{
		runner:  runner,
		tasks:   make(chan task),
		timeout: timeout,
		log:     log,
	}
	p.start(workers)
	return p
}

func (p *Pool) start(workers int) {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t := <-p.tasks:
					callCtx, callCancel := context.WithTimeout(ctx, p.timeout)
					text, err := p.runner.Rewrite(callCtx, t.prompt)
					callCancel()
					t.out <- result{text: text, err: err}
				}
			}
		}()
	}
}

// Stop shuts the workers down. In-flight calls are cancelled.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}

// Polish rewrites raw through the external process and returns the
// result, or raw unchanged on any failure: pool saturation, process
// error, empty completion or timeout. It never returns an error.
func (p *Pool) Polish(ctx context.Context, raw string) string {
	t := task{
		prompt: fmt.Sprintf(instruction, raw),
		out:    make(chan result, 1),
	}

	deadline := time.NewTimer(p.timeout)
	defer deadline.Stop()

	select {
	case p.tasks <- t:
	case <-deadline.C:
		p.log.Warn("rewrite pool saturated, returning raw answer")
		return raw
	case <-ctx.Done():
		return raw
	}

	select {
	case r := <-t.out:
		if r.err != nil {
			p.log.Warn("rewrite failed, returning raw answer", "error", r.err)
			return raw
		}
		return r.text
	case <-deadline.C:
		p.log.Warn("rewrite timed out, returning raw answer")
		return raw
	case <-ctx.Done():
		return raw
	}
}
