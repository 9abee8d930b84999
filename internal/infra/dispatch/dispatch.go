package dispatch

import (
	"fmt"
	"sync"
	"time"

	"hrbot-connector/internal/infra/logger"
	"hrbot-connector/internal/infra/provider"
)

// SendOp is one outbound send operation. It is executed by the recipient's
// worker, never concurrently with another operation for the same recipient.
type SendOp func() error

// Pending is the handle returned by Enqueue. Wait blocks until the operation
// ran and returns its outcome.
type Pending struct {
	done chan struct{}
	err  error
}

func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

type job struct {
	op      SendOp
	pending *Pending
}

type worker struct {
	mu         sync.Mutex
	cond       *sync.Cond
	jobs       []job
	lastSentAt time.Time
}

func newWorker() *worker {
	w := &worker{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Queue serializes outbound sends per recipient and enforces a minimum gap
// between consecutive sends to the same recipient. The WhatsApp Cloud API
// applies a pairwise rate limit (code 131056); the gap keeps the bot under it.
//
// A failed operation is reported through its Pending handle and logged, but
// never blocks later operations queued for the same recipient.
type Queue struct {
	log    *logger.Logger
	minGap time.Duration

	mu      sync.Mutex
	workers map[string]*worker
}

func NewQueue(log *logger.Logger, minGap time.Duration) *Queue {
	return &Queue{
		log:     log,
		minGap:  minGap,
		workers: make(map[string]*worker),
	}
}

// Enqueue appends op to the recipient's serialized chain. Operations for the
// same recipient execute strictly in submission order.
func (q *Queue) Enqueue(to string, op SendOp) *Pending {
	q.mu.Lock()
	w, ok := q.workers[to]
	if !ok {
		w = newWorker()
		q.workers[to] = w
		go q.run(to, w)
	}
	q.mu.Unlock()

	p := &Pending{done: make(chan struct{})}

	w.mu.Lock()
	w.jobs = append(w.jobs, job{op: op, pending: p})
	w.mu.Unlock()
	w.cond.Signal()

	return p
}

// run drains one recipient's jobs for the process lifetime.
func (q *Queue) run(to string, w *worker) {
	for {
		w.mu.Lock()
		for len(w.jobs) == 0 {
			w.cond.Wait()
		}
		j := w.jobs[0]
		w.jobs = w.jobs[1:]
		last := w.lastSentAt
		w.mu.Unlock()

		if !last.IsZero() {
			if gap := time.Since(last); gap < q.minGap {
				time.Sleep(q.minGap - gap)
			}
		}

		err := j.op()

		w.mu.Lock()
		w.lastSentAt = time.Now()
		w.mu.Unlock()

		if err != nil {
			if provider.IsPairRateLimit(err) {
				q.log.Warn(fmt.Sprintf("Pair rate limit (#%d) hit sending to %s, message dropped after retries", provider.PairRateLimitCode, to))
			} else {
				q.log.Error(fmt.Sprintf("Failed to send to %s: %v", to, err))
			}
		}

		j.pending.err = err
		close(j.pending.done)
	}
}
