package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// MinBandRows is the smallest row band handed to a worker. Shorter row
// ranges run on the calling goroutine.
const MinBandRows = 16

// WorkerPool runs kernel row bands on a fixed set of goroutines.
//
// Each worker owns a queue and steals from the others when its own queue is
// empty, which keeps workers busy when some bands cost more than others
// (edge rows of a clamped convolution, for example).
//
// WorkerPool is safe for concurrent use. A nil *WorkerPool runs all work
// inline.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool

	// submit is held shared while queueing and exclusively by Close, so no
	// item lands in a queue after the workers have drained it.
	submit sync.RWMutex
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across the workers and waits for all of it.
// On a closed pool the items run on the calling goroutine, so every item
// runs exactly once.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if p != nil {
		p.submit.RLock()
	}
	if p == nil || !p.running.Load() {
		if p != nil {
			p.submit.RUnlock()
		}
		for _, fn := range work {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		p.workQueues[i%p.workers] <- func() {
			defer wg.Done()
			fn()
		}
	}
	p.submit.RUnlock()
	wg.Wait()
}

// Rows splits [y0, y1) into contiguous bands and calls fn once per band.
// Bands never overlap, so fn may write its rows without locking. Ranges
// shorter than two bands run inline.
func (p *WorkerPool) Rows(y0, y1 int, fn func(y0, y1 int)) {
	n := y1 - y0
	if n <= 0 {
		return
	}
	if p == nil || p.workers == 1 || n < 2*MinBandRows || !p.running.Load() {
		fn(y0, y1)
		return
	}

	bands := min(p.workers, n/MinBandRows)
	step := (n + bands - 1) / bands
	work := make([]func(), 0, bands)
	for start := y0; start < y1; start += step {
		end := min(start+step, y1)
		work = append(work, func() { fn(start, end) })
	}
	p.ExecuteAll(work)
}

// Close stops the workers after the queued work has run. Close is safe to
// call more than once.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	p.submit.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submit.Unlock()
		return
	}
	close(p.done)
	p.submit.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// IsRunning reports whether the pool still dispatches work to its workers.
func (p *WorkerPool) IsRunning() bool {
	return p != nil && p.running.Load()
}
