package parallel

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if want := runtime.GOMAXPROCS(0); pool.Workers() != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, pool.Workers(), want)
		}
		pool.Close()
	}
}

func TestWorkerPool_Nil(t *testing.T) {
	var pool *WorkerPool

	var ran int
	pool.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("nil pool ran %d items, want 2", ran)
	}
	if pool.Workers() != 1 || pool.IsRunning() {
		t.Error("nil pool reports workers")
	}
	pool.Close()
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAllAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var counter atomic.Int64
	pool.ExecuteAll([]func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	})
	if counter.Load() != 2 {
		t.Errorf("closed pool ran %d items, want 2", counter.Load())
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const goroutines, perGoroutine = 10, 50
	var counter atomic.Int64
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), perGoroutine)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if want := int64(goroutines * perGoroutine); counter.Load() != want {
		t.Errorf("counter = %d, want %d", counter.Load(), want)
	}
}

func TestWorkerPool_CloseDuringExecute(t *testing.T) {
	pool := NewWorkerPool(2)

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 200)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	pool.Close()
	wg.Wait()

	if counter.Load() != 800 {
		t.Errorf("counter = %d, want 800", counter.Load())
	}
}

// =============================================================================
// Rows Tests
// =============================================================================

func TestWorkerPool_Rows(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	tests := []struct {
		name      string
		y0, y1    int
		wantBands int
	}{
		{"empty", 5, 5, 0},
		{"inverted", 9, 3, 0},
		{"short runs inline", 0, 2*MinBandRows - 1, 1},
		{"two bands", 0, 2 * MinBandRows, 2},
		{"one per worker", 10, 10 + 100*MinBandRows, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mu sync.Mutex
			var bands [][2]int
			pool.Rows(tt.y0, tt.y1, func(y0, y1 int) {
				mu.Lock()
				bands = append(bands, [2]int{y0, y1})
				mu.Unlock()
			})

			if len(bands) != tt.wantBands {
				t.Fatalf("bands = %v, want %d bands", bands, tt.wantBands)
			}
			if len(bands) == 0 {
				return
			}
			slices.SortFunc(bands, func(a, b [2]int) int { return a[0] - b[0] })
			next := tt.y0
			for _, b := range bands {
				if b[0] != next || b[1] <= b[0] {
					t.Fatalf("bands %v do not tile [%d, %d)", bands, tt.y0, tt.y1)
				}
				next = b[1]
			}
			if next != tt.y1 {
				t.Errorf("bands end at %d, want %d", next, tt.y1)
			}
		})
	}
}

func TestWorkerPool_RowsSingleWorker(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	calls := 0
	pool.Rows(0, 1000, func(y0, y1 int) {
		calls++
		if y0 != 0 || y1 != 1000 {
			t.Errorf("band = [%d, %d), want [0, 1000)", y0, y1)
		}
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWorkerPool_RowsWritesEveryRow(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	rows := make([]int32, 1000)
	pool.Rows(0, len(rows), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rows[y]++
		}
	})
	for y, v := range rows {
		if v != 1 {
			t.Fatalf("row %d written %d times", y, v)
		}
	}
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		pool.Rows(0, 256, func(int, int) {})
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_Rows(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	buf := make([]float32, 1024*1024)
	b.ResetTimer()
	for b.Loop() {
		pool.Rows(0, 1024, func(y0, y1 int) {
			for i := y0 * 1024; i < y1*1024; i++ {
				buf[i] = buf[i]*0.5 + 1
			}
		})
	}
}
