package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestIntervalSpacing(t *testing.T) {
	// 20 grants/sec: 10 sequential acquires should take at least 9 intervals.
	lim := NewInterval(20)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := lim.Acquire(ctx); err != nil {
			t.Fatalf("acquire %d failed: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 405*time.Millisecond {
		t.Errorf("10 acquires at 20/s finished in %v, expected at least ~450ms", elapsed)
	}
}

func TestIntervalSerializesConcurrentCallers(t *testing.T) {
	lim := NewInterval(50) // 20ms interval
	ctx := context.Background()

	var mu sync.Mutex
	var grants []time.Time
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := lim.Acquire(ctx); err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			mu.Lock()
			grants = append(grants, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(grants) != 5 {
		t.Fatalf("expected 5 grants, got %d", len(grants))
	}

	// Sort by time and check spacing; scheduling noise gets a 25% allowance.
	for i := 0; i < len(grants); i++ {
		for j := i + 1; j < len(grants); j++ {
			if grants[j].Before(grants[i]) {
				grants[i], grants[j] = grants[j], grants[i]
			}
		}
	}
	for i := 1; i < len(grants); i++ {
		if gap := grants[i].Sub(grants[i-1]); gap < 15*time.Millisecond {
			t.Errorf("grants %d and %d only %v apart, expected ~20ms", i-1, i, gap)
		}
	}
}

func TestIntervalContextCancellation(t *testing.T) {
	lim := NewInterval(1) // 1s interval
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// First grant is immediate, second must block past the deadline.
	if err := lim.Acquire(ctx); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	if err := lim.Acquire(ctx); err == nil {
		t.Error("expected second acquire to fail on cancelled context")
	}
}

func TestNop(t *testing.T) {
	lim := Nop{}

	start := time.Now()
	for i := 0; i < 1000; i++ {
		if err := lim.Acquire(context.Background()); err != nil {
			t.Fatalf("nop acquire failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("nop limiter blocked for %v", elapsed)
	}
}

func TestFromRate(t *testing.T) {
	if _, ok := FromRate(0).(Nop); !ok {
		t.Error("expected Nop for rate 0")
	}
	if _, ok := FromRate(-1).(Nop); !ok {
		t.Error("expected Nop for negative rate")
	}
	if _, ok := FromRate(2).(*Interval); !ok {
		t.Error("expected Interval for rate 2")
	}
}
