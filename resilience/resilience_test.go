package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestBulkheadFastPath(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 2})
	ctx := context.Background()

	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire() = %v", err)
	}
	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire() = %v", err)
	}
	if err := b.Acquire(ctx); !errors.Is(err, ErrBulkheadFull) {
		t.Fatalf("third Acquire() = %v, want %v", err, ErrBulkheadFull)
	}
	if got := b.Rejected(); got != 1 {
		t.Errorf("Rejected() = %d, want 1", got)
	}

	b.Release()
	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() after Release() = %v", err)
	}
}

func TestBulkheadMaxWait(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1, MaxWait: time.Second})
	ctx := context.Background()

	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() = %v", err)
	}

	// Release the slot while the second acquire is waiting.
	go func() {
		time.Sleep(20 * time.Millisecond)
		b.Release()
	}()

	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("waiting Acquire() = %v, want nil", err)
	}
}

func TestBulkheadWaitTimesOut(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1, MaxWait: 20 * time.Millisecond})
	ctx := context.Background()

	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() = %v", err)
	}
	if err := b.Acquire(ctx); !errors.Is(err, ErrBulkheadFull) {
		t.Fatalf("Acquire() = %v, want %v", err, ErrBulkheadFull)
	}
}

func TestBulkheadExecute(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 4})

	var mu sync.Mutex
	active, peak := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.Execute(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > peak {
					peak = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if peak > 4 {
		t.Errorf("peak concurrency = %d, want <= 4", peak)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 2})

	if !rl.Allow() {
		t.Fatal("first Allow() = false, want true")
	}
	if !rl.Allow() {
		t.Fatal("second Allow() = false, want true")
	}
	if rl.Allow() {
		t.Fatal("third Allow() = true, want false after burst drained")
	}
}

func TestRateLimiterExecute(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1})

	ran := false
	err := rl.Execute(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil || !ran {
		t.Fatalf("first Execute() = %v, ran = %v", err, ran)
	}

	err = rl.Execute(context.Background(), func(ctx context.Context) error {
		t.Fatal("op ran despite empty bucket")
		return nil
	})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("second Execute() = %v, want %v", err, ErrRateLimited)
	}
}

func TestTimeoutCompletes(t *testing.T) {
	to := NewTimeout(time.Second)
	err := to.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() = %v, want nil", err)
	}
}

func TestTimeoutExpires(t *testing.T) {
	to := NewTimeout(20 * time.Millisecond)
	err := to.Execute(context.Background(), func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Execute() = %v, want %v", err, ErrTimeout)
	}
}

func TestTimeoutPropagatesOpError(t *testing.T) {
	boom := errors.New("boom")
	err := ExecuteWithTimeout(context.Background(), time.Second, func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Execute() = %v, want %v", err, boom)
	}
}

func TestTimeoutCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExecuteWithTimeout(ctx, time.Second, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() = %v, want context.Canceled", err)
	}
}
