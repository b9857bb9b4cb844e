package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

// TestWaitIfNeeded_UnderLimitDoesNotBlock は上限未満の呼び出しが待機しないことを検証します。
func TestWaitIfNeeded_UnderLimitDoesNotBlock(t *testing.T) {
	rl := NewRateLimiter(10, time.Minute)

	start := time.Now()
	for i := 0; i < 10; i++ {
		rl.WaitIfNeeded()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("expected no blocking under the limit, took %v", elapsed)
	}
}

// TestWaitIfNeeded_OverLimitWaitsForWindow は上限超過時にウィンドウのリセットまで待機することを検証します。
func TestWaitIfNeeded_OverLimitWaitsForWindow(t *testing.T) {
	interval := 50 * time.Millisecond
	rl := NewRateLimiter(2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	start := time.Now()
	rl.WaitIfNeeded() // 3回目は次のウィンドウまで待つ
	if elapsed := time.Since(start); elapsed < interval/2 {
		t.Errorf("expected third call to wait for the window, took %v", elapsed)
	}
}

// TestWaitIfNeeded_ConcurrentCallers は複数ゴルーチンからの同時呼び出しで
// 内部状態が破壊されないことを検証します（-race付きで実行されることを想定）。
func TestWaitIfNeeded_ConcurrentCallers(t *testing.T) {
	const (
		goroutines = 8
		callsEach  = 25
	)
	// 上限を総呼び出し数より大きくして待機を発生させない
	rl := NewRateLimiter(goroutines*callsEach+1, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				rl.WaitIfNeeded()
			}
		}()
	}
	wg.Wait()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.count != goroutines*callsEach {
		t.Errorf("count = %d, want %d", rl.count, goroutines*callsEach)
	}
}
