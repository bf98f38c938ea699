package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMiddleware_PerIP(t *testing.T) {
	l := New(2, time.Hour)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		if got := hit("10.0.0.1:1234"); got != want {
			t.Fatalf("request %d: got %d want %d", i, got, want)
		}
	}
	// different port, same client
	if got := hit("10.0.0.1:9999"); got != http.StatusTooManyRequests {
		t.Fatalf("same ip other port: %d", got)
	}
	if got := hit("10.0.0.2:1234"); got != http.StatusOK {
		t.Fatalf("other ip: %d", got)
	}
}

func TestSweep(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := New(5, time.Minute)
	l.now = func() time.Time { return now }

	l.allow("a")
	now = now.Add(10 * time.Minute)
	l.allow("b")
	l.Sweep(5 * time.Minute)

	if _, ok := l.visitors["a"]; ok {
		t.Fatal("idle visitor kept")
	}
	if _, ok := l.visitors["b"]; !ok {
		t.Fatal("active visitor dropped")
	}
}

func TestAllow_ConcurrentSameClient(t *testing.T) {
	l := New(50, time.Minute)
	var wg sync.WaitGroup
	var allowed atomic.Int64
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if l.allow("10.0.0.1") {
					allowed.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	if n := allowed.Load(); n < 1 || n > 51 {
		t.Fatalf("allowed %d of 1600, want about the burst of 50", n)
	}
}
