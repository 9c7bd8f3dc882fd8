package main

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return ln
}

func runServe(t *testing.T, h http.Handler, ln net.Listener, grace time.Duration) (cancel context.CancelFunc, stopped *atomic.Int32, done <-chan int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	stopped = new(atomic.Int32)
	stop := func() { stopped.Add(1) }

	out := make(chan int, 1)
	srv := &http.Server{Handler: h}
	go func() { out <- serve(ctx, stop, srv, ln, grace, zaptest.NewLogger(t)) }()
	return cancel, stopped, out
}

func waitCode(t *testing.T, done <-chan int) int {
	t.Helper()
	select {
	case code := <-done:
		return code
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not return")
		return -1
	}
}

func TestServe_CleanDrainExitsZero(t *testing.T) {
	ln := listen(t)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	cancel, stopped, done := runServe(t, h, ln, time.Second)

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	if code := waitCode(t, done); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if n := stopped.Load(); n != 1 {
		t.Fatalf("expected stop to be called once, got %d", n)
	}
}

func TestServe_DrainDeadlineExitsOne(t *testing.T) {
	ln := listen(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	})
	cancel, stopped, done := runServe(t, h, ln, 50*time.Millisecond)

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err == nil {
			resp.Body.Close()
		}
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatalf("request never reached the handler")
	}

	cancel()
	if code := waitCode(t, done); code != 1 {
		t.Fatalf("expected exit 1 after the grace period, got %d", code)
	}
	if n := stopped.Load(); n != 1 {
		t.Fatalf("expected stop to be called once, got %d", n)
	}
}

func TestServe_ServeErrorExitsOne(t *testing.T) {
	ln := listen(t)
	_ = ln.Close()

	_, stopped, done := runServe(t, http.NotFoundHandler(), ln, time.Second)
	if code := waitCode(t, done); code != 1 {
		t.Fatalf("expected exit 1 on serve error, got %d", code)
	}
	if n := stopped.Load(); n != 0 {
		t.Fatalf("stop must not be called without a shutdown, got %d", n)
	}
}
