package spinner

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer for use from the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerStartStop(t *testing.T) {
	var buf syncBuffer
	s := New(context.Background(), &buf, "working...")

	if s.IsActive() {
		t.Error("IsActive() = true before Start()")
	}

	s.Start()
	if !s.IsActive() {
		t.Error("IsActive() = false after Start()")
	}

	// let at least one frame render
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	if s.IsActive() {
		t.Error("IsActive() = true after Stop()")
	}
	if !strings.Contains(buf.String(), "working...") {
		t.Errorf("spinner output %q missing message", buf.String())
	}
}

func TestSpinnerDoubleStartIsNoop(t *testing.T) {
	var buf syncBuffer
	s := New(context.Background(), &buf, "msg")

	s.Start()
	s.Start() // must not panic or leak a second goroutine
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var buf syncBuffer
	s := New(context.Background(), &buf, "msg")
	s.Stop() // no-op
}

func TestSpinnerContextCancellation(t *testing.T) {
	var buf syncBuffer
	ctx, cancel := context.WithCancel(context.Background())

	s := New(ctx, &buf, "msg")
	s.Start()
	cancel()

	// the run goroutine exits on cancellation; Stop must not hang
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() hung after context cancellation")
	}
}
