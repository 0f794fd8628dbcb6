package pool

import "testing"

type counter struct {
	n int
}

func (c *counter) Reset() { c.n = 0 }

func TestAcquireReleaseRoundTrip(t *testing.T) {
	p := New(2, 4, func() *counter { return &counter{} }, func(c *counter) { c.Reset() })

	if got := p.Len(); got != 2 {
		t.Fatalf("expected initial pool length 2, got %d", got)
	}

	h := p.Acquire()
	h.Value.n = 42
	if got := p.Len(); got != 1 {
		t.Fatalf("expected pool length 1 after acquire, got %d", got)
	}

	h.Release()
	if got := p.Len(); got != 2 {
		t.Fatalf("expected pool length 2 after release, got %d", got)
	}
	if h.Value.n != 0 {
		t.Fatalf("expected released value reset to default, got n=%d", h.Value.n)
	}
}

func TestAcquireBeyondInitialAllocatesFresh(t *testing.T) {
	p := New(0, 1, func() *counter { return &counter{n: -1} }, func(c *counter) { c.Reset() })

	h := p.Acquire()
	if h.Value.n != -1 {
		t.Fatalf("expected freshly allocated value, got %d", h.Value.n)
	}
}

func TestReleaseBeyondMaxSizeIsDropped(t *testing.T) {
	p := New(1, 1, func() *counter { return &counter{} }, func(c *counter) { c.Reset() })

	h1 := p.Acquire()
	h2 := p.Acquire() // pool empty, freshly allocated

	h1.Release() // queue: [h1], len 1 == maxSize
	h2.Release() // queue already at maxSize, h2 dropped

	if got := p.Len(); got != 1 {
		t.Fatalf("expected pool length capped at maxSize=1, got %d", got)
	}
}

func TestConcurrentAcquireRelease(t *testing.T) {
	p := New(10, 20, func() *counter { return &counter{} }, func(c *counter) { c.Reset() })

	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		go func() {
			h := p.Acquire()
			h.Value.n = 1
			h.Release()
			done <- struct{}{}
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}

	if got := p.Len(); got > 20 {
		t.Fatalf("pool length %d exceeds maxSize", got)
	}
}
