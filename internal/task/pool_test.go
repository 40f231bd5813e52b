package task

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPoolStartStop(t *testing.T) {
	p := NewPool()

	if err := p.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !p.IsRunning() {
		t.Error("pool should report running after Start")
	}
	if err := p.Start(); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start = %v, want ErrRunning", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if p.IsRunning() {
		t.Error("pool should report stopped after Stop")
	}
	if err := p.Stop(ctx); !errors.Is(err, ErrStopped) {
		t.Errorf("second Stop = %v, want ErrStopped", err)
	}
}

func TestSpawnBeforeStart(t *testing.T) {
	p := NewPool()
	if _, err := p.Spawn(func() any { return nil }); !errors.Is(err, ErrStopped) {
		t.Errorf("Spawn before Start = %v, want ErrStopped", err)
	}
}

func TestSpawnDeliversTaggedResult(t *testing.T) {
	p := NewPool(WithWorkers(1))
	p.Start()
	defer p.Stop(context.Background())

	id, err := p.Spawn(func() any { return "parsed" })
	if err != nil {
		t.Fatalf("Spawn() failed: %v", err)
	}

	select {
	case res := <-p.Results():
		if res.ID != id {
			t.Errorf("result ID = %d, want %d", res.ID, id)
		}
		if res.Value != "parsed" {
			t.Errorf("result value = %v, want %q", res.Value, "parsed")
		}
	case <-time.After(time.Second):
		t.Fatal("no result within timeout")
	}
}

func TestSpawnIDsIncrease(t *testing.T) {
	p := NewPool(WithWorkers(2), WithQueueSize(32))
	p.Start()
	defer p.Stop(context.Background())

	var prev ID
	for i := 0; i < 16; i++ {
		id, err := p.Spawn(func() any { return nil })
		if err != nil {
			t.Fatalf("Spawn %d failed: %v", i, err)
		}
		if id <= prev {
			t.Fatalf("ID %d not greater than previous %d", id, prev)
		}
		prev = id
	}

	for i := 0; i < 16; i++ {
		select {
		case <-p.Results():
		case <-time.After(time.Second):
			t.Fatalf("only %d of 16 results arrived", i)
		}
	}
}

func TestSpawnQueueFull(t *testing.T) {
	p := NewPool(WithWorkers(1), WithQueueSize(1))
	p.Start()

	block := make(chan struct{})
	started := make(chan struct{})
	p.Spawn(func() any {
		close(started)
		<-block
		return nil
	})

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("worker did not pick up the blocking job")
	}

	// The worker is busy, so this one sits in the queue.
	if _, err := p.Spawn(func() any { return nil }); err != nil {
		t.Fatalf("Spawn into empty queue failed: %v", err)
	}
	if _, err := p.Spawn(func() any { return nil }); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Spawn into full queue = %v, want ErrQueueFull", err)
	}
	if p.Stats().Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", p.Stats().Dropped)
	}

	close(block)
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
}

func TestPanickedClosureStillDelivers(t *testing.T) {
	p := NewPool(WithWorkers(1))
	p.Start()
	defer p.Stop(context.Background())

	id, err := p.Spawn(func() any { panic("grammar blew up") })
	if err != nil {
		t.Fatalf("Spawn() failed: %v", err)
	}

	select {
	case res := <-p.Results():
		if res.ID != id || res.Value != nil {
			t.Errorf("panic result = %+v, want ID %d with nil value", res, id)
		}
	case <-time.After(time.Second):
		t.Fatal("panicking closure produced no result")
	}
	if got := p.Stats().Panicked; got != 1 {
		t.Errorf("Panicked = %d, want 1", got)
	}

	// The worker survives and keeps serving.
	id2, err := p.Spawn(func() any { return 7 })
	if err != nil {
		t.Fatalf("Spawn after panic failed: %v", err)
	}
	select {
	case res := <-p.Results():
		if res.ID != id2 || res.Value != 7 {
			t.Errorf("post-panic result = %+v, want ID %d value 7", res, id2)
		}
	case <-time.After(time.Second):
		t.Fatal("no result after panic recovery")
	}
}

func TestStopDrainsQueuedJobs(t *testing.T) {
	p := NewPool(WithWorkers(1), WithQueueSize(8))
	p.Start()

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := p.Spawn(func() any { return nil }); err != nil {
			t.Fatalf("Spawn %d failed: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}

	// Results stays drainable after Stop and closes once empty.
	got := 0
	for range p.Results() {
		got++
	}
	if got != n {
		t.Errorf("drained %d results after Stop, want %d", got, n)
	}
	if s := p.Stats(); s.Completed != n || s.Spawned != n {
		t.Errorf("stats after Stop = %+v, want %d spawned and completed", s, n)
	}
}
