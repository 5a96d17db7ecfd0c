package tasks

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunnerExecutesTasks(t *testing.T) {
	r := NewRunner(2, 8)

	var count int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		r.Enqueue("count", func() error {
			defer wg.Done()
			atomic.AddInt32(&count, 1)
			return nil
		})
	}
	wg.Wait()
	r.Close()

	if got := atomic.LoadInt32(&count); got != 5 {
		t.Errorf("executed %d tasks, want 5", got)
	}
}

func TestRunnerFailureDoesNotStopWorkers(t *testing.T) {
	r := NewRunner(1, 8)

	done := make(chan struct{})
	r.Enqueue("fail", func() error { return errors.New("boom") })
	r.Enqueue("after", func() error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task after a failure never ran")
	}
	r.Close()
}

func TestRunnerPanicDoesNotStopWorkers(t *testing.T) {
	r := NewRunner(1, 8)

	done := make(chan struct{})
	r.Enqueue("panic", func() error { panic("boom") })
	r.Enqueue("after", func() error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task after a panic never ran")
	}
	r.Close()
}

func TestEnqueueNeverBlocksWhenQueueFull(t *testing.T) {
	r := NewRunner(1, 1)

	release := make(chan struct{})
	r.Enqueue("block", func() error {
		<-release
		return nil
	})

	// fill the queue, then overflow it; Enqueue must drop, not block
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			r.Enqueue("overflow", func() error { return nil })
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(release)
	r.Close()
}

func TestEnqueueAfterCloseIsDropped(t *testing.T) {
	r := NewRunner(1, 1)
	r.Close()

	// must not panic or block
	r.Enqueue("late", func() error { return nil })
}

func TestCloseDrainsQueuedWork(t *testing.T) {
	r := NewRunner(1, 8)

	var count int32
	for i := 0; i < 4; i++ {
		r.Enqueue("drain", func() error {
			atomic.AddInt32(&count, 1)
			return nil
		})
	}
	r.Close()

	if got := atomic.LoadInt32(&count); got != 4 {
		t.Errorf("drained %d tasks, want 4", got)
	}
}
