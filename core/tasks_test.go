package core

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunTaskRestartsFailingTask(t *testing.T) {
	var runs int32

	go RunTask("failing", time.Millisecond, func() error {
		atomic.AddInt32(&runs, 1)
		return errors.New("init failed")
	})

	// The task keeps retrying at a fixed interval rather than terminating
	deadline := time.After(time.Second)
	for atomic.LoadInt32(&runs) < 3 {
		select {
		case <-deadline:
			t.Fatalf("task restarted %d times, expected at least 3", atomic.LoadInt32(&runs))
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRunTaskRestartsReturningTask(t *testing.T) {
	var runs int32

	// A nil return is also treated as a fault and restarted
	go RunTask("returning", time.Millisecond, func() error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&runs) < 2 {
		select {
		case <-deadline:
			t.Fatalf("task restarted %d times, expected at least 2", atomic.LoadInt32(&runs))
		case <-time.After(time.Millisecond):
		}
	}
}
