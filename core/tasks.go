package core

import "time"

// TaskFunc is a long-running task body. A task is expected to run forever;
// returning is treated as a fault and triggers an in-place restart.
type TaskFunc func() error

// RunTask supervises a run-forever task. When the task returns with an error
// the failure is logged and the task body is re-run after restartDelay. The
// same applies to a nil return, which should never happen for a well-formed
// task. RunTask never returns; it is the body of one goroutine in the fixed
// task set started from main.
func RunTask(name string, restartDelay time.Duration, fn TaskFunc) {
	for {
		err := fn()
		if err != nil {
			DebugPrintln("[" + name + "] error: " + err.Error() +
				", restarting in " + Itoa(int(restartDelay/time.Second)) + "s")
		} else {
			DebugPrintln("[" + name + "] unexpectedly returned, restarting")
		}
		time.Sleep(restartDelay)
	}
}

// StartTask launches fn under RunTask supervision in its own goroutine.
// The task set is fixed: all StartTask calls happen during startup, before
// any task depends on another task's services.
func StartTask(name string, restartDelay time.Duration, fn TaskFunc) {
	go RunTask(name, restartDelay, fn)
}
