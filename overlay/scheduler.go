// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

import "time"

// Timer is a pending call created by a Scheduler.
type Timer interface {
	// Stop cancels the call and reports whether it was still pending.
	Stop() bool
}

// Scheduler runs deferred work. AfterFunc must call f on another
// goroutine or later from the host loop, never before returning.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules with time.AfterFunc.
type SystemScheduler struct{}

// AfterFunc calls f in its own goroutine after d.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
