// Copyright 2026 Timely Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package timely

import "time"

// Clock supplies the current time for refresh decisions.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock returns the wall clock.
func RealClock() Clock { return realClock{} }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls fn.
func (fn ClockFunc) Now() time.Time { return fn() }
