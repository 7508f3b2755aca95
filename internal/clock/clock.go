package clock

import "time"

// Clock is the time source the pod runs against.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Func adapts a plain function to a Clock, handy in tests.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
