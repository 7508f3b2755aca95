package concurrency

import (
	"time"
)

// ThrottledWorker runs a callback once per argument, at most one call per
// interval, so a burst of work doesn't hammer a slow sink.
type ThrottledWorker[T any] struct {
	jobCallback func(arg T) error
	interval    time.Duration
}

func NewThrottledWorker[T any](interval time.Duration, jobCallback func(arg T) error) ThrottledWorker[T] {
	return ThrottledWorker[T]{jobCallback: jobCallback, interval: interval}
}

func (w *ThrottledWorker[T]) Run(jobArgs []T) {

	jobArgsChannel := make(chan T, len(jobArgs))

	for _, arg := range jobArgs {
		jobArgsChannel <- arg
	}
	close(jobArgsChannel)
	limiter := time.NewTicker(w.interval)
	defer limiter.Stop()

	for arg := range jobArgsChannel {
		<-limiter.C
		w.jobCallback(arg)
	}
}
