package cooldown

import (
	"context"
	"sync"
	"time"
)

// Poll calls fn immediately and then every interval until ctx is done or
// the returned stop function is called. stop blocks until the polling
// goroutine has exited and is safe to call more than once.
func Poll(ctx context.Context, interval time.Duration, fn func(now time.Time)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	fn(time.Now())

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				fn(now)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
