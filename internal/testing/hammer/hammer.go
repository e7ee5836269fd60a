// Package hammer runs a test body from many goroutines at once, to surface
// races in code shared process-wide.
package hammer

import (
	"runtime"
	"sync"
	"testing"
)

// Run calls test N times in each of P goroutines. The goroutines are all
// started before any is released, so the calls overlap as much as possible.
//
//	P, N := 8, 1000
//	if testing.Short() {
//		P, N = 4, 100
//	}
//	hammer.Run(t, P, N, func(p, n int) {
//		// p is the goroutine, n the iteration within it.
//	})
//	if t.Failed() {
//		return
//	}
//
// A panic in test, such as a failed require assertion, is reported with
// t.Error and ends that goroutine only.
func Run(t *testing.T, P, N int, test func(p, n int)) {
	t.Helper()
	// Fewer threads than goroutines forces switching.
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(max(P/2, 1)))

	var ready, done sync.WaitGroup
	start := make(chan struct{})

	ready.Add(P)
	done.Add(P)
	for p := 0; p < P; p++ {
		go func() {
			defer done.Done()
			defer func() {
				if recovered := recover(); recovered != nil {
					t.Error(recovered)
				}
			}()
			ready.Done()
			<-start
			for n := 0; n < N; n++ {
				test(p, n)
			}
		}()
	}

	ready.Wait()
	close(start)
	done.Wait()
}
