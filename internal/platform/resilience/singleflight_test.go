package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32

	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _, _ = g.Do("k", func() (any, error) {
			executions.Add(1)
			close(started)
			<-release
			return "value", nil
		})
	}()
	<-started

	const waiters = 8
	var wg sync.WaitGroup
	shared := make([]bool, waiters)
	values := make([]any, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err, wasShared := g.Do("k", func() (any, error) {
				executions.Add(1)
				return "value", nil
			})
			if err != nil {
				t.Errorf("waiter %d: unexpected error %v", i, err)
			}
			values[i] = v
			shared[i] = wasShared
		}(i)
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("fn executed %d times, want 1", got)
	}
	for i := 0; i < waiters; i++ {
		if values[i] != "value" {
			t.Fatalf("waiter %d got %v, want value", i, values[i])
		}
		if !shared[i] {
			t.Fatalf("waiter %d did not share the in-flight result", i)
		}
	}
}

func TestSingleFlightPropagatesError(t *testing.T) {
	var g SingleFlight
	wantErr := errors.New("upstream down")

	_, err, shared := g.Do("k", func() (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if shared {
		t.Fatal("sole caller should not be marked shared")
	}
}

func TestSingleFlightKeysAreIndependent(t *testing.T) {
	var g SingleFlight
	a, _, _ := g.Do("a", func() (any, error) { return 1, nil })
	b, _, _ := g.Do("b", func() (any, error) { return 2, nil })
	if a == b {
		t.Fatalf("distinct keys returned the same value: %v", a)
	}
}
