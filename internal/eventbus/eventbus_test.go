// ABOUTME: Tests for the typed event bus
// ABOUTME: Covers ordered delivery, unsubscribe, self-unsubscribe, and concurrent access

package eventbus

import (
	"slices"
	"sync"
	"testing"
)

func TestBus_PublishSubscribe(t *testing.T) {
	t.Parallel()

	bus := New[string]()
	var received string

	bus.Subscribe(func(s string) {
		received = s
	})

	bus.Publish("hello")

	if received != "hello" {
		t.Errorf("received = %q, want %q", received, "hello")
	}
}

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	var order []int
	for i := range 5 {
		bus.Subscribe(func(int) { order = append(order, i) })
	}

	bus.Publish(0)

	if !slices.Equal(order, []int{0, 1, 2, 3, 4}) {
		t.Errorf("order = %v", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	t.Parallel()

	bus := New[string]()
	called := false

	unsub := bus.Subscribe(func(_ string) {
		called = true
	})

	unsub()
	unsub()
	bus.Publish("test")

	if called {
		t.Error("handler should not be called after unsubscribe")
	}
	if bus.Count() != 0 {
		t.Errorf("Count() = %d, want 0", bus.Count())
	}
}

func TestBus_UnsubscribeDuringPublish(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	calls := 0
	var unsub func()
	unsub = bus.Subscribe(func(int) {
		calls++
		unsub()
	})

	bus.Publish(1)
	bus.Publish(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBus_Count(t *testing.T) {
	t.Parallel()

	bus := New[int]()

	unsub1 := bus.Subscribe(func(_ int) {})
	bus.Subscribe(func(_ int) {})

	if bus.Count() != 2 {
		t.Errorf("Count() = %d, want 2", bus.Count())
	}

	unsub1()
	if bus.Count() != 1 {
		t.Errorf("Count() = %d, want 1", bus.Count())
	}
}

func TestBus_ConcurrentSubscribe(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	var wg sync.WaitGroup
	var mu sync.Mutex
	sum := 0

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Subscribe(func(n int) {
				mu.Lock()
				sum += n
				mu.Unlock()
			})
		}()
	}
	wg.Wait()
	bus.Publish(2)

	if sum != 16 {
		t.Errorf("sum = %d, want 16", sum)
	}
}
