package booking

import (
	"sync"
	"testing"
)

func TestLockTable_SerializesSameKey(t *testing.T) {
	table := NewLockTable()

	const workers = 20
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := table.Acquire("barber:1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter = %d, want %d", counter, workers)
	}
}

func TestLockTable_IndependentKeys(t *testing.T) {
	table := NewLockTable()

	unlock1 := table.Acquire("barber:1")
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := table.Acquire("barber:2")
		unlock2()
		close(done)
	}()

	<-done // must not block while barber:1 is held
}
