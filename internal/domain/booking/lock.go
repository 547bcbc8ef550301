package booking

import "sync"

// LockTable serializes check-then-reserve sequences by key (one key per
// barber, one per order reference). The database transaction is the real
// guarantee; this keeps concurrent requests for the same barber from ever
// racing past the overlap check inside one process.
type LockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockTable() *LockTable {
	return &LockTable{locks: make(map[string]*sync.Mutex)}
}

// Acquire blocks until the key's lock is held and returns the unlock func.
func (t *LockTable) Acquire(key string) func() {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
