package app

import "sync"

// trainLocks hands out one mutex per train so that reservations against the
// same train serialize in-process while different trains never contend.
// The table is owned by the ReservationService that created it; mutexes are
// kept for the life of the service.
type trainLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTrainLocks() *trainLocks {
	return &trainLocks{locks: make(map[string]*sync.Mutex)}
}

func (t *trainLocks) forTrain(trainID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[trainID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[trainID] = l
	}
	return l
}
