package workflow

import (
	"context"
	"hash/fnv"
	"sync"
)

// Locker serializes the load-modify-save cycles of a session for stores that
// do not lock sessions themselves
type Locker interface {
	Lock(ctx context.Context, id string) (unlock func(), err error)
}

const lockStripes = 64

// stripedLocker locks sessions within this process only
type stripedLocker struct {
	locks [lockStripes]sync.Mutex
}

func (l *stripedLocker) Lock(_ context.Context, id string) (func(), error) {
	h := fnv.New32a()
	h.Write([]byte(id))
	m := &l.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock, nil
}
