// Package lock implementa ports.OrderLocker en proceso y sobre Redis.
package lock

import (
	"context"
	"sync"

	"github.com/jhoicas/Reposicion-api/internal/application/ports"
)

var _ ports.OrderLocker = (*Local)(nil)

// Local lock por orden dentro de un solo proceso. Las entradas se liberan
// cuando nadie las espera.
type Local struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch      chan struct{} // buffer 1: lleno = tomado
	waiters int
}

// NewLocal construye el locker en proceso.
func NewLocal() *Local {
	return &Local{locks: make(map[string]*entry)}
}

// Acquire espera el lock de orderID o la cancelación de ctx.
func (l *Local) Acquire(ctx context.Context, orderID string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[orderID]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[orderID] = e
	}
	e.waiters++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.done(orderID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.done(orderID, e)
		})
	}, nil
}

func (l *Local) done(orderID string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.waiters--
	if e.waiters == 0 {
		delete(l.locks, orderID)
	}
}
