package inventory

import (
	"context"
	"sync"
)

// scope is the lifetime of a mounted view. Calls made through it are
// cancelled when the view unmounts, and their results are discarded.
type scope struct {
	mu     sync.Mutex
	life   context.Context
	cancel context.CancelFunc
}

// open starts a new lifetime unless one is already running.
func (s *scope) open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.life != nil && s.life.Err() == nil {
		return
	}
	s.life, s.cancel = context.WithCancel(context.Background())
}

func (s *scope) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// bind derives a request context from ctx that is also cancelled when the
// current lifetime ends. The returned life reports whether the view is
// still mounted once the call returns.
func (s *scope) bind(ctx context.Context) (context.Context, context.Context, context.CancelFunc) {
	s.open()
	s.mu.Lock()
	life := s.life
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(life, cancel)
	return ctx, life, func() {
		stop()
		cancel()
	}
}
