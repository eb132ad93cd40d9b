package syncs

import "context"

// Semaphore bounds the number of holders. NewSemaphore(1) is a mutex that
// can be abandoned when ctx is done.
type Semaphore chan struct{}

func NewSemaphore(n int) Semaphore {
	return make(chan struct{}, n)
}

// Acquire prefers a free slot over a done ctx.
func (s Semaphore) Acquire(ctx context.Context) error {
	select {
	case s <- struct{}{}:
		return nil
	default:
	}
	select {
	case s <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s Semaphore) Release() {
	<-s
}

// Do runs fn while holding the semaphore.
func (s Semaphore) Do(ctx context.Context, fn func()) error {
	if err := s.Acquire(ctx); err != nil {
		return err
	}
	defer s.Release()
	fn()
	return nil
}
