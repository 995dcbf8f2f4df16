package progress

import "sync"

// Async delivers events to fn on its own goroutine through an unbounded
// queue, so Publish never waits on a slow consumer. Close drains the queue
// and waits for delivery to finish.
type Async struct {
	fn     func(Event)
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Event
	closed bool
	done   chan struct{}
}

func NewAsync(fn func(Event)) *Async {
	a := &Async{fn: fn, done: make(chan struct{})}
	a.cond = sync.NewCond(&a.mu)
	go a.pump()
	return a
}

// Publish enqueues e. Events published after Close are dropped.
func (a *Async) Publish(e Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.queue = append(a.queue, e)
	a.cond.Signal()
}

// Close stops accepting events and blocks until queued ones are delivered.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		a.cond.Signal()
	}
	a.mu.Unlock()
	<-a.done
}

func (a *Async) pump() {
	defer close(a.done)
	for {
		a.mu.Lock()
		for len(a.queue) == 0 && !a.closed {
			a.cond.Wait()
		}
		if len(a.queue) == 0 && a.closed {
			a.mu.Unlock()
			return
		}
		batch := a.queue
		a.queue = nil
		a.mu.Unlock()
		for _, e := range batch {
			a.fn(e)
		}
	}
}

// NonBlocking returns s behind an Async queue unless it already is one. The
// returned func drains the queue and must be called once the producer is done.
func NonBlocking(s Sink) (Sink, func()) {
	switch v := s.(type) {
	case nil:
		return Discard, func() {}
	case *Async:
		return v, func() {}
	}
	a := NewAsync(s.Publish)
	return a, a.Close
}

var _ Sink = (*Async)(nil)
