package glwindow

// The signal graph is single-threaded: only the event-loop thread may set
// signal values or touch screens. Background goroutines hand work over by
// posting closures, which Run drains once per frame.

const eventQueueSize = 1024

// Post queues fn for execution on the event-loop thread. With dropIfFull
// set the event is discarded when the queue is saturated, otherwise Post
// blocks. Only the root screen carries a queue; posting to a child panics
// rather than deadlocking on the missing channel.
func (s *Screen) Post(fn func(), dropIfFull bool) {
	if s.events == nil {
		panic("glwindow: Post requires the root screen")
	}
	if dropIfFull {
		select {
		case s.events <- fn:
		default:
		}
	} else {
		s.events <- fn
	}
}

func (s *Screen) drainEvents() {
	if s.events == nil {
		return
	}
	for {
		select {
		case fn := <-s.events:
			fn()
		default:
			return
		}
	}
}
