package ferogram

import "sync"

// broadcaster fans every dispatched update out to conversation waiters. Go
// channels have no multi-consumer broadcast, so subscribers get their own
// buffered channel; a subscriber that falls behind misses updates rather
// than blocking dispatch.
type broadcaster struct {
	mu   sync.Mutex
	subs map[int]chan Update
	next int
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan Update)}
}

// subscribe registers a new listener. The returned cancel func must be
// called to release it.
func (b *broadcaster) subscribe(buffer int) (<-chan Update, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Update, buffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// publish delivers the update to every subscriber without blocking.
func (b *broadcaster) publish(update Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- update:
		default:
		}
	}
}
