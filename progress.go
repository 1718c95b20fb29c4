package macroforge

import "sync"

// progressBroker fans progress messages out to subscribers. Publishing never
// blocks: a subscriber that stops draining loses its oldest buffered
// messages first, so the search keeps within its budget and the final
// outcome message still arrives.
type progressBroker struct {
	mu   sync.Mutex
	subs map[int]chan string
	next int
}

func (b *progressBroker) subscribe() (<-chan string, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]chan string)
	}
	id := b.next
	b.next++
	ch := make(chan string, 64)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *progressBroker) publish(msg string) {
	// Sends happen under the lock so a concurrent cancel can never close a
	// channel mid-send. publish is the only sender, so after dropping one
	// buffered message the retried send cannot find the buffer full again.
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- msg:
		default:
			// Full buffer: the subscriber is not draining. Evict its oldest
			// message rather than block the search on a slow consumer.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- msg:
			default:
			}
		}
	}
}
