package progress

import "sync"

// Event is one informational update published while a pipeline run executes.
type Event struct {
	Stage   string  `json:"stage"`
	Percent float64 `json:"percent"`
	Message string  `json:"message"`
	Done    bool    `json:"done"`
}

// Broker fans out progress events to subscribers keyed by video identifier.
// Publishing never blocks; slow subscribers miss events instead of stalling
// the pipeline.
type Broker struct {
	mu   sync.Mutex
	subs map[string][]chan Event
}

// NewBroker creates an empty Broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string][]chan Event)}
}

// Subscribe registers interest in events for a key. The returned cancel
// function must be called to release the subscription.
func (b *Broker) Subscribe(key string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[key] = append(b.subs[key], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		channels := b.subs[key]
		for i, c := range channels {
			if c == ch {
				b.subs[key] = append(channels[:i], channels[i+1:]...)
				close(c)
				break
			}
		}
		if len(b.subs[key]) == 0 {
			delete(b.subs, key)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of the key.
func (b *Broker) Publish(key string, ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[key] {
		select {
		case ch <- ev:
		default:
		}
	}
}
