package resource

import "sync"

// Counter is an Observer that tracks live handles per kind.
type Counter struct {
	live map[Kind]int
	mu   sync.Mutex
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{live: make(map[Kind]int)}
}

// OnResourceEvent implements Observer.
func (c *Counter) OnResourceEvent(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch e.Type {
	case EventCreated:
		c.live[e.Kind]++
	case EventDropped:
		c.live[e.Kind]--
	}
}

// Live returns the number of handles of kind created and not yet dropped
// since the counter was subscribed.
func (c *Counter) Live(kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live[kind]
}

// Total returns the live count across all kinds.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.live {
		n += v
	}
	return n
}
