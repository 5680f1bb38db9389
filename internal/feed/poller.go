package feed

import (
	"sync"
	"time"
)

// EventType distinguishes poller notifications.
type EventType int

const (
	// EventCountdown reports one second elapsed toward the next refresh.
	EventCountdown EventType = iota
	// EventRefresh tells subscribers to refetch now.
	EventRefresh
)

// Event is delivered to every poller subscriber.
type Event struct {
	Type EventType
	// Remaining is the number of seconds until the next automatic refresh.
	Remaining int
}

// Poller owns the shared refresh timer. Widgets subscribe to it instead
// of sharing an ambient trigger value; a manual Refresh resets the
// countdown and fires everyone immediately.
type Poller struct {
	interval int // seconds per cycle

	mu        sync.Mutex
	subs      []func(Event)
	remaining int
	ticker    *time.Ticker
	done      chan struct{}
	running   bool
}

// NewPoller creates a poller with the given cycle length. Start must be
// called before any events are delivered.
func NewPoller(interval time.Duration) *Poller {
	seconds := int(interval / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	return &Poller{
		interval:  seconds,
		remaining: seconds,
	}
}

// Subscribe registers a callback for countdown and refresh events.
// Callbacks run on the poller goroutine and must not block.
func (p *Poller) Subscribe(fn func(Event)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subs = append(p.subs, fn)
}

// Start launches the countdown. Calling Start on a running poller is a
// no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}

	p.running = true
	p.remaining = p.interval
	p.ticker = time.NewTicker(time.Second)
	p.done = make(chan struct{})

	go p.run(p.ticker, p.done)
}

func (p *Poller) run(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

func (p *Poller) tick() {
	p.mu.Lock()

	if !p.running {
		p.mu.Unlock()

		return
	}

	p.remaining--

	var event Event
	if p.remaining <= 0 {
		p.remaining = p.interval
		event = Event{Type: EventRefresh, Remaining: p.remaining}
	} else {
		event = Event{Type: EventCountdown, Remaining: p.remaining}
	}

	subs := append(make([]func(Event), 0, len(p.subs)), p.subs...)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// Refresh resets the countdown and notifies subscribers immediately,
// pulling every widget out of its normal cadence.
func (p *Poller) Refresh() {
	p.mu.Lock()
	p.remaining = p.interval
	subs := append(make([]func(Event), 0, len(p.subs)), p.subs...)
	p.mu.Unlock()

	event := Event{Type: EventRefresh, Remaining: p.interval}
	for _, fn := range subs {
		fn(event)
	}
}

// Remaining returns the seconds left until the next automatic refresh.
func (p *Poller) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.remaining
}

// Stop releases the timer. Subscribers receive no further events.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.running = false
	p.ticker.Stop()
	close(p.done)
}
