package midi

// EventBuffer is an ordered, fixed-capacity event list. Its storage is
// allocated once; Push never grows it. It is not safe for concurrent use:
// a buffer belongs to a single plugin instance and is only touched from the
// audio thread.
type EventBuffer struct {
	events []Event
}

// NewEventBuffer creates a buffer holding at most capacity events.
func NewEventBuffer(capacity int) *EventBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &EventBuffer{
		events: make([]Event, 0, capacity),
	}
}

// Push appends an event. It returns false, leaving the buffer unchanged,
// when the buffer is full.
func (b *EventBuffer) Push(event Event) bool {
	if len(b.events) == cap(b.events) {
		return false
	}
	b.events = append(b.events, event)
	return true
}

// Events returns the buffered events in insertion order. The slice aliases
// the buffer and is only valid until the next Reset or Push.
func (b *EventBuffer) Events() []Event {
	return b.events
}

// Reset empties the buffer, keeping its storage.
func (b *EventBuffer) Reset() {
	b.events = b.events[:0]
}

func (b *EventBuffer) Len() int {
	return len(b.events)
}

func (b *EventBuffer) Cap() int {
	return cap(b.events)
}

func (b *EventBuffer) IsEmpty() bool {
	return len(b.events) == 0
}

func (b *EventBuffer) Full() bool {
	return len(b.events) == cap(b.events)
}

// Remaining returns how many more events fit.
func (b *EventBuffer) Remaining() int {
	return cap(b.events) - len(b.events)
}
