package plugin

import (
	"errors"

	"github.com/justyntemme/triadgo/pkg/midi"
)

// ErrSinkFull is returned by an EventSink that cannot take more events in
// the current block.
var ErrSinkFull = errors.New("plugin: event sink full")

// EventSink accepts outgoing events for delivery downstream. SendEvents
// must not block; it returns how many events, from the front of the batch,
// were accepted. A short count with a nil error is treated like ErrSinkFull.
type EventSink interface {
	SendEvents(events []midi.Event) (accepted int, err error)
}

// Host is the handle a plugin holds for its lifetime to reach host services.
type Host interface {
	EventSink

	// SampleRate returns the host's current sample rate, or 0 if unknown
	SampleRate() float64
}
