// Package host provides an in-memory host for driving plugins outside a DAW:
// offline rendering and tests.
package host

import (
	"github.com/justyntemme/triadgo/pkg/midi"
	"github.com/justyntemme/triadgo/pkg/plugin"
)

// Delivered is an event accepted by the Recorder, with its block number.
type Delivered struct {
	Block int
	Event midi.Event
}

// Recorder is a Host that records every event it accepts. It accepts at most
// Capacity events per block; zero means unlimited.
type Recorder struct {
	Rate     float64
	Capacity int

	block    int
	inBlock  int
	calls    int
	events   []Delivered
	rejected int
}

// NewRecorder creates a recorder for the given sample rate.
func NewRecorder(sampleRate float64, capacity int) *Recorder {
	return &Recorder{Rate: sampleRate, Capacity: capacity}
}

// SampleRate returns the configured sample rate.
func (r *Recorder) SampleRate() float64 {
	return r.Rate
}

// SendEvents accepts events up to the per-block capacity.
func (r *Recorder) SendEvents(events []midi.Event) (int, error) {
	r.calls++

	accepted := len(events)
	if r.Capacity > 0 {
		accepted = min(accepted, max(r.Capacity-r.inBlock, 0))
	}

	for _, e := range events[:accepted] {
		r.events = append(r.events, Delivered{Block: r.block, Event: e})
	}
	r.inBlock += accepted

	if accepted < len(events) {
		r.rejected += len(events) - accepted
		return accepted, plugin.ErrSinkFull
	}
	return accepted, nil
}

// NextBlock starts a new block, resetting the per-block capacity.
func (r *Recorder) NextBlock() {
	r.block++
	r.inBlock = 0
}

// Block returns the current block number.
func (r *Recorder) Block() int {
	return r.block
}

// Calls returns how many times SendEvents was called.
func (r *Recorder) Calls() int {
	return r.calls
}

// Delivered returns everything accepted so far.
func (r *Recorder) Delivered() []Delivered {
	return r.events
}

// Events returns the accepted events in delivery order.
func (r *Recorder) Events() []midi.Event {
	out := make([]midi.Event, len(r.events))
	for i, d := range r.events {
		out[i] = d.Event
	}
	return out
}

// BlockEvents returns the events accepted during block n.
func (r *Recorder) BlockEvents(n int) []midi.Event {
	var out []midi.Event
	for _, d := range r.events {
		if d.Block == n {
			out = append(out, d.Event)
		}
	}
	return out
}

// Rejected returns how many events were refused for lack of capacity.
func (r *Recorder) Rejected() int {
	return r.rejected
}

// Clear forgets recorded events but keeps the block counter.
func (r *Recorder) Clear() {
	r.events = r.events[:0]
	r.calls = 0
	r.rejected = 0
}

var _ plugin.Host = (*Recorder)(nil)
