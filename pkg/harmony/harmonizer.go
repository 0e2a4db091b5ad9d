// Package harmony expands incoming notes into fixed triads.
package harmony

import (
	"fmt"
	"strings"

	"github.com/justyntemme/triadgo/pkg/midi"
)

// Triad holds the semitone offsets emitted for every note, root first.
var Triad = [3]uint8{0, 4, 8}

// ChordSize is the number of events emitted per input note.
const ChordSize = len(Triad)

// OverflowPolicy decides what happens to a derived note whose key would
// exceed midi.MaxKey. Keys never wrap.
type OverflowPolicy uint8

const (
	// OverflowDrop omits the derived event. The root is always emitted.
	OverflowDrop OverflowPolicy = iota
	// OverflowClamp pins the derived key to midi.MaxKey.
	OverflowClamp
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowDrop:
		return "drop"
	case OverflowClamp:
		return "clamp"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", uint8(p))
	}
}

// ParseOverflowPolicy accepts "drop" or "clamp".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drop", "":
		return OverflowDrop, nil
	case "clamp":
		return OverflowClamp, nil
	}
	return OverflowDrop, fmt.Errorf("harmony: unknown overflow policy %q", s)
}

// Result counts what happened to one block's events.
type Result struct {
	Notes      int // note-on/note-off inputs
	Emitted    int // events written to the output buffer
	Skipped    int // payloads that failed to decode
	Discarded  int // well-formed events that are not notes
	OutOfRange int // derived events hit by the overflow policy
	Truncated  int // events lost because the output buffer was full
}

// Add accumulates r2 into r.
func (r *Result) Add(r2 Result) {
	r.Notes += r2.Notes
	r.Emitted += r2.Emitted
	r.Skipped += r2.Skipped
	r.Discarded += r2.Discarded
	r.OutOfRange += r2.OutOfRange
	r.Truncated += r2.Truncated
}

// Harmonizer turns every note-on/note-off into itself followed by its +4 and
// +8 semitone copies. It holds no per-block state.
type Harmonizer struct {
	policy OverflowPolicy
}

// New creates a harmonizer with the given overflow policy.
func New(policy OverflowPolicy) *Harmonizer {
	return &Harmonizer{policy: policy}
}

// Policy returns the overflow policy in use.
func (h *Harmonizer) Policy() OverflowPolicy {
	return h.policy
}

// Process resets out and fills it with the expansion of events. It never
// allocates and never fails: bad events are skipped and counted.
func (h *Harmonizer) Process(events []midi.Event, out *midi.EventBuffer) Result {
	var res Result
	out.Reset()

	for i := range events {
		note, err := events[i].Decode()
		if err != nil {
			res.Skipped++
			continue
		}
		if !note.IsNote() {
			res.Discarded++
			continue
		}

		res.Notes++
		h.expand(events[i], note.Key, out, &res)
	}

	return res
}

func (h *Harmonizer) expand(root midi.Event, key uint8, out *midi.EventBuffer, res *Result) {
	for _, interval := range Triad {
		derived := root
		k := int(key) + int(interval)
		if k > int(midi.MaxKey) {
			res.OutOfRange++
			if h.policy != OverflowClamp {
				continue
			}
			k = int(midi.MaxKey)
		}
		derived.Data[1] = byte(k)

		if !out.Push(derived) {
			res.Truncated++
			continue
		}
		res.Emitted++
	}
}
