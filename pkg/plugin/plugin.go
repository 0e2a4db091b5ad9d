// Package plugin is the boundary between a host and a plugin: the services
// the host provides, the interfaces a plugin implements and the table of live
// plugin instances.
package plugin

import (
	"io"

	"github.com/justyntemme/triadgo/pkg/framework/bus"
	"github.com/justyntemme/triadgo/pkg/framework/plugin"
	"github.com/justyntemme/triadgo/pkg/framework/process"
	"github.com/justyntemme/triadgo/pkg/midi"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new processor bound to host for its lifetime
	CreateProcessor(host Host, cfg Config) Processor
}

// Processor handles one plugin instance's per-block work. The host calls
// ProcessEvents and then ProcessAudio once per block, sequentially, on its
// audio thread.
type Processor interface {
	// Initialize is called once the host knows its processing setup
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessEvents receives the block's incoming events - ZERO ALLOCATIONS!
	ProcessEvents(events []midi.Event)

	// ProcessAudio processes the block's audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// CanDo answers capability queries; may be called from any thread
	CanDo(c plugin.CanDo) plugin.Supported

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error
}

// Persistent is implemented by processors whose settings survive a host
// session.
type Persistent interface {
	SaveState(w io.Writer) error
	LoadState(r io.Reader) error
}
