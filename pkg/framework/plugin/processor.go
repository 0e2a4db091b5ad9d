// Package plugin provides base plugin and processor functionality to reduce boilerplate.
package plugin

import (
	"github.com/justyntemme/triadgo/pkg/framework/bus"
)

// BaseProcessor provides common functionality for processors
type BaseProcessor struct {
	buses        *bus.Configuration
	sampleRate   float64
	maxBlockSize int32
	active       bool

	// Optional callbacks for customization
	onInitialize func(sampleRate float64, maxBlockSize int32) error
	onSetActive  func(active bool) error
	onReset      func()
}

// NewBaseProcessor creates a new base processor with the given bus configuration
func NewBaseProcessor(buses *bus.Configuration) *BaseProcessor {
	if buses == nil {
		buses = bus.NewStereoConfiguration() // Default to stereo
	}

	return &BaseProcessor{
		buses: buses,
	}
}

// Initialize records the processing setup and runs the initialize callback.
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	b.sampleRate = sampleRate
	b.maxBlockSize = maxBlockSize

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}

	return nil
}

// GetBuses returns the bus configuration
func (b *BaseProcessor) GetBuses() *bus.Configuration {
	return b.buses
}

// SetActive is called when processing starts or stops. Deactivation resets
// processor state before the callback runs.
func (b *BaseProcessor) SetActive(active bool) error {
	if !active && b.onReset != nil {
		b.onReset()
	}
	b.active = active

	if b.onSetActive != nil {
		return b.onSetActive(active)
	}

	return nil
}

// IsActive reports whether the host has activated processing.
func (b *BaseProcessor) IsActive() bool {
	return b.active
}

// GetLatencySamples returns zero: the base adds no latency
func (b *BaseProcessor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples returns zero: the base has no tail
func (b *BaseProcessor) GetTailSamples() int32 {
	return 0
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// MaxBlockSize returns the largest block the host announced.
func (b *BaseProcessor) MaxBlockSize() int32 {
	return b.maxBlockSize
}

// OnInitialize sets a callback for initialization
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback for activation/deactivation
func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}

// OnReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) OnReset(fn func()) {
	b.onReset = fn
}
