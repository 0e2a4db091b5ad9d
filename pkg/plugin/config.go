package plugin

import (
	"errors"
	"fmt"

	"github.com/justyntemme/triadgo/pkg/harmony"
)

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("plugin: invalid config")

// DefaultMaxEventsPerBlock bounds the input events handled per block. The
// staging buffer is sized for the full expansion of that many notes.
const DefaultMaxEventsPerBlock = 512

// maxEventsLimit keeps a misconfigured instance from reserving absurd memory.
const maxEventsLimit = 1 << 16

// Config controls how processors are created.
type Config struct {
	// MaxEventsPerBlock is the worst-case number of input events per block
	MaxEventsPerBlock int

	// Overflow decides what happens to transposed keys above 127
	Overflow harmony.OverflowPolicy
}

// DefaultConfig returns the configuration used when none is set.
func DefaultConfig() Config {
	return Config{
		MaxEventsPerBlock: DefaultMaxEventsPerBlock,
		Overflow:          harmony.OverflowDrop,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxEventsPerBlock <= 0 || c.MaxEventsPerBlock > maxEventsLimit {
		return fmt.Errorf("%w: max events per block %d not in 1..%d", ErrInvalidConfig, c.MaxEventsPerBlock, maxEventsLimit)
	}
	switch c.Overflow {
	case harmony.OverflowDrop, harmony.OverflowClamp:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Overflow)
	}
	return nil
}

// StagingCapacity returns the number of outgoing events one block can stage.
func (c Config) StagingCapacity() int {
	return c.MaxEventsPerBlock * harmony.ChordSize
}
