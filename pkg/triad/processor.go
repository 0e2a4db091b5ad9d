package triad

import (
	"fmt"
	"io"

	"github.com/justyntemme/triadgo/pkg/framework/bus"
	"github.com/justyntemme/triadgo/pkg/framework/debug"
	"github.com/justyntemme/triadgo/pkg/framework/plugin"
	"github.com/justyntemme/triadgo/pkg/framework/process"
	"github.com/justyntemme/triadgo/pkg/framework/state"
	"github.com/justyntemme/triadgo/pkg/harmony"
	"github.com/justyntemme/triadgo/pkg/midi"
	vst3plugin "github.com/justyntemme/triadgo/pkg/plugin"
)

// Stats accumulates what happened to events over the life of a processor.
type Stats struct {
	harmony.Result
	Blocks     uint64 // audio blocks processed
	Delivered  int    // events accepted by the host sink
	SinkDrops  int    // staged events the sink refused
	Overflowed int    // input events beyond the per-block bound
	Mismatched uint64 // blocks whose input and output shapes differed
}

// Processor expands note events into triads during the event phase and
// hands them to the host during the audio phase of the same block.
type Processor struct {
	*plugin.BaseProcessor
	*plugin.Base

	host       vst3plugin.Host
	cfg        vst3plugin.Config
	harmonizer *harmony.Harmonizer
	maxEvents  int
	state      *state.Manager

	// staged holds this block's expansion between ProcessEvents and
	// ProcessAudio. It is emptied on every flush.
	staged *midi.EventBuffer

	stats Stats
	log   *debug.Logger

	// Degradation is logged when a condition starts and not again until it
	// clears. The counters in stats record every occurrence.
	overLimit, truncating, sinkFull bool
}

// NewProcessor creates a processor bound to host. An invalid cfg falls back
// to the default configuration.
func NewProcessor(host vst3plugin.Host, cfg vst3plugin.Config) *Processor {
	log := debug.Default()
	if err := cfg.Validate(); err != nil {
		log.Warn("triad: %v, using defaults", err)
		cfg = vst3plugin.DefaultConfig()
	}

	p := &Processor{
		BaseProcessor: plugin.NewBaseProcessor(bus.NewMIDIEffectStereo()),
		Base:          plugin.NewBase((&Plugin{}).GetInfo(), plugin.RespondEvents),
		host:          host,
		state:         state.NewManager(stateVersion),
		log:           log,
	}
	p.configure(cfg)

	p.OnReset(p.reset)
	if sr := host.SampleRate(); sr > 0 {
		if err := p.Initialize(sr, 0); err != nil {
			log.Warn("triad: initializing at %g Hz: %v", sr, err)
		}
	}

	return p
}

// configure applies a validated configuration, reallocating the stage.
func (p *Processor) configure(cfg vst3plugin.Config) {
	p.cfg = cfg
	p.harmonizer = harmony.New(cfg.Overflow)
	p.maxEvents = cfg.MaxEventsPerBlock
	p.staged = midi.NewEventBuffer(cfg.StagingCapacity())
}

// Config returns the configuration in effect.
func (p *Processor) Config() vst3plugin.Config {
	return p.cfg
}

// SetLogger replaces the logger used for degradation warnings.
func (p *Processor) SetLogger(l *debug.Logger) {
	if l != nil {
		p.log = l
	}
}

// ProcessEvents stages the triad expansion of this block's events,
// replacing anything staged before.
func (p *Processor) ProcessEvents(events []midi.Event) {
	over := len(events) > p.maxEvents
	if over {
		dropped := len(events) - p.maxEvents
		p.stats.Overflowed += dropped
		if !p.overLimit && p.log.Enabled(debug.LogLevelWarn) {
			p.log.Warn("triad: %d events over the per-block limit of %d ignored", dropped, p.maxEvents)
		}
		events = events[:p.maxEvents]
	}
	p.overLimit = over

	res := p.harmonizer.Process(events, p.staged)
	p.stats.Add(res)

	truncating := res.Truncated > 0
	if truncating && !p.truncating && p.log.Enabled(debug.LogLevelWarn) {
		p.log.Warn("triad: staging full, %d derived events dropped", res.Truncated)
	}
	p.truncating = truncating
}

// ProcessAudio copies input audio to output and flushes the staged events
// to the host. Audio is copied first so that a misbehaving sink cannot
// affect it.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	p.stats.Blocks++

	if ctx != nil {
		if ctx.Mismatched() {
			p.stats.Mismatched++
		}
		ctx.PassThrough()
	}

	p.flush()
}

// flush hands the staged events to the host once and empties the stage,
// whether or not the host took them all.
func (p *Processor) flush() {
	defer p.staged.Reset()

	pending := p.staged.Events()
	if len(pending) == 0 {
		return
	}

	accepted, err := p.host.SendEvents(pending)
	accepted = min(max(accepted, 0), len(pending))
	p.stats.Delivered += accepted

	dropped := len(pending) - accepted
	if dropped > 0 {
		p.stats.SinkDrops += dropped
		if !p.sinkFull && p.log.Enabled(debug.LogLevelWarn) {
			if err == nil {
				err = vst3plugin.ErrSinkFull
			}
			p.log.Warn("triad: host took %d of %d events: %v", accepted, len(pending), err)
		}
	}
	p.sinkFull = dropped > 0
}

// Staged returns the events waiting for the next audio phase. The slice is
// only valid until the next call on the processor.
func (p *Processor) Staged() []midi.Event {
	return p.staged.Events()
}

// Stats returns the counters accumulated so far.
func (p *Processor) Stats() Stats {
	return p.stats
}

// reset discards staged events when the host stops processing.
func (p *Processor) reset() {
	p.staged.Reset()
	p.overLimit, p.truncating, p.sinkFull = false, false, false
}

const stateVersion = 1

// SaveState writes the processor settings for the host session.
func (p *Processor) SaveState(w io.Writer) error {
	return p.state.Save(w, []int32{
		int32(p.cfg.MaxEventsPerBlock),
		int32(p.cfg.Overflow),
	})
}

// LoadState restores settings written by SaveState. It allocates and must
// not run concurrently with block processing. On error the current settings
// are kept.
func (p *Processor) LoadState(r io.Reader) error {
	_, fields, err := p.state.Load(r)
	if err != nil {
		return err
	}
	if len(fields) < 2 {
		return fmt.Errorf("triad: state has %d fields, want 2", len(fields))
	}

	policy := harmony.OverflowPolicy(fields[1])
	if int32(policy) != fields[1] {
		return fmt.Errorf("triad: overflow policy %d out of range", fields[1])
	}

	cfg := vst3plugin.Config{
		MaxEventsPerBlock: int(fields[0]),
		Overflow:          policy,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p.configure(cfg)
	p.log.Debug("triad: restored %d events per block, overflow %s", cfg.MaxEventsPerBlock, cfg.Overflow)
	return nil
}
