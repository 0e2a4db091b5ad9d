package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/justyntemme/triadgo/pkg/framework/debug"
	"github.com/justyntemme/triadgo/pkg/framework/process"
	"github.com/justyntemme/triadgo/pkg/harmony"
	"github.com/justyntemme/triadgo/pkg/host"
	"github.com/justyntemme/triadgo/pkg/midi"
	vst3plugin "github.com/justyntemme/triadgo/pkg/plugin"
	"github.com/justyntemme/triadgo/pkg/triad"
)

const (
	renderSampleRate = 48000
	renderFrames     = 256
	renderChannels   = 2
)

type renderOptions struct {
	blockTicks   uint32
	overflow     string
	maxEvents    int
	sinkCapacity int
	keepOther    bool
	profile      bool
}

var renderOpts = renderOptions{
	blockTicks: 120,
	overflow:   harmony.OverflowDrop.String(),
	maxEvents:  vst3plugin.DefaultMaxEventsPerBlock,
}

func init() {
	f := renderCmd.Flags()
	f.Uint32Var(&renderOpts.blockTicks, "block-ticks", renderOpts.blockTicks, "ticks per processing block")
	f.StringVar(&renderOpts.overflow, "overflow", renderOpts.overflow, "what to do with keys above 127: drop or clamp")
	f.IntVar(&renderOpts.maxEvents, "max-events", renderOpts.maxEvents, "input events handled per block")
	f.IntVar(&renderOpts.sinkCapacity, "sink-capacity", 0, "events the host accepts per block, 0 for unlimited")
	f.BoolVar(&renderOpts.keepOther, "keep-other", false, "copy non-note channel messages to the output")
	f.BoolVar(&renderOpts.profile, "profile", false, "print block timing when done")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <in.mid> <out.mid>",
	Short: "Harmonizes a standard MIDI file",
	Long: `Feeds every track of a standard MIDI file through the harmonizer, one
block of ticks at a time, and writes what the plugin sends back.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return render(args[0], args[1], renderOpts)
	},
}

func render(inPath, outPath string, opts renderOptions) error {
	in, err := readMidiFile(inPath)
	if err != nil {
		return err
	}

	r, err := newRenderer(opts)
	if err != nil {
		return err
	}
	defer r.close()

	out := r.renderSMF(in)

	var werr error
	write := func() { werr = out.WriteFile(outPath) }
	if r.profiler != nil {
		r.profiler.Time("WriteFile", write)
	} else {
		write()
	}
	if werr != nil {
		return fmt.Errorf("writing %s: %w", outPath, werr)
	}

	debug.Info("rendered %d tracks to %s", len(out.Tracks), outPath)
	r.report()
	if r.profiler != nil {
		fmt.Print(r.profiler.BlockReport())
	}
	return nil
}

// readMidiFile parses an SMF. The reader can panic on malformed input, so
// panics are turned into errors.
func readMidiFile(path string) (s *smf.SMF, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing %s: %v", path, r)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	s, err = smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// timed is a message at an absolute tick.
type timed struct {
	tick uint64
	msg  smf.Message
}

// renderer drives one plugin instance over the tracks of a file.
type renderer struct {
	inst       *vst3plugin.Instance
	rec        *host.Recorder
	ctx        *process.Context
	blockTicks uint64
	keepOther  bool
	profiler   *debug.BlockProfiler

	// events is reused for every block
	events []midi.Event
}

func newRenderer(opts renderOptions) (*renderer, error) {
	if opts.blockTicks == 0 || opts.blockTicks > math.MaxInt32 {
		return nil, errors.New("block-ticks must be in 1..2147483647")
	}
	policy, err := harmony.ParseOverflowPolicy(opts.overflow)
	if err != nil {
		return nil, err
	}

	cfg := vst3plugin.Config{MaxEventsPerBlock: opts.maxEvents, Overflow: policy}
	if err := vst3plugin.SetConfig(cfg); err != nil {
		return nil, err
	}
	vst3plugin.Register(&triad.Plugin{})

	rec := host.NewRecorder(renderSampleRate, opts.sinkCapacity)
	inst, err := vst3plugin.Instantiate(rec)
	if err != nil {
		return nil, err
	}
	if err := inst.Initialize(renderSampleRate, renderFrames); err != nil {
		inst.Release()
		return nil, err
	}
	if err := inst.SetActive(true); err != nil {
		inst.Release()
		return nil, err
	}

	r := &renderer{
		inst:       inst,
		rec:        rec,
		ctx:        process.NewContext(renderChannels, renderFrames),
		blockTicks: uint64(opts.blockTicks),
		keepOther:  opts.keepOther,
		events:     make([]midi.Event, 0, opts.maxEvents),
	}
	if opts.profile {
		r.profiler = debug.NewBlockProfiler(renderSampleRate, renderFrames)
	}
	return r, nil
}

func (r *renderer) close() {
	r.inst.Release()
}

func (r *renderer) renderSMF(in *smf.SMF) *smf.SMF {
	out := smf.New()
	out.TimeFormat = in.TimeFormat
	for _, track := range in.Tracks {
		var stop func()
		if r.profiler != nil {
			stop = r.profiler.Start("RenderTrack")
		}
		out.Add(r.renderTrack(track))
		if stop != nil {
			stop()
		}
	}
	return out
}

// report logs what the plugin had to drop over the whole render. The
// processor only warns when a condition starts, so the totals come from here.
func (r *renderer) report() triad.Stats {
	var stats triad.Stats
	if p, ok := r.inst.Processor().(*triad.Processor); ok {
		stats = p.Stats()
	}

	debug.DebugIf(stats.Blocks > 0, "%d blocks: %d notes in, %d events delivered, %d out of range, %d skipped",
		stats.Blocks, stats.Notes, stats.Delivered, stats.OutOfRange, stats.Skipped)
	debug.WarnIf(stats.Overflowed > 0, "%d input events over the per-block limit were ignored", stats.Overflowed)
	debug.WarnIf(stats.Truncated > 0, "%d derived events did not fit the stage", stats.Truncated)
	debug.WarnIf(stats.SinkDrops > 0, "the host refused %d events", stats.SinkDrops)
	debug.ErrorIf(r.inst.Panics() > 0, "recovered from %d panics in the plugin", r.inst.Panics())
	return stats
}

// renderTrack runs the notes of one track through the instance. Meta and
// system messages keep their ticks; the end of track is rebuilt.
func (r *renderer) renderTrack(track smf.Track) smf.Track {
	var (
		kept      []timed
		abs, end  uint64
		block     uint64
		haveBlock bool
	)

	for _, ev := range track {
		abs += uint64(ev.Delta)
		msg := []byte(ev.Message)
		if len(msg) == 0 {
			continue
		}

		switch {
		case isEndOfTrack(msg):
			end = abs
		case isNote(msg):
			if b := abs / r.blockTicks; !haveBlock || b != block {
				if haveBlock {
					kept = r.processBlock(block, kept)
				}
				block, haveBlock = b, true
			}
			r.events = append(r.events, midi.Event{
				Kind:   midi.EventKindMIDI,
				Data:   [3]byte{msg[0], msg[1], msg[2]},
				Offset: int32(abs - block*r.blockTicks),
			})
		case isChannel(msg) && !r.keepOther:
			debug.Debug("dropping %X at tick %d", msg, abs)
		default:
			kept = append(kept, timed{tick: abs, msg: ev.Message})
		}
	}
	if haveBlock {
		kept = r.processBlock(block, kept)
	}

	slices.SortStableFunc(kept, func(a, b timed) int {
		switch {
		case a.tick < b.tick:
			return -1
		case a.tick > b.tick:
			return 1
		}
		return 0
	})

	var out smf.Track
	var prev uint64
	for _, t := range kept {
		out = append(out, smf.Event{Delta: uint32(t.tick - prev), Message: t.msg})
		prev = t.tick
	}
	out.Close(uint32(max(end, prev) - prev))
	return out
}

// processBlock runs one block through the instance and appends what the
// host received, at absolute ticks.
func (r *renderer) processBlock(block uint64, kept []timed) []timed {
	r.rec.Clear()
	r.rec.NextBlock()

	run := func() {
		r.inst.ProcessEvents(r.events)
		r.inst.ProcessAudio(r.ctx)
	}
	if r.profiler != nil {
		r.profiler.TimeBlock(run)
	} else {
		run()
	}
	r.events = r.events[:0]

	start := block * r.blockTicks
	for _, e := range r.rec.Events() {
		kept = append(kept, timed{
			tick: start + uint64(e.Offset),
			msg:  smf.Message(e.Message()),
		})
	}
	return kept
}

func isEndOfTrack(msg []byte) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}

func isChannel(msg []byte) bool {
	return msg[0] >= 0x80 && msg[0] < 0xF0
}

func isNote(msg []byte) bool {
	kind := msg[0] & 0xF0
	return len(msg) == 3 && (kind == 0x80 || kind == 0x90)
}
