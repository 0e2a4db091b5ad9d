package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler records timing statistics for named sections.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name      string
	Count     uint64
	Total     time.Duration
	Min       time.Duration
	Max       time.Duration
	Last      time.Duration
	samples   []time.Duration
	sampleIdx int
}

// NewProfiler creates a profiler keeping the last maxSamples timings per section.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples < 1 {
		maxSamples = 1
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a named section; call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Time measures the execution time of fn.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record stores one timing for name.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			Name:    name,
			Min:     elapsed,
			Max:     elapsed,
			samples: make([]time.Duration, 0, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	m.Min = min(m.Min, elapsed)
	m.Max = max(m.Max, elapsed)

	if len(m.samples) < p.maxSamples {
		m.samples = append(m.samples, elapsed)
	} else {
		m.samples[m.sampleIdx] = elapsed
		m.sampleIdx = (m.sampleIdx + 1) % p.maxSamples
	}
}

// GetMeasurement returns a copy of the measurement for a named section.
func (p *Profiler) GetMeasurement(name string) (Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, exists := p.measurements[name]
	if !exists {
		return Measurement{}, false
	}
	c := *m
	c.samples = append([]time.Duration(nil), m.samples...)
	return c, true
}

// Names returns the recorded section names, sorted.
func (p *Profiler) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report generates a performance report.
func (p *Profiler) Report() string {
	names := p.Names()
	if len(names) == 0 {
		return "No measurements recorded"
	}

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	sb.WriteString("==================\n\n")

	for _, name := range names {
		m, _ := p.GetMeasurement(name)
		fmt.Fprintf(&sb, "%s:\n", name)
		fmt.Fprintf(&sb, "  Count:   %d\n", m.Count)
		fmt.Fprintf(&sb, "  Total:   %v\n", m.Total)
		fmt.Fprintf(&sb, "  Average: %v\n", m.Average())
		fmt.Fprintf(&sb, "  Min:     %v\n", m.Min)
		fmt.Fprintf(&sb, "  Max:     %v\n", m.Max)
		fmt.Fprintf(&sb, "  P99:     %v\n", m.Percentile(99))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Average returns the average time for this measurement.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile returns the p-th percentile (0-100) of the retained samples.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.samples) == 0 {
		return 0
	}

	sorted := append([]time.Duration(nil), m.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	p = min(max(p, 0), 100)
	return sorted[int(float64(len(sorted)-1)*p/100.0)]
}

// BlockProfiler times block processing against the real-time deadline: the
// playback duration of one block.
type BlockProfiler struct {
	*Profiler
	sampleRate float64
	blockSize  int
	overruns   atomic.Uint64
}

// BlockSection is the measurement name used by BlockProfiler.
const BlockSection = "ProcessBlock"

// NewBlockProfiler creates a profiler for blocks of blockSize frames at sampleRate.
func NewBlockProfiler(sampleRate float64, blockSize int) *BlockProfiler {
	return &BlockProfiler{
		Profiler:   NewProfiler(1000),
		sampleRate: sampleRate,
		blockSize:  blockSize,
	}
}

// Deadline returns the playback duration of one block.
func (b *BlockProfiler) Deadline() time.Duration {
	if b.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.blockSize) / b.sampleRate * float64(time.Second))
}

// TimeBlock runs fn as one block and counts a deadline overrun if it was late.
func (b *BlockProfiler) TimeBlock(fn func()) {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	b.Record(BlockSection, elapsed)

	if d := b.Deadline(); d > 0 && elapsed > d {
		b.overruns.Add(1)
	}
}

// Overruns returns how many blocks missed their deadline.
func (b *BlockProfiler) Overruns() uint64 {
	return b.overruns.Load()
}

// Load returns the average processing time as a percentage of the deadline.
func (b *BlockProfiler) Load() float64 {
	m, ok := b.GetMeasurement(BlockSection)
	d := b.Deadline()
	if !ok || d == 0 {
		return 0
	}
	return float64(m.Average()) / float64(d) * 100.0
}

// BlockReport extends Report with deadline statistics.
func (b *BlockProfiler) BlockReport() string {
	var sb strings.Builder
	sb.WriteString(b.Report())
	sb.WriteString("Block Stats:\n")
	fmt.Fprintf(&sb, "  Sample Rate:  %.0f Hz\n", b.sampleRate)
	fmt.Fprintf(&sb, "  Block Size:   %d samples\n", b.blockSize)
	fmt.Fprintf(&sb, "  Deadline:     %v\n", b.Deadline())
	fmt.Fprintf(&sb, "  Load:         %.2f%%\n", b.Load())
	fmt.Fprintf(&sb, "  Overruns:     %d\n", b.Overruns())
	return sb.String()
}
