package debug

import (
	"strings"
	"testing"
	"time"
)

func TestProfiler(t *testing.T) {
	t.Run("BasicProfiling", func(t *testing.T) {
		p := NewProfiler(100)

		stop := p.Start("test")
		time.Sleep(10 * time.Millisecond)
		stop()

		m, exists := p.GetMeasurement("test")
		if !exists {
			t.Fatal("Measurement not found")
		}

		if m.Count != 1 {
			t.Errorf("Expected count 1, got %d", m.Count)
		}

		if m.Last < 10*time.Millisecond {
			t.Error("Timing seems too short")
		}
	})

	t.Run("RecordedStatistics", func(t *testing.T) {
		p := NewProfiler(3)

		for _, d := range []time.Duration{4, 1, 3, 2, 5} {
			p.Record("multi", d*time.Millisecond)
		}

		m, _ := p.GetMeasurement("multi")
		if m.Count != 5 {
			t.Errorf("Expected count 5, got %d", m.Count)
		}
		if m.Min != time.Millisecond || m.Max != 5*time.Millisecond {
			t.Errorf("Unexpected min/max %v/%v", m.Min, m.Max)
		}
		if m.Average() != 3*time.Millisecond {
			t.Errorf("Expected average 3ms, got %v", m.Average())
		}
		// only the last three samples (3, 2, 5) are retained
		if got := m.Percentile(0); got != 2*time.Millisecond {
			t.Errorf("Expected P0 of 2ms, got %v", got)
		}
		if got := m.Percentile(100); got != 5*time.Millisecond {
			t.Errorf("Expected P100 of 5ms, got %v", got)
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		p := NewProfiler(10)
		p.SetEnabled(false)

		p.Time("off", func() {})

		if _, exists := p.GetMeasurement("off"); exists {
			t.Error("Disabled profiler should not record")
		}
	})

	t.Run("Report", func(t *testing.T) {
		p := NewProfiler(10)
		if p.Report() != "No measurements recorded" {
			t.Error("Unexpected empty report")
		}

		p.Record("b", time.Millisecond)
		p.Record("a", time.Millisecond)

		report := p.Report()
		if strings.Index(report, "a:") > strings.Index(report, "b:") {
			t.Error("Sections should be reported in name order")
		}

		p.Reset()
		if len(p.Names()) != 0 {
			t.Error("Reset should clear measurements")
		}
	})
}

func TestBlockProfiler(t *testing.T) {
	b := NewBlockProfiler(48000, 480)

	if b.Deadline() != 10*time.Millisecond {
		t.Fatalf("Expected 10ms deadline, got %v", b.Deadline())
	}

	b.TimeBlock(func() {})
	b.TimeBlock(func() { time.Sleep(15 * time.Millisecond) })

	if b.Overruns() != 1 {
		t.Errorf("Expected 1 overrun, got %d", b.Overruns())
	}
	if b.Load() <= 0 {
		t.Errorf("Expected positive load, got %v", b.Load())
	}
	if !strings.Contains(b.BlockReport(), "Overruns:     1") {
		t.Errorf("Report missing overrun count:\n%s", b.BlockReport())
	}
}

func TestBlockProfilerNoSampleRate(t *testing.T) {
	b := NewBlockProfiler(0, 512)
	b.TimeBlock(func() {})

	if b.Deadline() != 0 || b.Load() != 0 || b.Overruns() != 0 {
		t.Error("Profiler without sample rate should report no deadline")
	}
}
