// Package process provides the per-block audio context handed to a plugin by the host.
package process

import (
	"golang.org/x/exp/constraints"
)

// SampleSize identifies the sample format of a block.
type SampleSize int32

const (
	Sample32 SampleSize = iota
	Sample64
)

func (s SampleSize) String() string {
	if s == Sample64 {
		return "float64"
	}
	return "float32"
}

// Context holds the audio buffers of one block. Only the pair matching
// SampleSize is used.
type Context struct {
	SampleSize SampleSize
	SampleRate float64

	Input  [][]float32
	Output [][]float32

	Input64  [][]float64
	Output64 [][]float64
}

// NewContext creates a 32-bit context with pre-allocated buffers.
func NewContext(numChannels, maxBlockSize int) *Context {
	return &Context{
		SampleSize: Sample32,
		Input:      makeChannels[float32](numChannels, maxBlockSize),
		Output:     makeChannels[float32](numChannels, maxBlockSize),
	}
}

// NewContext64 creates a 64-bit context with pre-allocated buffers.
func NewContext64(numChannels, maxBlockSize int) *Context {
	return &Context{
		SampleSize: Sample64,
		Input64:    makeChannels[float64](numChannels, maxBlockSize),
		Output64:   makeChannels[float64](numChannels, maxBlockSize),
	}
}

func makeChannels[T constraints.Float](numChannels, frames int) [][]T {
	if numChannels < 0 {
		numChannels = 0
	}
	if frames < 0 {
		frames = 0
	}
	chans := make([][]T, numChannels)
	for ch := range chans {
		chans[ch] = make([]T, frames)
	}
	return chans
}

// NumSamples returns the number of frames in the block
func (c *Context) NumSamples() int {
	if c.SampleSize == Sample64 {
		return numFrames(c.Input64, c.Output64)
	}
	return numFrames(c.Input, c.Output)
}

func numFrames[T constraints.Float](in, out [][]T) int {
	if len(in) > 0 && len(in[0]) > 0 {
		return len(in[0])
	}
	if len(out) > 0 && len(out[0]) > 0 {
		return len(out[0])
	}
	return 0
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	if c.SampleSize == Sample64 {
		return len(c.Input64)
	}
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	if c.SampleSize == Sample64 {
		return len(c.Output64)
	}
	return len(c.Output)
}

// GetNumChannels returns the minimum of input and output channels
func (c *Context) GetNumChannels() int {
	return min(c.NumInputChannels(), c.NumOutputChannels())
}

// PassThrough copies input to output unchanged and returns the number of
// samples written. Only the overlapping channels and frames are touched, so
// mismatched buffers from the host never cause an out of range write.
func (c *Context) PassThrough() int {
	if c.SampleSize == Sample64 {
		return CopyChannels(c.Output64, c.Input64)
	}
	return CopyChannels(c.Output, c.Input)
}

// Mismatched reports whether the input and output shapes differ.
func (c *Context) Mismatched() bool {
	if c.SampleSize == Sample64 {
		return !sameShape(c.Input64, c.Output64)
	}
	return !sameShape(c.Input, c.Output)
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	clearChannels(c.Output)
	clearChannels(c.Output64)
}

// CopyChannels copies src into dst channel for channel over their common
// extent and returns the number of samples copied.
func CopyChannels[T constraints.Float](dst, src [][]T) int {
	n := 0
	numChannels := min(len(dst), len(src))
	for ch := 0; ch < numChannels; ch++ {
		n += copy(dst[ch], src[ch])
	}
	return n
}

func sameShape[T constraints.Float](a, b [][]T) bool {
	if len(a) != len(b) {
		return false
	}
	for ch := range a {
		if len(a[ch]) != len(b[ch]) {
			return false
		}
	}
	return true
}

func clearChannels[T constraints.Float](chans [][]T) {
	for ch := range chans {
		for i := range chans[ch] {
			chans[ch][i] = 0
		}
	}
}
