package bus

import (
	"testing"
)

func TestNewStereoConfiguration(t *testing.T) {
	config := NewStereoConfiguration()

	// Check bus counts
	if got := config.GetBusCount(MediaTypeAudio, DirectionInput); got != 1 {
		t.Errorf("Expected 1 audio input bus, got %d", got)
	}
	if got := config.GetBusCount(MediaTypeAudio, DirectionOutput); got != 1 {
		t.Errorf("Expected 1 audio output bus, got %d", got)
	}

	// Check input bus
	inBus := config.GetBusInfo(MediaTypeAudio, DirectionInput, 0)
	if inBus == nil {
		t.Fatal("Expected input bus to exist")
	}
	if inBus.ChannelCount != 2 {
		t.Errorf("Expected 2 input channels, got %d", inBus.ChannelCount)
	}
	if inBus.Name != "Stereo In" {
		t.Errorf("Expected input name 'Stereo In', got %s", inBus.Name)
	}

	// No event buses by default
	if got := config.GetBusCount(MediaTypeEvent, DirectionInput); got != 0 {
		t.Errorf("Expected no event buses, got %d", got)
	}
}

func TestMIDIEffectStereo(t *testing.T) {
	config := NewMIDIEffectStereo()

	tests := []struct {
		mediaType MediaType
		direction Direction
		want      int32
	}{
		{MediaTypeAudio, DirectionInput, 1},
		{MediaTypeAudio, DirectionOutput, 1},
		{MediaTypeEvent, DirectionInput, 1},
		{MediaTypeEvent, DirectionOutput, 1},
	}

	for _, tt := range tests {
		if got := config.GetBusCount(tt.mediaType, tt.direction); got != tt.want {
			t.Errorf("%s %s: expected %d buses, got %d", tt.mediaType, tt.direction, tt.want, got)
		}
	}

	out := config.GetBusInfo(MediaTypeEvent, DirectionOutput, 0)
	if out == nil || out.Name != "MIDI Out" {
		t.Fatalf("Expected MIDI Out bus, got %+v", out)
	}

	if got := config.ChannelCount(DirectionOutput); got != 2 {
		t.Errorf("Expected 2 output channels, got %d", got)
	}

	if got := len(config.All()); got != 4 {
		t.Errorf("Expected 4 buses in total, got %d", got)
	}
}

func TestGetBusInfoOutOfRange(t *testing.T) {
	config := NewStereoConfiguration()

	if info := config.GetBusInfo(MediaTypeAudio, DirectionInput, 1); info != nil {
		t.Errorf("Expected nil for missing bus, got %+v", info)
	}
	if info := config.GetBusInfo(MediaTypeEvent, DirectionOutput, 0); info != nil {
		t.Errorf("Expected nil for missing event bus, got %+v", info)
	}
}
