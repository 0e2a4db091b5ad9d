// Package bus describes the audio and event buses a plugin exposes to the host.
package bus

// MediaType represents the type of bus
type MediaType int32

const (
	// MediaTypeAudio represents audio bus type
	MediaTypeAudio MediaType = 0
	// MediaTypeEvent represents event/MIDI bus type
	MediaTypeEvent MediaType = 1
)

func (m MediaType) String() string {
	if m == MediaTypeEvent {
		return "event"
	}
	return "audio"
}

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

func (d Direction) String() string {
	if d == DirectionOutput {
		return "out"
	}
	return "in"
}

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// Info contains bus configuration
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration manages audio and event buses
type Configuration struct {
	audioBuses []Info
	eventBuses []Info
}

// NewStereoConfiguration creates a standard stereo I/O configuration
func NewStereoConfiguration() *Configuration {
	c := &Configuration{}
	c.AddAudioBus(DirectionInput, "Stereo In", 2)
	c.AddAudioBus(DirectionOutput, "Stereo Out", 2)
	return c
}

// AddAudioBus adds a main audio bus
func (c *Configuration) AddAudioBus(direction Direction, name string, channels int32) {
	c.audioBuses = append(c.audioBuses, Info{
		MediaType:    MediaTypeAudio,
		Direction:    direction,
		ChannelCount: channels,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
}

// AddEventBus adds an event bus (for MIDI input or output)
func (c *Configuration) AddEventBus(direction Direction, name string) {
	c.eventBuses = append(c.eventBuses, Info{
		MediaType:    MediaTypeEvent,
		Direction:    direction,
		ChannelCount: 1,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
}

func (c *Configuration) buses(mediaType MediaType) []Info {
	if mediaType == MediaTypeEvent {
		return c.eventBuses
	}
	return c.audioBuses
}

// GetBusCount returns the number of buses for a given type and direction
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	count := int32(0)
	for _, bus := range c.buses(mediaType) {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	buses := c.buses(mediaType)

	busIndex := int32(0)
	for i := range buses {
		if buses[i].Direction == direction {
			if busIndex == index {
				return &buses[i]
			}
			busIndex++
		}
	}

	return nil
}

// ChannelCount returns the channel count of the main audio bus in the given
// direction, or 0 when there is none.
func (c *Configuration) ChannelCount(direction Direction) int32 {
	if info := c.GetBusInfo(MediaTypeAudio, direction, 0); info != nil {
		return info.ChannelCount
	}
	return 0
}

// All returns every bus, audio first.
func (c *Configuration) All() []Info {
	all := make([]Info, 0, len(c.audioBuses)+len(c.eventBuses))
	all = append(all, c.audioBuses...)
	return append(all, c.eventBuses...)
}
