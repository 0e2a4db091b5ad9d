package bus

// NewMIDIEffectStereo creates a MIDI effect that also carries a stereo
// audio path, for hosts that only schedule plugins with audio buses.
func NewMIDIEffectStereo() *Configuration {
	c := NewStereoConfiguration()
	c.AddEventBus(DirectionInput, "MIDI In")
	c.AddEventBus(DirectionOutput, "MIDI Out")
	return c
}
