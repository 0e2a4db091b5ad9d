package midi

import (
	"errors"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestNoteOnEvent(t *testing.T) {
	event := NoteOn(0, 60, 100, 100)

	if event.Data != [3]byte{0x90, 60, 100} {
		t.Errorf("Expected data 90 3C 64, got % X", event.Data)
	}

	note, err := event.Decode()
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}

	if note.Type != EventTypeNoteOn {
		t.Errorf("Expected type %v, got %v", EventTypeNoteOn, note.Type)
	}

	if note.Offset != 100 {
		t.Errorf("Expected offset 100, got %d", note.Offset)
	}

	expected := "NoteOn{ch:0, note:60, vel:100, offset:100}"
	if note.String() != expected {
		t.Errorf("Expected string %s, got %s", expected, note.String())
	}
}

func TestNoteOffEvent(t *testing.T) {
	event := NoteOff(1, 72, 64, 200)

	note, err := event.Decode()
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}

	if note.Type != EventTypeNoteOff {
		t.Errorf("Expected type %v, got %v", EventTypeNoteOff, note.Type)
	}

	if note.Channel != 1 {
		t.Errorf("Expected channel 1, got %d", note.Channel)
	}

	if note.Key != 72 || note.Velocity != 64 {
		t.Errorf("Expected key 72 vel 64, got key %d vel %d", note.Key, note.Velocity)
	}
}

func TestDecodeMatchesGomidi(t *testing.T) {
	msgs := []gomidi.Message{
		gomidi.NoteOn(3, 64, 90),
		gomidi.NoteOffVelocity(15, 0, 12),
		gomidi.NoteOn(0, 127, 127),
	}

	for _, msg := range msgs {
		var event Event
		copy(event.Data[:], msg)

		note, err := event.Decode()
		if err != nil {
			t.Fatalf("%v: unexpected error %v", msg, err)
		}

		var ch, key, vel uint8
		if !msg.GetNoteOn(&ch, &key, &vel) && !msg.GetNoteOff(&ch, &key, &vel) {
			t.Fatalf("%v: gomidi did not see a note", msg)
		}

		if note.Channel != ch || note.Key != key || note.Velocity != vel {
			t.Errorf("%v: expected ch %d key %d vel %d, got %s", msg, ch, key, vel, note)
		}
	}
}

func TestDecodeOtherMessages(t *testing.T) {
	tests := []struct {
		name string
		data [3]byte
	}{
		{"ControlChange", [3]byte{0xB0, 64, 127}},
		{"ProgramChange", [3]byte{0xC2, 5, 0}},
		{"PitchBend", [3]byte{0xE0, 0, 64}},
		{"Clock", [3]byte{0xF8, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note, err := Event{Data: tt.data}.Decode()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if note.IsNote() {
				t.Errorf("Expected non-note, got %s", note)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  error
	}{
		{"SysEx", Event{Kind: EventKindSysEx, Data: [3]byte{0x90, 60, 100}}, ErrNotMIDI},
		{"RunningStatus", Event{Data: [3]byte{60, 100, 0}}, ErrNoStatus},
		{"Empty", Event{}, ErrNoStatus},
		{"KeyHighBit", Event{Data: [3]byte{0x90, 0x83, 100}}, ErrDataByte},
		{"VelocityHighBit", Event{Data: [3]byte{0x80, 60, 0xFF}}, ErrDataByte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.event.Decode()
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	note := Note{Type: EventTypeNoteOff, Channel: 9, Key: 36, Velocity: 40, Offset: 17}

	decoded, err := note.Encode().Decode()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if decoded != note {
		t.Errorf("Expected %s, got %s", note, decoded)
	}
}

func TestEventString(t *testing.T) {
	if got := NoteOn(0, 60, 100, 0).String(); got != "NoteOn{ch:0, note:60, vel:100, offset:0}" {
		t.Errorf("Unexpected string %s", got)
	}
	if got := (Event{Data: [3]byte{0x12, 0x34, 0x56}, Offset: 3}).String(); got != "Raw{12 34 56, offset:3}" {
		t.Errorf("Unexpected string %s", got)
	}
}

func TestNoteNumberToName(t *testing.T) {
	tests := []struct {
		note uint8
		name string
	}{
		{60, "C4"},  // Middle C
		{64, "E4"},  // major third above
		{68, "G#4"}, // +8
		{0, "C-1"},  // Lowest MIDI note
		{127, "G9"}, // Highest MIDI note
	}

	for _, tt := range tests {
		name := NoteNumberToName(tt.note)
		if name != tt.name {
			t.Errorf("For note %d, expected name %s, got %s", tt.note, tt.name, name)
		}
	}
}
