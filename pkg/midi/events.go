// Package midi provides the wire-level event records exchanged with the host
// and their decoded note form.
package midi

import (
	"errors"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// EventKind tells MIDI events apart from the other block events a host may deliver.
type EventKind uint8

const (
	EventKindMIDI EventKind = iota
	EventKindSysEx
)

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypeOther
)

func (t EventType) String() string {
	switch t {
	case EventTypeNoteOff:
		return "NoteOff"
	case EventTypeNoteOn:
		return "NoteOn"
	default:
		return "Other"
	}
}

// MaxKey is the highest valid MIDI key number.
const MaxKey uint8 = 127

var (
	// ErrNotMIDI is returned when decoding an event that does not carry a MIDI message.
	ErrNotMIDI = errors.New("midi: not a MIDI event")
	// ErrNoStatus is returned when the first byte is not a status byte.
	ErrNoStatus = errors.New("midi: missing status byte")
	// ErrDataByte is returned when a note message carries a data byte with the high bit set.
	ErrDataByte = errors.New("midi: invalid data byte")
)

// Event is one encoded event record of a processing block.
type Event struct {
	Kind   EventKind
	Data   [3]byte // status, data1, data2
	Offset int32   // sample position within the block
}

// SampleOffset returns the position of the event within the current block.
func (e Event) SampleOffset() int32 {
	return e.Offset
}

// Message returns the payload as a gomidi message.
func (e Event) Message() gomidi.Message {
	return gomidi.Message(e.Data[:])
}

// Note is a decoded live performance message.
type Note struct {
	Type     EventType
	Channel  uint8
	Key      uint8
	Velocity uint8
	Offset   int32
}

// IsNote reports whether n is a note-on or note-off.
func (n Note) IsNote() bool {
	return n.Type == EventTypeNoteOn || n.Type == EventTypeNoteOff
}

func (n Note) String() string {
	if !n.IsNote() {
		return fmt.Sprintf("Other{ch:%d, offset:%d}", n.Channel, n.Offset)
	}
	return fmt.Sprintf("%s{ch:%d, note:%d, vel:%d, offset:%d}",
		n.Type, n.Channel, n.Key, n.Velocity, n.Offset)
}

// Encode returns the wire form of a note-on or note-off.
func (n Note) Encode() Event {
	status := byte(0x80)
	if n.Type == EventTypeNoteOn {
		status = 0x90
	}
	return Event{
		Kind:   EventKindMIDI,
		Data:   [3]byte{status | n.Channel&0x0F, n.Key & 0x7F, n.Velocity & 0x7F},
		Offset: n.Offset,
	}
}

// NoteOn builds a note-on event.
func NoteOn(channel, key, velocity uint8, offset int32) Event {
	return Note{Type: EventTypeNoteOn, Channel: channel, Key: key, Velocity: velocity, Offset: offset}.Encode()
}

// NoteOff builds a note-off event.
func NoteOff(channel, key, velocity uint8, offset int32) Event {
	return Note{Type: EventTypeNoteOff, Channel: channel, Key: key, Velocity: velocity, Offset: offset}.Encode()
}

// Decode parses the payload as a live performance message. Well-formed
// messages other than note-on/note-off decode to EventTypeOther.
func (e Event) Decode() (Note, error) {
	if e.Kind != EventKindMIDI {
		return Note{}, ErrNotMIDI
	}

	status := e.Data[0]
	if status&0x80 == 0 {
		return Note{}, ErrNoStatus
	}

	n := Note{Type: EventTypeOther, Offset: e.Offset}
	if status < 0xF0 {
		n.Channel = status & 0x0F
	}

	if kind := status & 0xF0; kind != 0x80 && kind != 0x90 {
		return n, nil
	}

	// gomidi masks data bytes to 7 bits, so reject them before decoding.
	if e.Data[1]&0x80 != 0 || e.Data[2]&0x80 != 0 {
		return Note{}, ErrDataByte
	}

	var ch, key, vel uint8
	msg := e.Message()
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		n.Type = EventTypeNoteOn
	case msg.GetNoteOff(&ch, &key, &vel):
		n.Type = EventTypeNoteOff
	default:
		ch, key, vel = status&0x0F, e.Data[1], e.Data[2]
		n.Type = EventTypeNoteOff
		if status&0xF0 == 0x90 {
			n.Type = EventTypeNoteOn
		}
	}

	n.Channel = ch
	n.Key = key
	n.Velocity = vel
	return n, nil
}

func (e Event) String() string {
	n, err := e.Decode()
	if err != nil {
		return fmt.Sprintf("Raw{%02X %02X %02X, offset:%d}", e.Data[0], e.Data[1], e.Data[2], e.Offset)
	}
	return n.String()
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteNumberToName returns the scientific pitch name of a key, with 60 as C4.
func NoteNumberToName(note uint8) string {
	octave := int(note/12) - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}
