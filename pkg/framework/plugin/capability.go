package plugin

// CanDo is a capability the host may ask a plugin about.
type CanDo int

const (
	CanDoUnknown CanDo = iota
	CanDoSendEvents
	CanDoSendMidiEvent
	CanDoReceiveEvents
	CanDoReceiveMidiEvent
	CanDoReceiveTimeInfo
	CanDoOffline
	CanDoMidiProgramNames
	CanDoBypass
)

var canDoNames = map[CanDo]string{
	CanDoSendEvents:       "sendVstEvents",
	CanDoSendMidiEvent:    "sendVstMidiEvent",
	CanDoReceiveEvents:    "receiveVstEvents",
	CanDoReceiveMidiEvent: "receiveVstMidiEvent",
	CanDoReceiveTimeInfo:  "receiveVstTimeInfo",
	CanDoOffline:          "offline",
	CanDoMidiProgramNames: "midiProgramNames",
	CanDoBypass:           "bypass",
}

var canDoByName = func() map[string]CanDo {
	m := make(map[string]CanDo, len(canDoNames))
	for c, name := range canDoNames {
		m[name] = c
	}
	return m
}()

func (c CanDo) String() string {
	if name, ok := canDoNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCanDo maps a host capability string to a CanDo. Unrecognized strings
// yield CanDoUnknown.
func ParseCanDo(s string) CanDo {
	if c, ok := canDoByName[s]; ok {
		return c
	}
	return CanDoUnknown
}

// AllCanDos lists every known capability in declaration order.
func AllCanDos() []CanDo {
	return []CanDo{
		CanDoSendEvents,
		CanDoSendMidiEvent,
		CanDoReceiveEvents,
		CanDoReceiveMidiEvent,
		CanDoReceiveTimeInfo,
		CanDoOffline,
		CanDoMidiProgramNames,
		CanDoBypass,
	}
}

// Supported is the answer to a capability query.
type Supported int32

const (
	No    Supported = -1
	Maybe Supported = 0
	Yes   Supported = 1
)

func (s Supported) String() string {
	switch s {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "maybe"
	}
}

// RespondEvents answers capability queries for a plugin that both receives
// and sends note events. It is pure and may be called from any thread.
func RespondEvents(c CanDo) Supported {
	switch c {
	case CanDoSendEvents, CanDoSendMidiEvent, CanDoReceiveEvents, CanDoReceiveMidiEvent:
		return Yes
	default:
		return No
	}
}
