package plugin

import (
	"testing"
)

func TestRespondEvents(t *testing.T) {
	tests := []struct {
		canDo CanDo
		want  Supported
	}{
		{CanDoSendEvents, Yes},
		{CanDoSendMidiEvent, Yes},
		{CanDoReceiveEvents, Yes},
		{CanDoReceiveMidiEvent, Yes},
		{CanDoReceiveTimeInfo, No},
		{CanDoOffline, No},
		{CanDoMidiProgramNames, No},
		{CanDoBypass, No},
		{CanDoUnknown, No},
		{CanDo(999), No},
	}

	for _, tt := range tests {
		t.Run(tt.canDo.String(), func(t *testing.T) {
			if got := RespondEvents(tt.canDo); got != tt.want {
				t.Errorf("RespondEvents(%v) = %v, want %v", tt.canDo, got, tt.want)
			}
		})
	}
}

func TestParseCanDo(t *testing.T) {
	for _, c := range AllCanDos() {
		if got := ParseCanDo(c.String()); got != c {
			t.Errorf("ParseCanDo(%q) = %v, want %v", c.String(), got, c)
		}
	}

	for _, s := range []string{"", "sendVstMidiEventFlagIsRealtime", "SENDVSTEVENTS", "plugAsChannelInsert"} {
		if got := ParseCanDo(s); got != CanDoUnknown {
			t.Errorf("ParseCanDo(%q) = %v, want unknown", s, got)
		}
		if RespondEvents(ParseCanDo(s)) != No {
			t.Errorf("Unrecognized capability %q must answer no", s)
		}
	}
}

func TestSupportedString(t *testing.T) {
	if Yes.String() != "yes" || No.String() != "no" || Maybe.String() != "maybe" {
		t.Errorf("Unexpected names: %s %s %s", Yes, No, Maybe)
	}
}
