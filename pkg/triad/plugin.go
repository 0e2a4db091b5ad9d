// Package triad is a MIDI effect that harmonizes every incoming note into a
// triad and passes audio through untouched.
package triad

import (
	"github.com/justyntemme/triadgo/pkg/framework/plugin"
	vst3plugin "github.com/justyntemme/triadgo/pkg/plugin"
)

// UniqueID is the numeric identifier hosts store in sessions.
const UniqueID int32 = 19750001

// Plugin implements the Plugin interface
type Plugin struct{}

func (p *Plugin) GetInfo() plugin.Info {
	return plugin.Info{
		ID:       "com.hansbaier.jt51plugin",
		Name:     "JT51Plugin",
		Version:  "0.1.0",
		Vendor:   "Hans Baier",
		Category: "Fx|Event",
		UniqueID: UniqueID,
	}
}

func (p *Plugin) CreateProcessor(host vst3plugin.Host, cfg vst3plugin.Config) vst3plugin.Processor {
	return NewProcessor(host, cfg)
}
