package plugin

// Responder answers host capability queries.
type Responder func(CanDo) Supported

// Base provides the static parts every plugin shares: metadata and the
// capability answers.
type Base struct {
	Info    Info
	respond Responder
}

// NewBase creates a plugin base. A nil responder answers No to everything.
func NewBase(info Info, respond Responder) *Base {
	if respond == nil {
		respond = func(CanDo) Supported { return No }
	}
	return &Base{
		Info:    info,
		respond: respond,
	}
}

// GetInfo returns the plugin metadata
func (b *Base) GetInfo() Info {
	return b.Info
}

// CanDo answers a capability query.
func (b *Base) CanDo(c CanDo) Supported {
	return b.respond(c)
}
