package plugin

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Namespace for class UIDs derived from plugin IDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("triadgo.plugin"))

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")
	UniqueID int32  // Numeric identifier hosts use to recall the plugin
}

// UID derives the 16-byte class identifier from the string ID. The same ID
// always yields the same UID.
func (i Info) UID() [16]byte {
	return [16]byte(uuid.NewSHA1(uidNamespace, []byte(i.ID)))
}

// UIDString returns the UID in canonical UUID form.
func (i Info) UIDString() string {
	return uuid.UUID(i.UID()).String()
}

// ValidateUID checks that the metadata can produce a usable identity.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID cannot be empty")
	}
	if i.UniqueID == 0 {
		return fmt.Errorf("plugin %q has no unique numeric ID", i.ID)
	}
	return nil
}
