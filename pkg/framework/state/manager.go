// Package state saves and restores plugin settings as a small versioned
// binary blob that hosts store in their sessions.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic prefixes every saved state.
const Magic = "TRIAD"

// maxFields bounds the field count read back from untrusted data.
const maxFields = 1024

var (
	// ErrBadMagic is returned when the data does not start with Magic.
	ErrBadMagic = errors.New("state: invalid state format")
	// ErrTooNew is returned for state written by a newer version.
	ErrTooNew = errors.New("state: version too new")
)

// Manager handles plugin state saving and loading
type Manager struct {
	version uint32
}

// NewManager creates a manager writing the given state version.
func NewManager(version uint32) *Manager {
	return &Manager{version: version}
}

// Version returns the version written by Save.
func (m *Manager) Version() uint32 {
	return m.version
}

// Save writes the header followed by fields.
func (m *Manager) Save(w io.Writer, fields []int32) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(fields))); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return binary.Write(w, binary.LittleEndian, fields)
}

// Load reads state written by Save and returns its version and fields.
// Older versions are accepted; callers fill in fields they lack.
func (m *Manager) Load(r io.Reader) (uint32, []int32, error) {
	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, fmt.Errorf("state: reading header: %w", err)
	}
	if string(header) != Magic {
		return 0, nil, ErrBadMagic
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return 0, nil, fmt.Errorf("state: reading version: %w", err)
	}
	if version > m.version {
		return 0, nil, fmt.Errorf("%w: %d, supported %d", ErrTooNew, version, m.version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, nil, fmt.Errorf("state: reading field count: %w", err)
	}
	if count > maxFields {
		return 0, nil, fmt.Errorf("state: %d fields exceeds limit of %d", count, maxFields)
	}

	fields := make([]int32, count)
	if count == 0 {
		return version, fields, nil
	}
	if err := binary.Read(r, binary.LittleEndian, fields); err != nil {
		return 0, nil, fmt.Errorf("state: reading fields: %w", err)
	}
	return version, fields, nil
}
