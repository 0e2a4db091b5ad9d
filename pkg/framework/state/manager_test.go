package state

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	m := NewManager(2)

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf, []int32{512, 1, -7}))
	assert.Equal(t, len(Magic)+4+4+3*4, buf.Len())

	version, fields, err := m.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), version)
	assert.Equal(t, []int32{512, 1, -7}, fields)
}

func TestLoadOlderVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewManager(1).Save(&buf, []int32{64}))

	version, fields, err := NewManager(3).Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), version)
	assert.Equal(t, []int32{64}, fields)
}

func TestLoadErrors(t *testing.T) {
	var newer bytes.Buffer
	require.NoError(t, NewManager(9).Save(&newer, nil))

	var truncated bytes.Buffer
	require.NoError(t, NewManager(1).Save(&truncated, []int32{1, 2}))
	truncated.Truncate(truncated.Len() - 2)

	tests := []struct {
		name string
		data []byte
		is   error
	}{
		{"empty", nil, nil},
		{"bad magic", []byte("VST3GO\x01\x00\x00\x00"), ErrBadMagic},
		{"too new", newer.Bytes(), ErrTooNew},
		{"truncated", truncated.Bytes(), nil},
		{"huge count", append([]byte(Magic), 1, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewManager(1).Load(bytes.NewReader(tt.data))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
