package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestDecodeJSON(t *testing.T) {
	var m movePayload
	require.NoError(t, DecodeJSON([]byte(`{"x":3,"y":4}`), &m))
	assert.Equal(t, movePayload{X: 3, Y: 4}, m)

	assert.Error(t, DecodeJSON([]byte(`{"x":3,"z":1}`), &m))
	assert.Error(t, DecodeJSON([]byte(`{"x":`), &m))

	m = movePayload{X: 9}
	require.NoError(t, DecodeJSON(nil, &m))
	require.NoError(t, DecodeJSON([]byte("  "), &m))
	assert.Equal(t, 9, m.X)
}
