package mcp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	req := makeRequest(map[string]any{"level": float64(3), "limit": float64(10), "ignored": "x"})

	got, err := decode[ListRequest](req)
	require.NoError(t, err)
	require.NotNil(t, got.Level)
	require.Equal(t, 3, *got.Level)
	require.Equal(t, 10, got.Limit)
	require.Equal(t, 0, got.Offset)
}

func TestDecode_NoArguments(t *testing.T) {
	got, err := decode[ReviewRequest](makeRequest(nil))
	require.NoError(t, err)
	require.Nil(t, got.Correct)
	require.Empty(t, got.ID)
}

func TestDecode_WrongType(t *testing.T) {
	_, err := decode[ReviewRequest](makeRequest(map[string]any{"correct": "yes"}))
	require.Error(t, err)
}

func TestDecode_FractionalIntRejected(t *testing.T) {
	_, err := decode[ListRequest](makeRequest(map[string]any{"limit": 2.5}))
	require.Error(t, err)
}
