package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/amida/internal/ladder"
)

func sampleLadder() ladder.Ladder {
	return ladder.Ladder{
		Columns: 3,
		Levels:  2,
		Rungs:   []ladder.Rung{{Level: 0, LeftColumn: 0}, {Level: 1, LeftColumn: 1}},
		Top:     []string{"a", "b", "c"},
		Bottom:  []string{"あたり", "はずれ", "はずれ"},
	}
}

func TestLadderRoundTrip(t *testing.T) {
	data, err := MarshalLadder(sampleLadder())
	require.NoError(t, err)

	got, err := UnmarshalLadder(data)
	require.NoError(t, err)
	assert.Equal(t, sampleLadder(), got)
}

func TestMarshal_Deterministic(t *testing.T) {
	a, err := MarshalLadder(sampleLadder())
	require.NoError(t, err)
	b, err := MarshalLadder(sampleLadder())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

func TestMarshal_UsesJSONFieldNames(t *testing.T) {
	data, err := MarshalLadder(ladder.Ladder{Columns: 2, Levels: 1, Rungs: []ladder.Rung{{Level: 0, LeftColumn: 0}}})
	require.NoError(t, err)

	diag, err := Diagnose(data)
	require.NoError(t, err)
	assert.Contains(t, diag, `"columns": 2`)
	assert.Contains(t, diag, `"leftColumn": 0`)
}

func TestUnmarshal_RejectsDuplicateKeys(t *testing.T) {
	// {"columns": 2, "columns": 3}
	data := []byte{0xa2, 0x67, 'c', 'o', 'l', 'u', 'm', 'n', 's', 0x02, 0x67, 'c', 'o', 'l', 'u', 'm', 'n', 's', 0x03}
	_, err := UnmarshalLadder(data)
	assert.Error(t, err)
}

func TestUnmarshal_Garbage(t *testing.T) {
	_, err := UnmarshalLadder([]byte{0xff, 0x00})
	assert.Error(t, err)
}
