package ladder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labeledLadder() Ladder {
	return Ladder{
		Columns: 3,
		Levels:  1,
		Rungs:   []Rung{{Level: 0, LeftColumn: 0}},
		Bottom:  []string{"あたり", "はずれ", "はずれ"},
	}
}

func TestMarshalCanonical(t *testing.T) {
	got, err := MarshalCanonical(labeledLadder())
	require.NoError(t, err)
	assert.Equal(t,
		`{"bottom":["あたり","はずれ","はずれ"],"columns":3,"levels":1,"rungs":[{"leftColumn":0,"level":0}]}`,
		string(got))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	l := Ladder{Columns: 2, Levels: 1, Bottom: []string{"<b>&</b>", `"q"`}}
	got, err := MarshalCanonical(l)
	require.NoError(t, err)
	assert.Equal(t, `{"bottom":["<b>&</b>","\"q\""],"columns":2,"levels":1,"rungs":[]}`, string(got))
}

func TestID_KnownValues(t *testing.T) {
	id, err := ID(labeledLadder())
	require.NoError(t, err)
	assert.Equal(t, "431706c53883fb4755205aa4e2181d0cf03f6fdff01b42847ea939b81d493016", id)

	id, err = ID(Ladder{Columns: 2, Levels: 1})
	require.NoError(t, err)
	assert.Equal(t, "ea7d9c90123ae30375807706efbb28d3ae820fb9da7c413591e0c980d8f7708c", id)
}

func TestID_IgnoresTopLabels(t *testing.T) {
	a := labeledLadder()
	b := labeledLadder()
	b.Top = []string{"alice", "bob", "carol"}

	idA, err := ID(a)
	require.NoError(t, err)
	idB, err := ID(b)
	require.NoError(t, err)
	assert.Equal(t, idA, idB)
}

func TestID_IgnoresRungOrder(t *testing.T) {
	a := Ladder{Columns: 5, Levels: 3, Rungs: []Rung{{0, 0}, {0, 2}, {2, 3}}}
	b := Ladder{Columns: 5, Levels: 3, Rungs: []Rung{{2, 3}, {0, 2}, {0, 0}}}

	idA, err := ID(a)
	require.NoError(t, err)
	idB, err := ID(b)
	require.NoError(t, err)
	assert.Equal(t, idA, idB)
}

func TestID_NormalizesLabels(t *testing.T) {
	composed := Ladder{Columns: 2, Levels: 1, Bottom: []string{"\u304c", "x"}}
	decomposed := Ladder{Columns: 2, Levels: 1, Bottom: []string{"\u304b\u3099", "x"}}

	idA, err := ID(composed)
	require.NoError(t, err)
	idB, err := ID(decomposed)
	require.NoError(t, err)
	assert.Equal(t, idA, idB)
}

func TestID_ChangesWithBoard(t *testing.T) {
	base, err := ID(labeledLadder())
	require.NoError(t, err)

	moved := labeledLadder()
	moved.Rungs = []Rung{{Level: 0, LeftColumn: 1}}
	other, err := ID(moved)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	relabeled := labeledLadder()
	relabeled.Bottom[2] = "あたり"
	other, err = ID(relabeled)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}

func TestSortRungs_DoesNotMutate(t *testing.T) {
	in := []Rung{{2, 0}, {0, 1}, {0, 0}}
	out := SortRungs(in)
	assert.Equal(t, []Rung{{0, 0}, {0, 1}, {2, 0}}, out)
	assert.Equal(t, []Rung{{2, 0}, {0, 1}, {0, 0}}, in)
}
