package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/amida/internal/ladder"
)

func TestRenderLadder(t *testing.T) {
	var buf bytes.Buffer
	RenderLadder(&buf, ladder.Ladder{
		Columns: 3,
		Levels:  2,
		Rungs:   []ladder.Rung{{Level: 0, LeftColumn: 0}, {Level: 1, LeftColumn: 1}},
		Top:     []string{"alice", "", "carol"},
		Bottom:  []string{"あたり", "はずれ", "はずれ"},
	})

	want := "0   1   2\n" +
		"|---|   |\n" +
		"|   |---|\n" +
		"top:    0:alice 1:- 2:carol\n" +
		"bottom: 0:あたり 1:はずれ 2:はずれ\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderLadder_NoLabels(t *testing.T) {
	var buf bytes.Buffer
	RenderLadder(&buf, ladder.Ladder{Columns: 2, Levels: 1, Top: []string{"", ""}})

	assert.Equal(t, "0   1\n|   |\n", buf.String())
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "(0,0) (1,0) (1,1)", formatPath(ladder.Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}))
	assert.Equal(t, "", formatPath(nil))
}
