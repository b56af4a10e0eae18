package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/amida/internal/ladder"
)

func TestResolve_Text(t *testing.T) {
	path := writeTemp(t, "l.json", threeColumnJSON)

	out, err := execute(t, "resolve", path, "--top", "alice,bob,carol")
	require.NoError(t, err)
	assert.Equal(t,
		"alice → はずれ\n"+
			"bob → あたり\n"+
			"carol → はずれ\n"+
			"\n"+
			"★ bob\n",
		out)
}

func TestResolve_UnnamedEntries(t *testing.T) {
	path := writeTemp(t, "l.json", threeColumnJSON)

	out, err := execute(t, "resolve", path)
	require.NoError(t, err)
	assert.Contains(t, out, "#1 → あたり\n")
	assert.Contains(t, out, "★ #1\n")
}

func TestResolve_JSON(t *testing.T) {
	path := writeTemp(t, "l.json", threeColumnJSON)

	out, err := execute(t, "--format", "json", "resolve", path, "--top", "alice,bob,carol")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   ResolveOutput `json:"data"`
		ID     string        `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.Data.ID, 64)
	assert.Equal(t, resp.Data.ID, resp.ID)
	require.Len(t, resp.Data.Outcomes, 3)
	assert.Equal(t, []ladder.Outcome{{Start: 1, End: 0, Entry: "bob", Result: "あたり"}}, resp.Data.Winners)
}

func TestResolve_TopCountMismatch(t *testing.T) {
	path := writeTemp(t, "l.json", threeColumnJSON)

	out, err := execute(t, "resolve", path, "--top", "alice,bob")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "--top has 2 names for 3 columns")
}

func TestResolve_ConflictingRungs(t *testing.T) {
	path := writeTemp(t, "bad.json", conflictingJSON)

	_, err := execute(t, "resolve", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
