package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

func decodeFixture(t *testing.T, dt provider.DataType, body string) Decoded {
	t.Helper()
	in, err := Decode(&provider.Descriptor{ID: "fixture", DataType: dt}, []byte(body))
	require.NoError(t, err)
	return in
}

func titles(games []Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title
	}
	return out
}
