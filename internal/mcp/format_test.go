package mcp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffyan/go-game-search-mcp/internal/engine"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

var steamDescriptor = &provider.Descriptor{
	Key:            "steam",
	ID:             "steam",
	Name:           "Steam",
	SearchTemplate: "https://store.steampowered.com/search/?term={query}",
}

func games(n int) []engine.Game {
	out := make([]engine.Game, n)
	for i := range out {
		out[i] = engine.Game{Title: fmt.Sprintf("Game %d", i+1), URL: fmt.Sprintf("https://store.example/app/%d", i+1)}
	}
	return out
}

func TestComposeMessagesUnderCap(t *testing.T) {
	for _, n := range []int{1, 4, MaxMessages} {
		msgs := ComposeMessages(steamDescriptor, "portal", games(n))
		require.Len(t, msgs, n)
		for i, m := range msgs {
			assert.Equal(t, fmt.Sprintf("Game %d", i+1), m.Title)
			assert.Empty(t, m.AuthorURL)
		}
	}
}

func TestComposeMessagesOverCap(t *testing.T) {
	msgs := ComposeMessages(steamDescriptor, "half life", games(12))
	require.Len(t, msgs, MaxMessages)

	for i, m := range msgs[:MaxMessages-1] {
		assert.Equal(t, fmt.Sprintf("Game %d", i+1), m.Title)
	}

	more := msgs[MaxMessages-1]
	assert.Equal(t, "More search results", more.AuthorName)
	assert.Equal(t, "https://store.steampowered.com/search/?term=half%20life", more.AuthorURL)
	assert.Equal(t, "See more search results for _half life_ on **Steam**", more.Description)
}

func TestMessageMarkdown(t *testing.T) {
	msgs := ComposeMessages(steamDescriptor, "hl", []engine.Game{{
		Title:       "Half-Life 2",
		URL:         "https://store.steampowered.com/app/220",
		Image:       "https://cdn.example/220.jpg",
		Price:       "$9.99",
		Platforms:   []engine.Platform{engine.PlatformWindows, engine.PlatformLinux},
		ReleaseDate: "16 Nov, 2004",
	}, {
		Price: "$1",
	}})
	require.Len(t, msgs, 2)

	assert.Equal(t, "**[Half-Life 2](https://store.steampowered.com/app/220)**\n$9.99\nwindows, linux · 16 Nov, 2004\n![](https://cdn.example/220.jpg)", msgs[0].Markdown())
	assert.Equal(t, "$1", msgs[1].Markdown())

	more := Message{AuthorName: "More search results", AuthorURL: "https://x/y", Description: "See more"}
	assert.Equal(t, "[More search results](https://x/y)\nSee more", more.Markdown())
}
