package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

func TestHumbleExtract(t *testing.T) {
	body := `{"num_results": 2, "results": [
		{
			"human_name": "Hollow Knight",
			"human_url": "hollow-knight",
			"standard_carousel_image": "https://hb.imgix.net/hollow.jpg",
			"current_price": [14.99, "USD"],
			"platforms": ["windows", "mac", "linux", "mac"]
		},
		{
			"human_name": "Free Thing",
			"current_price": [],
			"platforms": "windows"
		}
	]}`

	games, err := humbleAdapter{}.Extract(decodeFixture(t, provider.DataTypeStructured, body))
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, Game{
		Title:     "Hollow Knight",
		URL:       "https://www.humblebundle.com/store/hollow-knight",
		Image:     "https://hb.imgix.net/hollow.jpg",
		Price:     "$14.99",
		Platforms: []Platform{PlatformWindows, PlatformMac, PlatformLinux},
	}, games[0])

	assert.Equal(t, Game{Title: "Free Thing"}, games[1])
}

func TestHumbleZeroPriceIsKept(t *testing.T) {
	body := `{"results": [{"human_name": "Free Weekend", "current_price": [0, "USD"]}]}`

	games, err := humbleAdapter{}.Extract(decodeFixture(t, provider.DataTypeStructured, body))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "$0", games[0].Price)
}

func TestHumbleEmptyAndMalformed(t *testing.T) {
	_, err := humbleAdapter{}.Extract(decodeFixture(t, provider.DataTypeStructured, `{"results": []}`))
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = humbleAdapter{}.Extract(decodeFixture(t, provider.DataTypeStructured, `{"results": null}`))
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}
