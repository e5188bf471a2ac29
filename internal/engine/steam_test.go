package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

const steamFixture = `<html><body>
<a href="https://store.steampowered.com/app/999/Header_Link/">not in the result container</a>
<div id="search_result_container">
	<a href="https://store.steampowered.com/app/220/HalfLife_2/?snr=1_7_7_151_150_1" data-ds-appid="220" class="search_result_row">
		<div class="col search_capsule"><img src="https://cdn.akamai.steamstatic.com/steam/apps/220/capsule_sm_120.jpg"></div>
		<div class="responsive_search_name_combined">
			<div class="col search_name ellipsis">
				<span class="title">Half-Life 2</span>
				<div>
					<span class="platform_img win"></span>
					<span class="platform_img mac"></span>
					<span class="platform_img linux"></span>
					<span class="vr_supported">VR</span>
				</div>
				<div><span class="platform_img win steamplay"></span></div>
			</div>
			<div class="col search_released responsive_secondrow"> 16 Nov, 2004 </div>
			<div class="col search_price_discount_combined" data-price-final="1999">
				<div class="col search_price">$19.99</div>
			</div>
		</div>
	</a>
	<a href="https://store.steampowered.com/bundle/232/Valve_Complete_Pack/" data-ds-bundleid="232">
		<span class="title">Valve Complete Pack</span>
	</a>
	<a href="https://store.steampowered.com/app/400/Portal/#reviews" data-ds-appid="400">
		<span class="title">Portal</span>
		<div class="col search_price_discount_combined" data-price-final="999"></div>
	</a>
	<a href="https://store.steampowered.com/app/70/HalfLife/">
		<span class="title">Half-Life</span>
		<div class="col search_price_discount_combined" data-price-final="free"></div>
	</a>
</div>
<script>document.write('<div id="search_result_container"><a href="https://store.steampowered.com/app/1/Injected/">x</a></div>')</script>
</body></html>`

func TestSteamExtract(t *testing.T) {
	games, err := steamAdapter{}.Extract(decodeFixture(t, provider.DataTypeMarkup, steamFixture))
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, []string{"Half-Life 2", "Portal", "Half-Life"}, titles(games))

	assert.Equal(t, Game{
		ID:          "220",
		Title:       "Half-Life 2",
		URL:         "https://store.steampowered.com/app/220/HalfLife_2/",
		Image:       "https://cdn.akamai.steamstatic.com/steam/apps/220/capsule_sm_120.jpg",
		Price:       "$19.99",
		Platforms:   []Platform{PlatformWindows, PlatformMac, PlatformLinux},
		ReleaseDate: "16 Nov, 2004",
	}, games[0])

	assert.Equal(t, Game{
		ID:    "400",
		Title: "Portal",
		URL:   "https://store.steampowered.com/app/400/Portal/",
		Price: "$9.99",
	}, games[1])

	assert.Equal(t, Game{
		Title: "Half-Life",
		URL:   "https://store.steampowered.com/app/70/HalfLife/",
	}, games[2])
}

func TestSteamNoResults(t *testing.T) {
	in := decodeFixture(t, provider.DataTypeMarkup, `<div id="search_result_container">
		<div class="search_results_count">0 results match your search.</div>
		<a href="https://store.steampowered.com/search/?term=zzz">Search again</a>
	</div>`)
	_, err := steamAdapter{}.Extract(in)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSteamRequiresDocument(t *testing.T) {
	_, err := steamAdapter{}.Extract(Decoded{JSON: map[string]any{}})
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestSteamPriceAndURL(t *testing.T) {
	in := decodeFixture(t, provider.DataTypeMarkup, `<div id="search_result_container">
		<a href="https://store.steampowered.com/app/123?foo=bar#frag">
			<div class="search_price_discount_combined" data-price-final="1999"></div>
		</a>
		<a href="https://store.steampowered.com/app/124">
			<div class="search_price_discount_combined" data-price-final="2000"></div>
		</a>
	</div>`)
	games, err := steamAdapter{}.Extract(in)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "$19.99", games[0].Price)
	assert.Equal(t, "https://store.steampowered.com/app/123", games[0].URL)
	assert.Equal(t, "$20", games[1].Price)
}
