package engine

import "fmt"

const (
	humbleStoreURL = "https://www.humblebundle.com/store/"
	humbleCurrency = "$"
)

// humbleAdapter Humble Bundle 的 JSON 接口，结果位于 results 数组。不提供 ID 与发售日期。
type humbleAdapter struct{}

func (humbleAdapter) ID() string { return "humble" }

func (humbleAdapter) Extract(in Decoded) ([]Game, error) {
	items, ok := jsonItems(in.JSON, "results")
	if !ok {
		return nil, fmt.Errorf("%w: humble response has no results array", ErrUnexpectedShape)
	}
	if len(items) == 0 {
		return nil, ErrNoResults
	}

	games := make([]Game, 0, len(items))
	for _, item := range items {
		games = append(games, Game{
			Title:     first(jsonText(item, "human_name")),
			URL:       first(prefixed(humbleStoreURL, jsonText(item, "human_url"))),
			Image:     first(jsonText(item, "standard_carousel_image")),
			Price:     first(prefixed(humbleCurrency, jsonText(item, "current_price", 0))),
			Platforms: normalizePlatforms(jsonStrings(item, "platforms"), canonicalPlatforms),
		})
	}
	return games, nil
}
