package engine

import (
	"fmt"
	"time"
)

const (
	gogHost          = "https://www.gog.com"
	gogImageSuffix   = "_product_tile_304.jpg"
	gogImageProtocol = "https:"
)

// gogAdapter GOG 的 JSON 接口，结果位于 products 数组
type gogAdapter struct{}

func (gogAdapter) ID() string { return "gog" }

func (gogAdapter) Extract(in Decoded) ([]Game, error) {
	items, ok := jsonItems(in.JSON, "products")
	if !ok {
		return nil, fmt.Errorf("%w: gog response has no products array", ErrUnexpectedShape)
	}
	if len(items) == 0 {
		return nil, ErrNoResults
	}

	games := make([]Game, 0, len(items))
	for _, item := range items {
		games = append(games, Game{
			ID:          first(jsonTruthyText(item, "id")),
			Title:       first(jsonText(item, "title")),
			URL:         first(prefixed(gogHost, jsonText(item, "url"))),
			Image:       first(prefixed(gogImageProtocol, suffixed(jsonText(item, "image"), gogImageSuffix))),
			Price:       first(gogPrice(item)),
			Platforms:   normalizePlatforms(jsonStrings(item, "supportedOperatingSystems"), canonicalPlatforms),
			ReleaseDate: first(gogReleaseDate(item)),
		})
	}
	return games, nil
}

// gogPrice 货币符号与 finalAmount 都存在时拼接；finalAmount 为 0 时不输出价格
func gogPrice(item any) rule {
	return func() string {
		symbol := jsonText(item, "price", "symbol")()
		amount := jsonTruthyText(item, "price", "finalAmount")()
		if symbol == "" || amount == "" {
			return ""
		}
		return symbol + amount
	}
}

// gogReleaseDate releaseDate 为 Unix 秒，按 UTC 输出；月份不补零，日期补零到两位
func gogReleaseDate(item any) rule {
	return func() string {
		secs, ok := lookup(item, "releaseDate").(float64)
		if !ok || secs == 0 {
			return ""
		}
		t := time.Unix(int64(secs), 0).UTC()
		return fmt.Sprintf("%d-%d-%02d", t.Year(), int(t.Month()), t.Day())
	}
}
