package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	steamAppPrefix = "https://store.steampowered.com/app/"
	steamCurrency  = "$"
)

// steamPlatforms Steam 平台图标的 class 名到规范标签
var steamPlatforms = map[string]Platform{
	"android": PlatformAndroid,
	"ios":     PlatformIOS,
	"linux":   PlatformLinux,
	"mac":     PlatformMac,
	"win":     PlatformWindows,
}

// steamAdapter Steam 商店的 HTML 搜索页
type steamAdapter struct{}

func (steamAdapter) ID() string { return "steam" }

func (steamAdapter) Extract(in Decoded) ([]Game, error) {
	if in.Doc == nil {
		return nil, fmt.Errorf("%w: steam expects an HTML document", ErrUnexpectedShape)
	}

	rows := in.Doc.Find("#search_result_container a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return hasAttrPrefix(a, "href", steamAppPrefix)
	})
	if rows.Length() == 0 {
		return nil, ErrNoResults
	}

	games := make([]Game, 0, rows.Length())
	rows.Each(func(_ int, a *goquery.Selection) {
		games = append(games, Game{
			ID:          first(attr(a, "", "data-ds-appid")),
			Title:       first(text(a, ".title")),
			URL:         first(withoutQuery(attr(a, "", "href"))),
			Image:       first(attr(a, "div > img", "src")),
			Price:       first(steamPrice(a)),
			Platforms:   steamPlatformTags(a),
			ReleaseDate: first(text(a, ".search_released")),
		})
	})
	return games, nil
}

// steamPrice data-price-final 以分为单位
func steamPrice(a *goquery.Selection) rule {
	return func() string {
		raw := attr(a, ".search_price_discount_combined", "data-price-final")()
		if raw == "" {
			return ""
		}
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ""
		}
		return steamCurrency + formatNumber(float64(cents)/100)
	}
}

// steamPlatformTags 合并结果内所有 span.platform_img 的 class 后再映射
func steamPlatformTags(a *goquery.Selection) []Platform {
	var classes []string
	a.Find("span.platform_img").Each(func(_ int, span *goquery.Selection) {
		class, _ := span.Attr("class")
		classes = append(classes, strings.Fields(class)...)
	})
	return normalizePlatforms(classes, steamPlatforms)
}
