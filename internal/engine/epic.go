package engine

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

const (
	epicHost          = "https://www.epicgames.com"
	epicProductPrefix = "/store/en-US/product/"
	epicCDNPrefix     = "https://cdn1.epicgames.com/"
)

// epicAdapter Epic Games 商店的 HTML 搜索页。结果为指向商品页的 a 元素。
type epicAdapter struct{}

func (epicAdapter) ID() string { return "epic" }

func (epicAdapter) Extract(in Decoded) ([]Game, error) {
	if in.Doc == nil {
		return nil, fmt.Errorf("%w: epic expects an HTML document", ErrUnexpectedShape)
	}

	cards := in.Doc.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return hasAttrPrefix(a, "href", epicProductPrefix)
	})
	if cards.Length() == 0 {
		return nil, ErrNoResults
	}

	games := make([]Game, 0, cards.Length())
	cards.Each(func(_ int, a *goquery.Selection) {
		games = append(games, Game{
			Title: first(text(a, "h3")),
			URL:   first(prefixed(epicHost, attr(a, "", "href"))),
			Image: first(attrWithPrefix(a, "img", "src", epicCDNPrefix)),
			Price: first(textWhereAttrPrefix(a, "span", "class", "StoreCard-price")),
		})
	})
	return games, nil
}
