package engine

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

const itchTitleLink = ".game_cell_data > .game_title > a"

// itchAdapter itch.io 的 HTML 搜索页。每个结果是带 data-game_id 的 div，ID 取自该属性。
type itchAdapter struct{}

func (itchAdapter) ID() string { return "itch" }

func (itchAdapter) Extract(in Decoded) ([]Game, error) {
	if in.Doc == nil {
		return nil, fmt.Errorf("%w: itch expects an HTML document", ErrUnexpectedShape)
	}

	cells := in.Doc.Find("div[data-game_id]")
	if cells.Length() == 0 {
		return nil, ErrNoResults
	}

	games := make([]Game, 0, cells.Length())
	cells.Each(func(_ int, div *goquery.Selection) {
		games = append(games, Game{
			ID:    first(attr(div, "", "data-game_id")),
			Title: first(text(div, itchTitleLink)),
			URL:   first(attr(div, itchTitleLink, "href")),
			Image: first(attr(div, "a > div", "data-background_image")),
			Price: first(text(div, ".price_value")),
		})
	})
	return games, nil
}
