package engine

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(v string) rule { return func() string { return v } }

func TestFirstPicksFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", first(constant(""), constant("b"), constant("c")))
	assert.Equal(t, "", first(constant(""), constant("")))
	assert.Equal(t, "", first())
}

func TestRuleCombinators(t *testing.T) {
	assert.Equal(t, "https://x/a", prefixed("https://x", constant("/a"))())
	assert.Equal(t, "", prefixed("https://x", constant(""))())
	assert.Equal(t, "img_304.jpg", suffixed(constant("img"), "_304.jpg")())
	assert.Equal(t, "", suffixed(constant(""), "_304.jpg")())

	assert.Equal(t, "https://store.example/app/123", withoutQuery(constant("https://store.example/app/123?foo=bar#frag"))())
	assert.Equal(t, "https://store.example/app/123", withoutQuery(constant("https://store.example/app/123#frag?x"))())
	assert.Equal(t, "https://store.example/app/123", withoutQuery(constant("https://store.example/app/123"))())
}

func TestHTMLRules(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div id="card" data-id=" 42 ">
			<img src="https://other.cdn/a.png"><img src="https://cdn.example/b.png">
			<span class="label">x</span><span class="price-final"> $5 </span>
			<h3>  Title  </h3>
		</div>`))
	require.NoError(t, err)
	card := doc.Find("#card")

	assert.Equal(t, "Title", text(card, "h3")())
	assert.Equal(t, "", text(card, "h4")())
	assert.Equal(t, "42", attr(card, "", "data-id")())
	assert.Equal(t, "", attr(card, "", "data-missing")())
	assert.Equal(t, "https://cdn.example/b.png", attrWithPrefix(card, "img", "src", "https://cdn.example/")())
	assert.Equal(t, "", attrWithPrefix(card, "img", "src", "https://nowhere/")())
	assert.Equal(t, "$5", textWhereAttrPrefix(card, "span", "class", "price")())
}

func TestJSONRules(t *testing.T) {
	v := map[string]any{
		"title": " Name ",
		"price": map[string]any{"amount": 19.99, "whole": float64(20)},
		"tiers": []any{4.5, "x"},
		"os":    []any{"linux", 3, "mac"},
		"flag":  true,
	}

	assert.Equal(t, "Name", jsonText(v, "title")())
	assert.Equal(t, "19.99", jsonText(v, "price", "amount")())
	assert.Equal(t, "20", jsonText(v, "price", "whole")())
	assert.Equal(t, "4.5", jsonText(v, "tiers", 0)())
	assert.Equal(t, "", jsonText(v, "tiers", 5)())
	assert.Equal(t, "", jsonText(v, "title", "nested")())
	assert.Equal(t, "", jsonText(v, "flag")())
	assert.Equal(t, "0", jsonText(map[string]any{"n": float64(0)}, "n")())
	assert.Equal(t, "", jsonTruthyText(map[string]any{"n": float64(0)}, "n")())
	assert.Equal(t, "0", jsonTruthyText(map[string]any{"n": "0"}, "n")())
	assert.Equal(t, "19.99", jsonTruthyText(v, "price", "amount")())
	assert.Equal(t, []string{"linux", "mac"}, jsonStrings(v, "os"))
	assert.Nil(t, jsonStrings(v, "missing"))

	_, ok := jsonItems(v, "title")
	assert.False(t, ok)
	items, ok := jsonItems(v, "tiers")
	assert.True(t, ok)
	assert.Len(t, items, 2)
}

func TestNormalizePlatforms(t *testing.T) {
	got := normalizePlatforms([]string{"win", "platform_img", "mac", "win", "linux", "mac", "steamplay"}, steamPlatforms)
	assert.Equal(t, []Platform{PlatformWindows, PlatformMac, PlatformLinux}, got)

	got = normalizePlatforms([]string{"windows", "Windows", "ps4", "android", "ios", "windows"}, canonicalPlatforms)
	assert.Equal(t, []Platform{PlatformWindows, PlatformAndroid, PlatformIOS}, got)

	assert.Nil(t, normalizePlatforms(nil, canonicalPlatforms))
}
