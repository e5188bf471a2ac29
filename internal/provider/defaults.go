package provider

import "sync"

// 内置提供方
var builtin = []Descriptor{
	{
		Key:            "epic",
		ID:             "epic",
		Name:           "Epic Games",
		DataType:       DataTypeMarkup,
		QueryTemplate:  "https://www.epicgames.com/store/en-US/browse?q={query}&sortBy=relevancy&sortDir=DESC&count=40",
		SearchTemplate: "https://www.epicgames.com/store/en-US/browse?q={query}",
	},
	{
		Key:            "gog",
		ID:             "gog",
		Name:           "GOG",
		DataType:       DataTypeStructured,
		QueryTemplate:  "https://www.gog.com/games/ajax/filtered?mediaType=game&limit=50&search={query}",
		SearchTemplate: "https://www.gog.com/games?search={query}",
	},
	{
		Key:            "humble",
		ID:             "humble",
		Name:           "Humble Bundle",
		DataType:       DataTypeStructured,
		QueryTemplate:  "https://www.humblebundle.com/store/api/search?sort=bestselling&filter=all&request=1&search={query}",
		SearchTemplate: "https://www.humblebundle.com/store/search?sort=bestselling&search={query}",
	},
	{
		Key:            "itch",
		ID:             "itch",
		Name:           "itch.io",
		DataType:       DataTypeMarkup,
		QueryTemplate:  "https://itch.io/search?q={query}",
		SearchTemplate: "https://itch.io/search?q={query}",
	},
	{
		Key:            "steam",
		ID:             "steam",
		Name:           "Steam",
		DataType:       DataTypeMarkup,
		QueryTemplate:  "https://store.steampowered.com/search/?category1=998&term={query}",
		SearchTemplate: "https://store.steampowered.com/search/?term={query}",
	},
}

var builtinAliases = map[string]string{
	"epicgames":    "epic",
	"humblebundle": "humble",
	"itchio":       "itch",
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default 返回进程级内置注册表，首次调用时构建
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(builtin, builtinAliases)
	})
	return defaultRegistry
}
