package mcp

import (
	"github.com/cliffyan/go-game-search-mcp/internal/config"
)

// GetTools 获取所有 MCP 工具定义
func GetTools(cfg *config.Config, providerKeys []string) []Tool {
	return []Tool{
		{
			Name:        cfg.MCP.Tools.SearchName,
			Description: cfg.MCP.Tools.SearchDescription,
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"provider": {
						Type:        "string",
						Description: "Which store to search. Default uses the configured default provider.",
						Default:     cfg.Search.DefaultProvider,
						Enum:        providerKeys,
					},
					"query": {
						Type:        "string",
						Description: "The game to search for",
					},
					"format": {
						Type:        "string",
						Description: "messages (default) returns up to 5 chat-ready results; json returns every result",
						Default:     formatMessages,
						Enum:        []string{formatMessages, formatJSON},
					},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        cfg.MCP.Tools.ListProvidersName,
			Description: cfg.MCP.Tools.ListProvidersDescription,
			InputSchema: InputSchema{
				Type:       "object",
				Properties: map[string]Property{},
			},
		},
	}
}
