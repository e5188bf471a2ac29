package mcp

import (
	"fmt"
	"strings"

	"github.com/cliffyan/go-game-search-mcp/internal/engine"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

// MaxMessages 单次回复的最大消息数（含“更多结果”消息）
const MaxMessages = 5

// Message 一条聊天消息，对应一个搜索结果或“更多结果”链接
type Message struct {
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Footer      string `json:"footer,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"`
}

// ComposeMessages 将结果转为消息。超过 MaxMessages 时保留前 MaxMessages-1 条，
// 最后一条为指向商店搜索页的链接。
func ComposeMessages(d *provider.Descriptor, query string, games []engine.Game) []Message {
	shown := games
	more := len(games) > MaxMessages
	if more {
		shown = games[:MaxMessages-1]
	}

	messages := make([]Message, 0, len(shown)+1)
	for _, g := range shown {
		messages = append(messages, Message{
			Title:       g.Title,
			URL:         g.URL,
			Description: g.Price,
			Thumbnail:   g.Image,
			Footer:      footer(g),
		})
	}

	if more {
		messages = append(messages, Message{
			AuthorName:  "More search results",
			AuthorURL:   d.SearchPageURL(query),
			Description: fmt.Sprintf("See more search results for _%s_ on **%s**", query, d.Name),
		})
	}
	return messages
}

func footer(g engine.Game) string {
	var parts []string
	if len(g.Platforms) > 0 {
		names := make([]string, len(g.Platforms))
		for i, p := range g.Platforms {
			names[i] = string(p)
		}
		parts = append(parts, strings.Join(names, ", "))
	}
	if g.ReleaseDate != "" {
		parts = append(parts, g.ReleaseDate)
	}
	return strings.Join(parts, " · ")
}

// Markdown 渲染为 Markdown 文本
func (m Message) Markdown() string {
	var b strings.Builder

	switch {
	case m.AuthorName != "" && m.AuthorURL != "":
		fmt.Fprintf(&b, "[%s](%s)\n", m.AuthorName, m.AuthorURL)
	case m.Title != "" && m.URL != "":
		fmt.Fprintf(&b, "**[%s](%s)**\n", m.Title, m.URL)
	case m.Title != "":
		fmt.Fprintf(&b, "**%s**\n", m.Title)
	case m.URL != "":
		fmt.Fprintf(&b, "%s\n", m.URL)
	}
	if m.Description != "" {
		b.WriteString(m.Description + "\n")
	}
	if m.Footer != "" {
		b.WriteString(m.Footer + "\n")
	}
	if m.Thumbnail != "" {
		fmt.Fprintf(&b, "![](%s)\n", m.Thumbnail)
	}
	return strings.TrimRight(b.String(), "\n")
}
