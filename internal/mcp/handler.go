package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cliffyan/go-game-search-mcp/internal/config"
	"github.com/cliffyan/go-game-search-mcp/internal/engine"
	"github.com/cliffyan/go-game-search-mcp/internal/logger"
)

const MCPVersion = "2024-11-05"

const (
	formatMessages = "messages"
	formatJSON     = "json"
)

// Handler MCP 请求处理器
type Handler struct {
	config  *config.Config
	manager *engine.Manager
}

// NewHandler 创建 MCP 处理器
func NewHandler(cfg *config.Config, m *engine.Manager) *Handler {
	return &Handler{config: cfg, manager: m}
}

// HandleRequest 处理 MCP JSON-RPC 请求
func (h *Handler) HandleRequest(ctx context.Context, req JSONRPCRequest) JSONRPCResponse {
	logger.Log.Debugf("📥 MCP Request: method=%s, id=%v", req.Method, req.ID)

	var result any
	var rpcErr *RPCError

	switch req.Method {
	case "initialize":
		result = InitializeResult{
			ProtocolVersion: MCPVersion,
			Capabilities:    Capability{Tools: ToolCapability{ListChanged: false}},
			ServerInfo:      ServerInfo{Name: h.config.MCP.ServerName, Version: h.config.MCP.ServerVersion},
		}
	case "notifications/initialized":
		return JSONRPCResponse{}
	case "ping":
		result = struct{}{}
	case "tools/list":
		result = ListToolsResult{Tools: GetTools(h.config, h.providerKeys())}
	case "tools/call":
		result, rpcErr = h.handleToolsCall(ctx, req.Params)
	case "resources/list":
		result = ListResourcesResult{Resources: []any{}}
	case "prompts/list":
		result = ListPromptsResult{Prompts: []any{}}
	default:
		rpcErr = &RPCError{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown method: %s", req.Method)}
	}

	if rpcErr != nil {
		logger.Log.Warnf("❌ MCP Error: %s", rpcErr.Message)
		return JSONRPCResponse{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}
	return JSONRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func (h *Handler) handleToolsCall(ctx context.Context, params any) (*CallToolResult, *RPCError) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, &RPCError{Code: CodeInvalidParams, Message: fmt.Sprintf("failed to marshal params: %v", err)}
	}
	var call CallToolParams
	if err := json.Unmarshal(raw, &call); err != nil {
		return nil, &RPCError{Code: CodeInvalidParams, Message: fmt.Sprintf("failed to unmarshal params: %v", err)}
	}

	logger.Log.Infof("🔧 Tool call: name=%s, args=%v", call.Name, call.Arguments)

	switch call.Name {
	case h.config.MCP.Tools.SearchName:
		return h.handleSearch(ctx, call.Arguments), nil
	case h.config.MCP.Tools.ListProvidersName:
		return h.handleListProviders(), nil
	default:
		return errorResult(fmt.Sprintf("Unknown tool: %s", call.Name)), nil
	}
}

func (h *Handler) handleSearch(ctx context.Context, args map[string]any) *CallToolResult {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return errorResult("query is required")
	}

	key, _ := args["provider"].(string)
	if key == "" {
		key = h.config.Search.DefaultProvider
	}
	d, ok := h.manager.Lookup(key)
	if !ok {
		return errorResult(fmt.Sprintf("Sorry, I can't search %q. Try one of: %s", key, strings.Join(h.providerKeys(), ", ")))
	}

	format, _ := args["format"].(string)
	if format == "" {
		format = formatMessages
	}
	if format != formatMessages && format != formatJSON {
		return errorResult(fmt.Sprintf("unsupported format: %s", format))
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout())
	defer cancel()

	games, err := h.manager.Search(ctx, d.Key, query)
	if err != nil {
		return errorResult(err.Error())
	}

	if format == formatJSON {
		out, err := json.MarshalIndent(games, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("Failed to format results: %v", err))
		}
		return &CallToolResult{Content: []ContentItem{{Type: "text", Text: string(out)}}}
	}

	messages := ComposeMessages(d, query, games)
	content := make([]ContentItem, 0, len(messages))
	for _, m := range messages {
		content = append(content, ContentItem{Type: "text", Text: m.Markdown()})
	}
	return &CallToolResult{Content: content}
}

func (h *Handler) handleListProviders() *CallToolResult {
	var b strings.Builder
	b.WriteString("I can find games at:\n")
	for _, d := range h.manager.Providers() {
		fmt.Fprintf(&b, "\n  • `%s` (%s)", d.Key, d.Name)
	}
	return &CallToolResult{Content: []ContentItem{{Type: "text", Text: b.String()}}}
}

// providerKeys 允许使用的提供方 key
func (h *Handler) providerKeys() []string {
	providers := h.manager.Providers()
	keys := make([]string, 0, len(providers))
	for _, d := range providers {
		keys = append(keys, d.Key)
	}
	return keys
}

func errorResult(text string) *CallToolResult {
	return &CallToolResult{
		Content: []ContentItem{{Type: "text", Text: text}},
		IsError: true,
	}
}
