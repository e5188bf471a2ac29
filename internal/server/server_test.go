package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffyan/go-game-search-mcp/internal/config"
	"github.com/cliffyan/go-game-search-mcp/internal/engine"
	"github.com/cliffyan/go-game-search-mcp/internal/mcp"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *httptest.Server) {
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": [{"title": "Gwent", "url": "/game/gwent"}]}`))
	}))
	t.Cleanup(store.Close)

	registry := provider.NewRegistry([]provider.Descriptor{{
		Key:            "gog",
		ID:             "gog",
		Name:           "GOG",
		DataType:       provider.DataTypeStructured,
		QueryTemplate:  store.URL + "/?q={query}",
		SearchTemplate: "https://www.gog.com/games?search={query}",
	}}, nil)

	s := New(cfg, engine.NewManager(cfg, registry))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func postRPC(t *testing.T, url string, body string, headers map[string]string) (*http.Response, mcp.JSONRPCResponse) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/mcp", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out mcp.JSONRPCResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestInitializeCreatesSession(t *testing.T) {
	s, ts := newTestServer(t, config.Default())

	resp, out := postRPC(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, out.Error)

	id := resp.Header.Get(sessionHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.True(t, s.hasSession(id))

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/mcp", nil)
	req.Header.Set(sessionHeader, id)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusOK, delResp.StatusCode)
	assert.False(t, s.hasSession(id))
}

func TestToolCallOverHTTP(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	_, out := postRPC(t, ts.URL, `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"search_games","arguments":{"provider":"gog","query":"gwent"}}}`, nil)
	require.Nil(t, out.Error)
	assert.EqualValues(t, 7, out.ID)

	raw, err := json.Marshal(out.Result)
	require.NoError(t, err)
	var result mcp.CallToolResult
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result.Content, 1)
	assert.Equal(t, "**[Gwent](https://www.gog.com/game/gwent)**", result.Content[0].Text)
}

func TestMalformedRequestAndNotification(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	_, out := postRPC(t, ts.URL, `{not json`, nil)
	require.NotNil(t, out.Error)
	assert.Equal(t, mcp.CodeParseError, out.Error.Code)

	resp, _ := postRPC(t, ts.URL, `{"jsonrpc":"2.0","method":"notifications/initialized"}`, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestStreamRequiresKnownSession(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	resp, err := http.Get(ts.URL + "/mcp")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/mcp", nil)
	req.Header.Set(sessionHeader, "unknown")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, []any{"gog"}, body["providers"])
}

func TestCORS(t *testing.T) {
	cfg := config.Default()
	cfg.Server.CORS.Enabled = true
	cfg.Server.CORS.Origin = "https://chat.example"
	_, ts := newTestServer(t, cfg)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	req.Header.Set("Origin", "https://chat.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://chat.example", resp.Header.Get("Access-Control-Allow-Origin"))
}
