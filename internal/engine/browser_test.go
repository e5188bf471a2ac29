package engine

import (
	"context"
	"testing"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffyan/go-game-search-mcp/internal/config"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

func TestCheckDocumentStatus(t *testing.T) {
	tests := []struct {
		name    string
		resp    *network.Response
		wantErr bool
	}{
		{name: "ok", resp: &network.Response{Status: 200, StatusText: "OK"}},
		{name: "no content", resp: &network.Response{Status: 204}},
		{name: "redirect page", resp: &network.Response{Status: 302, StatusText: "Found"}, wantErr: true},
		{name: "forbidden", resp: &network.Response{Status: 403, StatusText: "Forbidden"}, wantErr: true},
		{name: "not found", resp: &network.Response{Status: 404, StatusText: "Not Found"}, wantErr: true},
		{name: "server error", resp: &network.Response{Status: 503}, wantErr: true},
		{name: "missing response", resp: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDocumentStatus("epic", tt.resp)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFetch)
			assert.Equal(t, KindNetworkOrParseFailure, Classify(err).Kind)
		})
	}
}

// 浏览器渲染的错误页应归为网络失败，而不是空结果
func TestBrowserErrorPageIsNetworkFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Browser.Enabled = true
	cfg.Browser.Providers = []string{"epic"}

	statusErr := checkDocumentStatus("epic", &network.Response{Status: 404, StatusText: "Not Found"})
	httpFetcher := &stubFetcher{}
	browser := &stubFetcher{err: statusErr}
	m := NewManager(cfg, provider.Default(), WithFetcher(httpFetcher), WithBrowserFetcher(browser))

	_, err := m.Search(context.Background(), "epic", "hades")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetworkOrParseFailure))
	assert.ErrorIs(t, err, ErrFetch)
	assert.Equal(t, 1, browser.calls)
	assert.Zero(t, httpFetcher.calls)
}
