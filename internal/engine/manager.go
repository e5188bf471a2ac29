package engine

import (
	"context"
	"fmt"

	"github.com/cliffyan/go-game-search-mcp/internal/config"
	"github.com/cliffyan/go-game-search-mcp/internal/logger"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

// Manager 搜索入口：拉取 -> 解码 -> 提取 -> 错误归类。可并发使用。
type Manager struct {
	config   *config.Config
	registry *provider.Registry
	adapters map[string]Adapter
	fetcher  Fetcher
	browser  Fetcher
}

// Option Manager 可选项
type Option func(*Manager)

// WithFetcher 替换默认的 HTTP 拉取器
func WithFetcher(f Fetcher) Option {
	return func(m *Manager) { m.fetcher = f }
}

// WithBrowserFetcher 替换浏览器拉取器
func WithBrowserFetcher(f Fetcher) Option {
	return func(m *Manager) { m.browser = f }
}

// NewManager 创建搜索管理器。registry 只读共享，不会被修改。
func NewManager(cfg *config.Config, registry *provider.Registry, opts ...Option) *Manager {
	m := &Manager{
		config:   cfg,
		registry: registry,
		adapters: Adapters,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.fetcher == nil {
		m.fetcher = NewHTTPFetcher(HTTPOptions{
			ProxyURL:          cfg.ProxyURL(),
			UserAgent:         cfg.Search.UserAgent,
			RequestsPerSecond: cfg.Search.RequestsPerSecond,
		})
	}
	if m.browser == nil && cfg.Browser.Enabled {
		m.browser = NewBrowserFetcher(cfg.ProxyURL(), cfg.Browser.Headless)
	}

	logger.Log.Infof("✅ Initialized %d provider(s)", len(m.Providers()))
	return m
}

// Providers 返回允许使用的提供方
func (m *Manager) Providers() []*provider.Descriptor {
	var out []*provider.Descriptor
	for _, d := range m.registry.Descriptors() {
		if m.config.IsProviderAllowed(d.Key) {
			out = append(out, d)
		}
	}
	return out
}

// Lookup 按 key 查找允许使用的提供方
func (m *Manager) Lookup(key string) (*provider.Descriptor, bool) {
	d, ok := m.registry.Lookup(key)
	if !ok || !m.config.IsProviderAllowed(d.Key) {
		return nil, false
	}
	return d, true
}

// Search 在指定提供方搜索。成功时返回完整的有序结果，失败时返回 *SearchError。
func (m *Manager) Search(ctx context.Context, providerKey, query string) ([]Game, error) {
	d, ok := m.Lookup(providerKey)
	if !ok {
		return nil, m.fail(providerKey, fmt.Errorf("%w: %s", ErrUnknownProvider, providerKey))
	}

	games, err := m.search(ctx, d, query)
	if err != nil {
		return nil, m.fail(d.ID, err)
	}

	logger.Log.Infof("✅ [%s] %q returned %d result(s)", d.ID, query, len(games))
	return games, nil
}

func (m *Manager) search(ctx context.Context, d *provider.Descriptor, query string) ([]Game, error) {
	adapter, ok := m.adapters[d.ID]
	if !ok {
		return nil, fmt.Errorf("%w: no adapter for %s", ErrUnknownProvider, d.ID)
	}

	body, err := m.fetcherFor(d).Fetch(ctx, d, query)
	if err != nil {
		return nil, err
	}

	decoded, err := Decode(d, body)
	if err != nil {
		return nil, err
	}

	return extract(adapter, decoded)
}

func (m *Manager) fetcherFor(d *provider.Descriptor) Fetcher {
	if m.browser != nil && m.config.UsesBrowser(d.Key) {
		return m.browser
	}
	return m.fetcher
}

func (m *Manager) fail(id string, err error) *SearchError {
	se := Classify(err)
	if se.Kind == KindEmptyResult {
		logger.Log.Infof("🔍 [%s] %v", id, err)
	} else {
		logger.Log.Errorf("❌ [%s] search failed: %v", id, err)
	}
	return se
}

// extract 调用提取器，并将其中的 panic 转为 ErrUnexpectedShape
func extract(a Adapter, in Decoded) (games []Game, err error) {
	defer func() {
		if r := recover(); r != nil {
			games = nil
			err = fmt.Errorf("%w: %s adapter panicked: %v", ErrUnexpectedShape, a.ID(), r)
		}
	}()
	return a.Extract(in)
}
