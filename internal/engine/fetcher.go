package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/cliffyan/go-game-search-mcp/internal/logger"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher 拉取提供方的原始响应体
type Fetcher interface {
	Fetch(ctx context.Context, d *provider.Descriptor, rawQuery string) ([]byte, error)
}

// HTTPFetcher 通过 net/http 发起单次 GET 请求，不重试
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// HTTPOptions HTTPFetcher 可选项
type HTTPOptions struct {
	ProxyURL  string
	UserAgent string
	// RequestsPerSecond 大于 0 时限制发出请求的速率
	RequestsPerSecond float64
}

// NewHTTPFetcher 创建 HTTPFetcher。客户端不设超时，由调用方通过 ctx 控制。
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	jar, _ := cookiejar.New(nil)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.ProxyURL != "" {
		if proxy, err := url.Parse(opts.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxy)
		} else {
			logger.Log.Warnf("⚠️ Ignoring invalid proxy URL %q: %v", opts.ProxyURL, err)
		}
	}

	f := &HTTPFetcher{
		client:    &http.Client{Jar: jar, Transport: transport},
		userAgent: opts.UserAgent,
	}
	if f.userAgent == "" {
		f.userAgent = defaultUserAgent
	}
	if opts.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return f
}

// Fetch 执行请求，传输错误与非 2xx 状态码都包装为 ErrFetch
func (f *HTTPFetcher) Fetch(ctx context.Context, d *provider.Descriptor, rawQuery string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %v", ErrFetch, err)
		}
	}

	target := d.QueryURL(rawQuery)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrFetch, err)
	}
	f.setHeaders(req, d.DataType)

	logger.Log.Debugf("🔍 [%s] GET %s", d.ID, target)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("%w: unexpected status code: %d, body: %s", ErrFetch, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}

	logger.Log.Debugf("🔍 [%s] response size: %d bytes", d.ID, len(body))
	return body, nil
}

func (f *HTTPFetcher) setHeaders(req *http.Request, dt provider.DataType) {
	req.Header.Set("User-Agent", f.userAgent)
	if dt == provider.DataTypeStructured {
		req.Header.Set("Accept", "application/json, text/plain, */*")
	} else {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
}
