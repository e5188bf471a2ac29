package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/cliffyan/go-game-search-mcp/internal/logger"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

// BrowserManager 共享的无头浏览器进程（单例）
type BrowserManager struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	cancelFunc  context.CancelFunc
	mu          sync.Mutex
	initialized bool
}

var (
	browserManagerInstance *BrowserManager
	browserManagerOnce     sync.Once
)

// GetBrowserManager 获取浏览器管理器单例
func GetBrowserManager() *BrowserManager {
	browserManagerOnce.Do(func() {
		browserManagerInstance = &BrowserManager{}
	})
	return browserManagerInstance
}

// findChromePath 查找 Chrome 可执行文件路径
func findChromePath() string {
	var paths []string

	switch runtime.GOOS {
	case "darwin":
		paths = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	case "linux":
		paths = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	case "windows":
		paths = []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			os.Getenv("LOCALAPPDATA") + `\Google\Chrome\Application\chrome.exe`,
		}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Initialize 启动浏览器，重复调用无副作用
func (bm *BrowserManager) Initialize(proxyURL string, headless bool) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.initialized {
		return nil
	}

	// 查找 Chrome 路径
	chromePath := findChromePath()
	if chromePath == "" {
		return fmt.Errorf("Chrome/Chromium not found. Please install Chrome browser")
	}

	// 配置 Chrome 选项
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chromePath),
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		// 隐藏自动化特征
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		// 商店页按 en-US 渲染
		chromedp.Flag("lang", "en-US"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(defaultUserAgent),
	)
	if proxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(proxyURL))
		logger.Log.Infof("🌐 Browser using proxy: %s", proxyURL)
	}

	// 创建 allocator context
	bm.allocCtx, bm.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	// 创建 browser context
	bm.browserCtx, bm.cancelFunc = chromedp.NewContext(bm.allocCtx,
		chromedp.WithLogf(logger.Log.Debugf),
	)

	// 启动浏览器（预热）
	if err := chromedp.Run(bm.browserCtx); err != nil {
		bm.cancelFunc()
		bm.allocCancel()
		return fmt.Errorf("failed to start browser: %w", err)
	}

	bm.initialized = true
	logger.Log.Infof("✅ Browser initialized (headless=%v, path=%s)", headless, chromePath)
	return nil
}

// newTab 创建标签页上下文；parent 结束时标签页一并关闭
func (bm *BrowserManager) newTab(parent context.Context) (context.Context, context.CancelFunc, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if !bm.initialized {
		return nil, nil, fmt.Errorf("browser not initialized")
	}

	// 创建新的 tab context，调用方取消时一并关闭
	tabCtx, tabCancel := chromedp.NewContext(bm.browserCtx)
	stop := context.AfterFunc(parent, tabCancel)
	return tabCtx, func() {
		stop()
		tabCancel()
	}, nil
}

// Close 关闭浏览器
func (bm *BrowserManager) Close() {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if !bm.initialized {
		return
	}
	bm.cancelFunc()
	bm.allocCancel()
	bm.initialized = false
	logger.Log.Infof("🔴 Browser closed")
}

// BrowserFetcher 用无头浏览器渲染页面后取 HTML，用于前端渲染的商店页
type BrowserFetcher struct {
	proxyURL string
	headless bool
	// settle 页面加载后等待脚本渲染的时间
	settle time.Duration
}

// NewBrowserFetcher 创建 BrowserFetcher
func NewBrowserFetcher(proxyURL string, headless bool) *BrowserFetcher {
	return &BrowserFetcher{
		proxyURL: proxyURL,
		headless: headless,
		settle:   2 * time.Second,
	}
}

// Fetch 导航到查询地址并返回渲染后的 HTML。错误包装为 ErrFetch。
func (f *BrowserFetcher) Fetch(ctx context.Context, d *provider.Descriptor, rawQuery string) ([]byte, error) {
	if d.DataType != provider.DataTypeMarkup {
		return nil, fmt.Errorf("%w: browser fetch only supports markup providers, %s is %s", ErrFetch, d.ID, d.DataType)
	}

	// 确保浏览器已初始化
	bm := GetBrowserManager()
	if err := bm.Initialize(f.proxyURL, f.headless); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	tabCtx, cancel, err := bm.newTab(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer cancel()

	target := d.QueryURL(rawQuery)
	logger.Log.Debugf("🌐 [%s] Navigating to: %s", d.ID, target)

	// 导航并取得主文档响应
	resp, err := chromedp.RunResponse(tabCtx, chromedp.Navigate(target))
	if err != nil {
		return nil, fmt.Errorf("%w: browser navigation: %v", ErrFetch, err)
	}
	if err := checkDocumentStatus(d.ID, resp); err != nil {
		return nil, err
	}

	var html string
	err = chromedp.Run(tabCtx,
		// 等待页面主体加载
		chromedp.WaitReady("body", chromedp.ByQuery),
		// 等待前端脚本渲染结果
		chromedp.Sleep(f.settle),
		// 滚动页面以触发懒加载图片
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil),
		// 获取页面 HTML
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: browser render: %v", ErrFetch, err)
	}

	logger.Log.Debugf("🌐 [%s] Got page HTML, size: %d bytes", d.ID, len(html))
	return []byte(html), nil
}

// checkDocumentStatus 主文档状态码不在 2xx 范围时返回 ErrFetch，与 HTTPFetcher 一致
func checkDocumentStatus(id string, resp *network.Response) error {
	if resp == nil {
		return fmt.Errorf("%w: %s: browser got no document response", ErrFetch, id)
	}
	if resp.Status < 200 || resp.Status > 299 {
		return fmt.Errorf("%w: %s: HTTP %d %s", ErrFetch, id, resp.Status, resp.StatusText)
	}
	return nil
}
