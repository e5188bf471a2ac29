// Package export 将提供方的搜索页（去除 script/style 后）保存为 HTML 文件，用于编写和更新提取规则。
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cliffyan/go-game-search-mcp/internal/engine"
	"github.com/cliffyan/go-game-search-mcp/internal/logger"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

// Exporter 搜索页归档器。错误原样返回，不做归类。
type Exporter struct {
	registry *provider.Registry
	fetcher  engine.Fetcher
	dir      string
}

// New 创建归档器，文件写入 dir
func New(registry *provider.Registry, fetcher engine.Fetcher, dir string) *Exporter {
	return &Exporter{registry: registry, fetcher: fetcher, dir: dir}
}

// FileName 归档文件名: <提供方 ID>-<编码后的查询>.html
func FileName(d *provider.Descriptor, query string) string {
	return d.ID + "-" + provider.EncodeQuery(query) + ".html"
}

// Export 拉取并保存搜索页，返回写入的文件路径
func (e *Exporter) Export(ctx context.Context, providerKey, query string) (string, error) {
	d, ok := e.registry.Lookup(providerKey)
	if !ok {
		return "", fmt.Errorf("%w: %s", engine.ErrUnknownProvider, providerKey)
	}
	if d.DataType != provider.DataTypeMarkup {
		return "", fmt.Errorf("%s returns %s data, only markup providers can be exported", d.ID, d.DataType)
	}

	body, err := e.fetcher.Fetch(ctx, d, query)
	if err != nil {
		return "", err
	}

	doc, err := engine.ParseMarkup(body)
	if err != nil {
		return "", err
	}
	markup, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("render body: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(e.dir, FileName(d, query))
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	logger.Log.Infof("💾 %s saved", path)
	return path, nil
}
