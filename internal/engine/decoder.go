package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

// Decoded 解码后的响应：HTML 文档或 JSON 值，二者只有一个有效
type Decoded struct {
	Doc  *goquery.Document
	JSON any
}

// Decode 按提供方声明的数据类型解码响应体
func Decode(d *provider.Descriptor, body []byte) (Decoded, error) {
	switch d.DataType {
	case provider.DataTypeMarkup:
		doc, err := ParseMarkup(body)
		if err != nil {
			return Decoded{}, err
		}
		return Decoded{Doc: doc}, nil
	case provider.DataTypeStructured:
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			return Decoded{}, fmt.Errorf("%w: parse JSON: %v", ErrDecode, err)
		}
		return Decoded{JSON: v}, nil
	default:
		return Decoded{}, fmt.Errorf("%w: %q for provider %s", ErrUnsupportedDataType, d.DataType, d.ID)
	}
}

// ParseMarkup 解析 HTML 并移除所有 script 与 style 元素
func ParseMarkup(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse HTML: %v", ErrDecode, err)
	}
	doc.Find("script, style").Remove()
	return doc, nil
}
