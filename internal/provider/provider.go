package provider

import (
	"net/url"
	"sort"
	"strings"
)

// DataType 提供方响应数据类型
type DataType string

const (
	// DataTypeMarkup HTML 页面，需要解析为文档树
	DataTypeMarkup DataType = "markup"
	// DataTypeStructured JSON 文档
	DataTypeStructured DataType = "structured"
)

// QueryPlaceholder 模板中的查询占位符
const QueryPlaceholder = "{query}"

// Descriptor 提供方静态配置，加载后只读
type Descriptor struct {
	Key            string
	ID             string
	Name           string
	DataType       DataType
	QueryTemplate  string
	SearchTemplate string
}

// QueryURL 返回数据接口地址
func (d *Descriptor) QueryURL(rawQuery string) string {
	return strings.ReplaceAll(d.QueryTemplate, QueryPlaceholder, EncodeQuery(rawQuery))
}

// SearchPageURL 返回面向用户的搜索页地址
func (d *Descriptor) SearchPageURL(rawQuery string) string {
	return strings.ReplaceAll(d.SearchTemplate, QueryPlaceholder, EncodeQuery(rawQuery))
}

// componentUnescaper 还原 url.QueryEscape 多编码的字符，保留 !'()* 原样
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeQuery 去除首尾空白后做百分号编码，规则同 URI component：空格为 %20，!'()* 不编码
func EncodeQuery(rawQuery string) string {
	return componentUnescaper.Replace(url.QueryEscape(strings.TrimSpace(rawQuery)))
}

// Registry 提供方注册表。构造后不可修改，可被并发读取。
type Registry struct {
	byKey map[string]*Descriptor
	// 按规范 ID 排序、去重后的描述符
	ordered []*Descriptor
}

// NewRegistry 根据描述符构建注册表，aliases 为 别名 -> 提供方 key
func NewRegistry(descriptors []Descriptor, aliases map[string]string) *Registry {
	r := &Registry{byKey: make(map[string]*Descriptor, len(descriptors)+len(aliases))}

	for i := range descriptors {
		d := descriptors[i]
		r.byKey[d.Key] = &d
		r.ordered = append(r.ordered, &d)
	}
	for alias, key := range aliases {
		if d, ok := r.byKey[key]; ok {
			r.byKey[alias] = d
		}
	}

	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i].ID < r.ordered[j].ID })
	return r
}

// Lookup 按 key 或别名查找提供方，key 不区分大小写
func (r *Registry) Lookup(key string) (*Descriptor, bool) {
	d, ok := r.byKey[strings.ToLower(strings.TrimSpace(key))]
	return d, ok
}

// Keys 返回所有可用 key（含别名），已排序
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Descriptors 返回所有提供方（不含别名）
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}
