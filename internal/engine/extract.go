package engine

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// rule 单个字段的提取策略，返回空字符串表示未命中
type rule func() string

// first 按顺序尝试策略，第一个非空值胜出；全部未命中时返回空字符串
func first(rules ...rule) string {
	for _, r := range rules {
		if v := r(); v != "" {
			return v
		}
	}
	return ""
}

// prefixed 命中时在值前拼接 prefix
func prefixed(prefix string, r rule) rule {
	return func() string {
		if v := r(); v != "" {
			return prefix + v
		}
		return ""
	}
}

// suffixed 命中时在值后拼接 suffix
func suffixed(r rule, suffix string) rule {
	return func() string {
		if v := r(); v != "" {
			return v + suffix
		}
		return ""
	}
}

// withoutQuery 去掉链接中的查询串与片段
func withoutQuery(r rule) rule {
	return func() string {
		v := r()
		if i := strings.IndexAny(v, "?#"); i >= 0 {
			v = v[:i]
		}
		return v
	}
}

// ---- HTML ----

// text 选择器命中的第一个元素的文本
func text(s *goquery.Selection, selector string) rule {
	return func() string {
		return strings.TrimSpace(s.Find(selector).First().Text())
	}
}

// attr 选择器命中的第一个元素的属性；selector 为空时读取 s 自身
func attr(s *goquery.Selection, selector, name string) rule {
	return func() string {
		target := s
		if selector != "" {
			target = s.Find(selector)
		}
		v, _ := target.First().Attr(name)
		return strings.TrimSpace(v)
	}
}

// firstWithAttrPrefix 返回第一个 name 属性以 prefix 开头的元素
func firstWithAttrPrefix(s *goquery.Selection, selector, name, prefix string) *goquery.Selection {
	return s.Find(selector).FilterFunction(func(_ int, el *goquery.Selection) bool {
		return hasAttrPrefix(el, name, prefix)
	}).First()
}

// attrWithPrefix 第一个 name 属性以 prefix 开头的元素的该属性值
func attrWithPrefix(s *goquery.Selection, selector, name, prefix string) rule {
	return func() string {
		v, _ := firstWithAttrPrefix(s, selector, name, prefix).Attr(name)
		return v
	}
}

// textWhereAttrPrefix 第一个 name 属性以 prefix 开头的元素的文本
func textWhereAttrPrefix(s *goquery.Selection, selector, name, prefix string) rule {
	return func() string {
		return strings.TrimSpace(firstWithAttrPrefix(s, selector, name, prefix).Text())
	}
}

func hasAttrPrefix(s *goquery.Selection, name, prefix string) bool {
	v, ok := s.Attr(name)
	return ok && v != "" && strings.HasPrefix(v, prefix)
}

// ---- JSON ----

// lookup 沿路径读取 JSON 值，路径元素为 string（对象键）或 int（数组下标）
func lookup(v any, path ...any) any {
	for _, p := range path {
		switch key := p.(type) {
		case string:
			obj, ok := v.(map[string]any)
			if !ok {
				return nil
			}
			v = obj[key]
		case int:
			arr, ok := v.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil
			}
			v = arr[key]
		default:
			return nil
		}
	}
	return v
}

// jsonText 将路径上的标量值格式化为字符串
func jsonText(v any, path ...any) rule {
	return func() string {
		return scalarText(lookup(v, path...))
	}
}

// jsonTruthyText 同 jsonText，但数值 0 视为缺失
func jsonTruthyText(v any, path ...any) rule {
	return func() string {
		if n, ok := lookup(v, path...).(float64); ok && n == 0 {
			return ""
		}
		return jsonText(v, path...)()
	}
}

func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return formatNumber(x)
	default:
		return ""
	}
}

// jsonStrings 路径上的字符串数组，非字符串元素被忽略
func jsonStrings(v any, path ...any) []string {
	arr, ok := lookup(v, path...).([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// jsonItems 读取结果数组；路径不存在或不是数组时 ok 为 false
func jsonItems(v any, path ...any) (items []any, ok bool) {
	items, ok = lookup(v, path...).([]any)
	return items, ok
}

// formatNumber 以最短形式输出数字，19.99 -> "19.99"，20 -> "20"
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ---- platforms ----

// canonicalPlatforms 规范标签到自身的映射，供字段值已是规范名的提供方使用
var canonicalPlatforms = map[string]Platform{
	"android": PlatformAndroid,
	"ios":     PlatformIOS,
	"linux":   PlatformLinux,
	"mac":     PlatformMac,
	"windows": PlatformWindows,
}

// normalizePlatforms 将原始标记映射为规范平台标签，去重并保持首次出现顺序
func normalizePlatforms(raw []string, mapping map[string]Platform) []Platform {
	var out []Platform
	seen := make(map[Platform]bool, len(Platforms))
	for _, token := range raw {
		p, ok := mapping[token]
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
