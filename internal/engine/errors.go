package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResults 查询成功但没有匹配条目
	ErrNoResults = errors.New("no results found")
	// ErrUnsupportedDataType 提供方配置了未知的数据类型
	ErrUnsupportedDataType = errors.New("unsupported data type")
	// ErrUnknownProvider 未注册的提供方 key
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrFetch 请求失败或返回非成功状态码
	ErrFetch = errors.New("fetch failed")
	// ErrDecode 响应体无法解析
	ErrDecode = errors.New("decode failed")
	// ErrUnexpectedShape 响应结构与提取器预期不符
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// Kind 对外错误类别
type Kind int

const (
	KindEmptyResult Kind = iota
	KindNetworkOrParseFailure
)

const (
	msgEmptyResult    = "No results found. 😅"
	msgNetworkFailure = "There was a network problem. Try again if you're feeling lucky. 🎲"
)

func (k Kind) String() string {
	switch k {
	case KindEmptyResult:
		return "EmptyResult"
	case KindNetworkOrParseFailure:
		return "NetworkOrParseFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Message 返回面向用户的提示
func (k Kind) Message() string {
	if k == KindEmptyResult {
		return msgEmptyResult
	}
	return msgNetworkFailure
}

// SearchError 搜索失败。Error() 只返回用户可见信息，原因通过 Unwrap 获取。
type SearchError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *SearchError) Error() string { return e.Message }

func (e *SearchError) Unwrap() error { return e.cause }

// Classify 将任意错误归为两类之一
func Classify(err error) *SearchError {
	if err == nil {
		return nil
	}

	var se *SearchError
	if errors.As(err, &se) {
		return se
	}

	kind := KindNetworkOrParseFailure
	if errors.Is(err, ErrNoResults) || errors.Is(err, ErrUnsupportedDataType) {
		kind = KindEmptyResult
	}
	return &SearchError{Kind: kind, Message: kind.Message(), cause: err}
}

// IsKind 判断 err 是否为指定类别的 SearchError
func IsKind(err error, kind Kind) bool {
	var se *SearchError
	return errors.As(err, &se) && se.Kind == kind
}
