package engine

// Platform 规范平台标签
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformLinux   Platform = "linux"
	PlatformMac     Platform = "mac"
	PlatformWindows Platform = "windows"
)

// Platforms 全部规范平台标签
var Platforms = []Platform{PlatformAndroid, PlatformIOS, PlatformLinux, PlatformMac, PlatformWindows}

// Game 统一的游戏搜索结果。每个字段都可缺省，空字符串表示缺省。
type Game struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title,omitempty"`
	URL         string     `json:"url,omitempty"`
	Image       string     `json:"image,omitempty"`
	Price       string     `json:"price,omitempty"`
	Platforms   []Platform `json:"platforms,omitempty"`
	ReleaseDate string     `json:"release_date,omitempty"`
}

// Adapter 单个提供方的结果提取策略
type Adapter interface {
	// ID 返回对应的提供方规范 ID
	ID() string
	// Extract 从解码后的响应中按原顺序提取结果；无匹配条目时返回 ErrNoResults
	Extract(in Decoded) ([]Game, error)
}

// Adapters 按提供方规范 ID 注册的提取器
var Adapters = map[string]Adapter{
	"epic":   epicAdapter{},
	"gog":    gogAdapter{},
	"humble": humbleAdapter{},
	"itch":   itchAdapter{},
	"steam":  steamAdapter{},
}
