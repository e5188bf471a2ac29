package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cliffyan/go-game-search-mcp/internal/logger"
)

// Config 应用配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Search  SearchConfig  `yaml:"search"`
	Proxy   ProxyConfig   `yaml:"proxy"`
	MCP     MCPConfig     `yaml:"mcp"`
	Browser BrowserConfig `yaml:"browser"`
	Log     LogConfig     `yaml:"log"`
	Export  ExportConfig  `yaml:"export"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port int        `yaml:"port"`
	Host string     `yaml:"host"`
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Origin  string `yaml:"origin"`
}

// SearchConfig 商店搜索配置
type SearchConfig struct {
	DefaultProvider   string   `yaml:"default_provider"`
	AllowedProviders  []string `yaml:"allowed_providers"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"`
	RequestsPerSecond float64  `yaml:"requests_per_second"`
	UserAgent         string   `yaml:"user_agent"`
}

// ProxyConfig 代理配置
type ProxyConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// MCPConfig MCP 协议配置
type MCPConfig struct {
	ServerName    string         `yaml:"server_name"`
	ServerVersion string         `yaml:"server_version"`
	Tools         MCPToolsConfig `yaml:"tools"`
}

// MCPToolsConfig MCP 工具名称与描述
type MCPToolsConfig struct {
	SearchName               string `yaml:"search_name"`
	SearchDescription        string `yaml:"search_description"`
	ListProvidersName        string `yaml:"list_providers_name"`
	ListProvidersDescription string `yaml:"list_providers_description"`
}

// BrowserConfig 浏览器抓取配置，Providers 中的提供方改用无头浏览器获取页面
type BrowserConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Headless  bool     `yaml:"headless"`
	Providers []string `yaml:"providers"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ExportConfig 搜索页归档配置
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// ValidProviders 可配置的提供方 key
var ValidProviders = []string{"epic", "gog", "humble", "itch", "steam"}

// Default 返回默认配置的副本
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3456,
			Host: "0.0.0.0",
			CORS: CORSConfig{Enabled: false, Origin: "*"},
		},
		Search: SearchConfig{
			DefaultProvider:  "steam",
			AllowedProviders: []string{},
			TimeoutSeconds:   30,
		},
		Proxy: ProxyConfig{
			Enabled: false,
			URL:     "http://127.0.0.1:7890",
		},
		MCP: MCPConfig{
			ServerName:    "go-game-search-mcp",
			ServerVersion: "1.0.0",
			Tools: MCPToolsConfig{
				SearchName:               "search_games",
				SearchDescription:        "Search a game store (Epic Games, GOG, Humble Bundle, itch.io, Steam) and return normalized results with title, price, platforms, release date, image and link.",
				ListProvidersName:        "list_providers",
				ListProvidersDescription: "List the game stores that can be searched.",
			},
		},
		Browser: BrowserConfig{
			Enabled:   false,
			Headless:  true,
			Providers: []string{"epic"},
		},
		Log: LogConfig{Level: "info"},
		Export: ExportConfig{
			Dir: "searchResults",
		},
	}
}

var configSearchPaths = []string{
	"config.yaml",
	"config.yml",
	"configs/config.yaml",
	"configs/config.yml",
}

// Load 加载配置，找不到或解析失败时回退到默认配置。
// 支持通过 CONFIG_FILE 环境变量指定配置文件路径。
func Load() *Config {
	configPath := findConfigFile()
	if configPath == "" {
		logger.Log.Warnf("⚠️ No config file found, using default configuration")
		cfg := Default()
		cfg.validate()
		return cfg
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		logger.Log.Warnf("⚠️ %v, using defaults", err)
		cfg = Default()
		cfg.validate()
		return cfg
	}

	logger.Log.Infof("📄 Loaded configuration from: %s", configPath)
	return cfg
}

// LoadFromFile 从指定路径加载配置
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file failed: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置，未设置的字段使用默认值
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file failed: %w", err)
	}
	cfg.validate()
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv("CONFIG_FILE"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		logger.Log.Warnf("⚠️ CONFIG_FILE=%s not found, searching default paths", envPath)
	}

	workDir, _ := os.Getwd()
	searchDirs := []string{workDir}
	if execPath, err := os.Executable(); err == nil {
		if execDir := filepath.Dir(execPath); execDir != workDir {
			searchDirs = append(searchDirs, execDir)
		}
	}

	for _, dir := range searchDirs {
		for _, name := range configSearchPaths {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// validate 修正非法配置项
func (c *Config) validate() {
	def := Default()

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		logger.Log.Warnf("⚠️ Invalid port %d, using default %d", c.Server.Port, def.Server.Port)
		c.Server.Port = def.Server.Port
	}
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.CORS.Origin == "" {
		c.Server.CORS.Origin = def.Server.CORS.Origin
	}

	c.Search.DefaultProvider = strings.ToLower(strings.TrimSpace(c.Search.DefaultProvider))
	if !isValidProvider(c.Search.DefaultProvider) {
		logger.Log.Warnf("⚠️ Invalid default_provider: %q, falling back to %s", c.Search.DefaultProvider, def.Search.DefaultProvider)
		c.Search.DefaultProvider = def.Search.DefaultProvider
	}

	c.Search.AllowedProviders = filterProviders(c.Search.AllowedProviders, "allowed_providers")
	if len(c.Search.AllowedProviders) > 0 && !slices.Contains(c.Search.AllowedProviders, c.Search.DefaultProvider) {
		logger.Log.Warnf("⚠️ Default provider %s not in allowed list, using %s", c.Search.DefaultProvider, c.Search.AllowedProviders[0])
		c.Search.DefaultProvider = c.Search.AllowedProviders[0]
	}

	if c.Search.TimeoutSeconds <= 0 {
		c.Search.TimeoutSeconds = def.Search.TimeoutSeconds
	}
	if c.Search.RequestsPerSecond < 0 {
		logger.Log.Warnf("⚠️ Negative requests_per_second disables throttling")
		c.Search.RequestsPerSecond = 0
	}

	if c.Proxy.Enabled && c.Proxy.URL == "" {
		logger.Log.Warnf("⚠️ Proxy enabled but URL is empty, using default")
		c.Proxy.URL = def.Proxy.URL
	}

	if c.MCP.ServerName == "" {
		c.MCP.ServerName = def.MCP.ServerName
	}
	if c.MCP.ServerVersion == "" {
		c.MCP.ServerVersion = def.MCP.ServerVersion
	}
	if c.MCP.Tools.SearchName == "" {
		c.MCP.Tools.SearchName = def.MCP.Tools.SearchName
	}
	if c.MCP.Tools.SearchDescription == "" {
		c.MCP.Tools.SearchDescription = def.MCP.Tools.SearchDescription
	}
	if c.MCP.Tools.ListProvidersName == "" {
		c.MCP.Tools.ListProvidersName = def.MCP.Tools.ListProvidersName
	}
	if c.MCP.Tools.ListProvidersDescription == "" {
		c.MCP.Tools.ListProvidersDescription = def.MCP.Tools.ListProvidersDescription
	}

	c.Browser.Providers = filterProviders(c.Browser.Providers, "browser.providers")

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Export.Dir == "" {
		c.Export.Dir = def.Export.Dir
	}
}

func filterProviders(keys []string, field string) []string {
	valid := []string{}
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if isValidProvider(k) {
			valid = append(valid, k)
		} else {
			logger.Log.Warnf("⚠️ Invalid provider in %s ignored: %s", field, k)
		}
	}
	return valid
}

// Print 输出生效配置
func (c *Config) Print() {
	logger.Log.Infof("🔍 Default provider: %s", c.Search.DefaultProvider)
	if len(c.Search.AllowedProviders) > 0 {
		logger.Log.Infof("🔍 Allowed providers: %s", strings.Join(c.Search.AllowedProviders, ", "))
	} else {
		logger.Log.Infof("🔍 No provider restrictions")
	}
	if c.Proxy.Enabled {
		logger.Log.Infof("🌐 Using proxy: %s", c.Proxy.URL)
	}
	if c.Browser.Enabled {
		logger.Log.Infof("🌐 Browser fetching enabled for: %s (headless=%v)", strings.Join(c.Browser.Providers, ", "), c.Browser.Headless)
	}
	if c.Server.CORS.Enabled {
		logger.Log.Infof("🔒 CORS enabled with origin: %s", c.Server.CORS.Origin)
	}
	logger.Log.Infof("🔧 MCP Server: %s v%s", c.MCP.ServerName, c.MCP.ServerVersion)
	logger.Log.Infof("🖥️ Server will listen on %s", c.Addr())
}

// IsProviderAllowed 检查提供方是否允许使用
func (c *Config) IsProviderAllowed(key string) bool {
	if len(c.Search.AllowedProviders) == 0 {
		return isValidProvider(key)
	}
	return slices.Contains(c.Search.AllowedProviders, key)
}

// UsesBrowser 该提供方是否通过浏览器抓取
func (c *Config) UsesBrowser(key string) bool {
	return c.Browser.Enabled && slices.Contains(c.Browser.Providers, key)
}

// ProxyURL 启用代理时返回代理地址，否则为空
func (c *Config) ProxyURL() string {
	if c.Proxy.Enabled {
		return c.Proxy.URL
	}
	return ""
}

// Timeout 单次搜索的超时时间
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// Addr 监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func isValidProvider(key string) bool {
	return slices.Contains(ValidProviders, key)
}
