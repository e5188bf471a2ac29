package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/cliffyan/go-game-search-mcp/internal/config"
	"github.com/cliffyan/go-game-search-mcp/internal/engine"
	"github.com/cliffyan/go-game-search-mcp/internal/logger"
	"github.com/cliffyan/go-game-search-mcp/internal/mcp"
)

const sessionHeader = "mcp-session-id"

// Server MCP HTTP 服务器
type Server struct {
	config     *config.Config
	manager    *engine.Manager
	mcpHandler *mcp.Handler
	httpServer *http.Server

	sessions   map[string]time.Time
	sessionsMu sync.RWMutex
}

// New 创建服务器实例
func New(cfg *config.Config, m *engine.Manager) *Server {
	s := &Server{
		config:     cfg,
		manager:    m,
		mcpHandler: mcp.NewHandler(cfg, m),
		sessions:   make(map[string]time.Time),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler 返回带 CORS 中间件的路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", s.handleMCP)
	mux.HandleFunc("/health", s.handleHealth)

	if !s.config.Server.CORS.Enabled {
		return mux
	}
	return cors.New(cors.Options{
		AllowedOrigins:   []string{s.config.Server.CORS.Origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", sessionHeader},
		ExposedHeaders:   []string{sessionHeader},
		AllowCredentials: true,
	}).Handler(mux)
}

// Start 启动 HTTP 服务，Shutdown 后返回 nil
func (s *Server) Start() error {
	addr := s.config.Addr()
	logger.Log.Infof("🚀 Starting MCP HTTP server on %s", addr)
	logger.Log.Infof("📡 MCP endpoint: http://%s/mcp", addr)
	logger.Log.Infof("❤️ Health check: http://%s/health", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleMCPPost(w, r)
	case http.MethodGet:
		s.handleMCPStream(w, r)
	case http.MethodDelete:
		s.handleMCPDelete(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMCPPost(w http.ResponseWriter, r *http.Request) {
	var req mcp.JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, mcp.JSONRPCResponse{
			JSONRPC: "2.0",
			Error:   &mcp.RPCError{Code: mcp.CodeParseError, Message: "Parse error: " + err.Error()},
		})
		return
	}

	if req.Method == "initialize" && r.Header.Get(sessionHeader) == "" {
		id := s.openSession()
		w.Header().Set(sessionHeader, id)
		logger.Log.Infof("📝 Created new session: %s", id)
	}

	resp := s.mcpHandler.HandleRequest(r.Context(), req)
	if req.Method == "notifications/initialized" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, resp)
}

// handleMCPStream 服务端推送通道，目前只发送心跳
func (s *Server) handleMCPStream(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		http.Error(w, "Missing session ID", http.StatusBadRequest)
		return
	}
	if !s.hasSession(id) {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "event: endpoint\ndata: {\"uri\": \"/mcp\"}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}

func (s *Server) handleMCPDelete(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		http.Error(w, "Missing session ID", http.StatusBadRequest)
		return
	}

	s.sessionsMu.Lock()
	delete(s.sessions, id)
	s.sessionsMu.Unlock()

	logger.Log.Infof("🗑️ Deleted session: %s", id)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	providers := []string{}
	for _, d := range s.manager.Providers() {
		providers = append(providers, d.Key)
	}

	s.sessionsMu.RLock()
	sessions := len(s.sessions)
	s.sessionsMu.RUnlock()

	writeJSON(w, map[string]any{
		"status":    "ok",
		"service":   s.config.MCP.ServerName,
		"version":   s.config.MCP.ServerVersion,
		"providers": providers,
		"sessions":  sessions,
	})
}

func (s *Server) openSession() string {
	id := uuid.New().String()
	s.sessionsMu.Lock()
	s.sessions[id] = time.Now()
	s.sessionsMu.Unlock()
	return id
}

func (s *Server) hasSession(id string) bool {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("❌ Failed to encode response: %v", err)
	}
}
