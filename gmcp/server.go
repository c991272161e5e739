package gmcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	stdsync "sync"

	"github.com/mangohow/toolbox/llog"
	"github.com/mangohow/toolbox/tools/sync"
	"go.uber.org/zap"
)

const (
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodPing        = "ping"
	MethodToolsList   = "tools/list"
	MethodToolsCall   = "tools/call"
)

type MCPServer struct {
	cfg    ServerConfig
	router Router
	wg     sync.WaitGroup

	mu       stdsync.Mutex
	sessions map[string]Session
	stopped  bool
}

func NewMCPServer(opts ...Option) *MCPServer {
	cfg := ServerConfig{
		info: Implementation{Name: "toolbox", Version: "dev"},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.transport == nil {
		cfg.transport = NewStdioTransport(os.Stdin, os.Stdout)
	}
	if cfg.logger == nil {
		cfg.logger = llog.GetLogger()
	}

	return &MCPServer{
		cfg:      cfg,
		sessions: make(map[string]Session),
	}
}

type ServerConfig struct {
	transport MCPTransport
	logger    *zap.SugaredLogger
	info      Implementation
}

type Option func(s *ServerConfig)

func WithTransport(transport MCPTransport) Option {
	return func(s *ServerConfig) {
		s.transport = transport
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *ServerConfig) {
		s.logger = logger
	}
}

func WithServerInfo(name, version string) Option {
	return func(s *ServerConfig) {
		s.info = Implementation{Name: name, Version: version}
	}
}

// Register 注册工具, 需要在Start之前调用
func (s *MCPServer) Register(handlers ...ToolHandler) {
	s.router.Register(handlers...)
}

// Start 接收会话直到传输关闭, 等待所有会话的响应写完后返回
func (s *MCPServer) Start() error {
	for {
		session, err := s.cfg.transport.Accept()
		if err != nil {
			s.wg.Wait()
			if stderrors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}

		if !s.addSession(session) {
			_ = session.close()
		}
		s.cfg.logger.Infow("MCP session started", "sessionId", session.SessionID())

		s.wg.Go(func() {
			defer s.removeSession(session)

			if err := session.writerLoop(); err != nil {
				s.cfg.logger.Errorw("MCP session write failed", "sessionId", session.SessionID(), "error", err)
			}
		})

		// 阻塞在输入上的读取无法取消, Start不等待读循环
		go func() {
			if err := session.readerLoop(s.handleMessage); err != nil {
				s.cfg.logger.Errorw("MCP session read failed", "sessionId", session.SessionID(), "error", err)
			}
			_ = session.close()
		}()
	}
}

// Stop 关闭传输和所有会话, 之后收到的请求不再响应
func (s *MCPServer) Stop() error {
	err := s.cfg.transport.Close()

	s.mu.Lock()
	s.stopped = true
	sessions := make([]Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		_ = session.close()
	}

	return err
}

// addSession 服务已经停止时返回false
func (s *MCPServer) addSession(session Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID()] = session
	return !s.stopped
}

func (s *MCPServer) removeSession(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, session.SessionID())
}

func (s *MCPServer) handleMessage(session Session, message []byte) {
	var req JSONRPCRequest
	if err := json.Unmarshal(message, &req); err != nil {
		s.reply(session, newResponse(nil, nil, newError(CodeParseError, "Parse error")))
		return
	}

	result, rpcErr := s.HandleRequest(session, &req)
	if req.IsNotification() {
		return
	}

	s.reply(session, newResponse(req.ID, result, rpcErr))
}

func (s *MCPServer) reply(session Session, resp JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.cfg.logger.Errorw("Marshal MCP response failed", "error", err)
		data, _ = json.Marshal(newResponse(resp.ID, nil, newError(CodeInternalError, err.Error())))
	}

	if err := session.send(data); err != nil {
		s.cfg.logger.Warnw("Drop MCP response", "sessionId", session.SessionID(), "error", err)
	}
}

// HandleRequest 处理一个请求, 返回结果或JSON-RPC错误
func (s *MCPServer) HandleRequest(session Session, req *JSONRPCRequest) (result any, rpcErr *ErrorInfo) {
	defer func() {
		if r := recover(); r != nil {
			s.cfg.logger.Errorw("MCP handler panic", "method", req.Method, "panic", r)
			result, rpcErr = nil, newError(CodeInternalError, fmt.Sprintf("Internal error: %v", r))
		}
	}()

	if req.JSONRPC != JSONRPCVersion || req.Method == "" {
		return nil, newError(CodeInvalidRequest, "Invalid Request")
	}

	switch req.Method {
	case MethodInitialize:
		return &InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo:      s.cfg.info,
		}, nil
	case MethodInitialized:
		return nil, nil
	case MethodPing:
		return map[string]any{}, nil
	case MethodToolsList:
		return &ListToolsResult{Tools: s.router.Tools()}, nil
	case MethodToolsCall:
		return s.callTool(session, req.Params)
	}

	return nil, newError(CodeMethodNotFound, "Method not found: "+req.Method)
}

func (s *MCPServer) callTool(session Session, params json.RawMessage) (*CallToolResult, *ErrorInfo) {
	var p CallToolParams
	if len(params) == 0 || json.Unmarshal(params, &p) != nil || p.Name == "" {
		return nil, newError(CodeInvalidParams, "Invalid params")
	}

	ctx := newContext(context.Background(), session, p.Arguments)
	defer putContext(ctx)

	result, err := s.router.ServeTool(ctx, p.Name)
	if err != nil {
		return nil, newError(CodeInvalidParams, err.Error())
	}

	return result, nil
}
