package gmcp

import "encoding/json"

const ProtocolVersion = "2024-11-05"

type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      Implementation `json:"serverInfo"`
}

type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Content 文本内容只有Text, 图片内容为base64数据和MimeType
type Content struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

type CallToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

func TextResult(text string) *CallToolResult {
	return &CallToolResult{Content: []Content{{Type: "text", Text: text}}}
}

func ImageResult(data, mimeType string) *CallToolResult {
	return &CallToolResult{Content: []Content{{Type: "image", Data: data, MimeType: mimeType}}}
}

// ErrorResult 工具执行失败, 作为结果返回给客户端而不是JSON-RPC错误
func ErrorResult(message string) *CallToolResult {
	return &CallToolResult{Content: []Content{{Type: "text", Text: message}}, IsError: true}
}
