package gmcp

import (
	"encoding/json"
)

const (
	JSONRPCVersion = "2.0"
)

// 标准JSON-RPC错误码
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// JSONRPCRequest 请求或通知, 通知没有ID
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	ID      json.RawMessage `json:"id,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (r *JSONRPCRequest) IsNotification() bool {
	return len(r.ID) == 0
}

type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *ErrorInfo) Error() string {
	jsonData, err := json.Marshal(e)
	if err != nil {
		return err.Error()
	}

	return string(jsonData)
}

func newError(code int, message string) *ErrorInfo {
	return &ErrorInfo{Code: code, Message: message}
}

type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

func newResponse(id json.RawMessage, result any, err *ErrorInfo) JSONRPCResponse {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}

	return JSONRPCResponse{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Result:  result,
		Error:   err,
	}
}
