package toolbox

import (
	"errors"
	"fmt"
)

// Kind 工具错误分类
type Kind int

const (
	InvalidTool Kind = iota + 1
	InvalidAction
	DecodeError
	ServerError
)

func (k Kind) String() string {
	switch k {
	case InvalidTool:
		return "InvalidTool"
	case InvalidAction:
		return "InvalidAction"
	case DecodeError:
		return "DecodeError"
	case ServerError:
		return "ServerError"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the only error type Dispatch returns.
// Message is the human readable reason without any entry point prefix.
type Error struct {
	Kind    Kind
	Tool    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Tool == "" {
		return e.Kind.String() + ": " + e.Message
	}

	return e.Tool + ": " + e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf 返回err的分类, err为nil时返回零值, 非工具错误一律视为ServerError
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	if e, ok := AsError(err); ok {
		return e.Kind
	}

	return ServerError
}

func invalidTool(tool string) *Error {
	return &Error{Kind: InvalidTool, Tool: tool, Message: "Invalid tool"}
}

func invalidAction(tool string) *Error {
	return &Error{Kind: InvalidAction, Tool: tool, Message: "Invalid " + tool + " action"}
}

func decodeError(tool string, err error) *Error {
	return &Error{Kind: DecodeError, Tool: tool, Message: err.Error(), Err: err}
}

func serverError(tool string, err error) *Error {
	return &Error{Kind: ServerError, Tool: tool, Message: err.Error(), Err: err}
}

// AsError 在错误链中查找*Error
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// APIMessage 返回JSON接口使用的错误信息: 参数错误原样返回,
// 解码错误带"Base64 error: "前缀, 其余带"Server error: "前缀
func APIMessage(err error) string {
	e, ok := AsError(err)
	if !ok {
		return "Server error: " + err.Error()
	}

	switch e.Kind {
	case InvalidTool, InvalidAction:
		return e.Message
	case DecodeError:
		return "Base64 error: " + e.Message
	}

	return "Server error: " + e.Message
}

// FormMessage 返回表单页面使用的错误信息, 解码错误和服务端错误统一带"Error: "前缀
func FormMessage(err error) string {
	e, ok := AsError(err)
	if !ok {
		return "Error: " + err.Error()
	}

	switch e.Kind {
	case InvalidTool, InvalidAction:
		return e.Message
	}

	return "Error: " + e.Message
}
