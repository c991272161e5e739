// Package toolbox implements the text transform tools and the dispatcher that
// selects one of them for a (tool, action, input) triple.
package toolbox

import (
	"fmt"
	"runtime/debug"
)

const (
	ToolCaesar = "caesar"
	ToolBase64 = "base64"
	ToolSHA256 = "sha256"
	ToolQR     = "qr"

	ActionEncrypt = "encrypt"
	ActionDecrypt = "decrypt"
	ActionEncode  = "encode"
	ActionDecode  = "decode"

	DefaultMaxInputLength = 64 << 10
)

type Request struct {
	Tool   string
	Action string
	Input  string
}

// Result holds exactly one of Text or DataURI.
type Result struct {
	Text    string
	DataURI string
}

func (r Result) IsImage() bool {
	return r.DataURI != ""
}

// ToolInfo 工具描述, 用于页面下拉框和MCP的tools/list
type ToolInfo struct {
	Name        string
	Description string
	Actions     []string
}

var toolInfos = []ToolInfo{
	{Name: ToolCaesar, Description: "Shift every character by a fixed offset of 5 code points", Actions: []string{ActionEncrypt, ActionDecrypt}},
	{Name: ToolBase64, Description: "Base64 encode or decode text", Actions: []string{ActionEncode, ActionDecode}},
	{Name: ToolSHA256, Description: "Lowercase hex SHA-256 digest of the text"},
	{Name: ToolQR, Description: "Render the text as a QR code PNG data URI"},
}

// Tools 返回支持的工具列表
func Tools() []ToolInfo {
	infos := make([]ToolInfo, len(toolInfos))
	copy(infos, toolInfos)
	return infos
}

type Dispatcher struct {
	hexFallback    bool
	maxInputLength int
	qr             QROptions
}

type Option func(d *Dispatcher)

// WithHexFallback 解码结果不是合法的UTF-8时返回十六进制字符串而不是报错
func WithHexFallback() Option {
	return func(d *Dispatcher) {
		d.hexFallback = true
	}
}

// WithMaxInputLength limits the input size in bytes, n <= 0 disables the limit.
func WithMaxInputLength(n int) Option {
	return func(d *Dispatcher) {
		d.maxInputLength = n
	}
}

func WithQROptions(opts QROptions) Option {
	return func(d *Dispatcher) {
		d.qr = opts
	}
}

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		maxInputLength: DefaultMaxInputLength,
		qr:             DefaultQROptions(),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Dispatch runs the tool named by req.Tool. Every non-nil error is a *Error,
// panics raised by a tool are recovered and reported as ServerError.
func (d *Dispatcher) Dispatch(req Request) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &Error{
				Kind:    ServerError,
				Tool:    req.Tool,
				Message: fmt.Sprint(r),
				Err:     fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
			}
		}
	}()

	if d.maxInputLength > 0 && len(req.Input) > d.maxInputLength {
		return Result{}, serverError(req.Tool, fmt.Errorf("input exceeds %d bytes", d.maxInputLength))
	}

	switch req.Tool {
	case ToolCaesar:
		return d.caesar(req)
	case ToolBase64:
		return d.base64(req)
	case ToolSHA256:
		return Result{Text: SHA256Hex(req.Input)}, nil
	case ToolQR:
		uri, err := QRDataURI(req.Input, d.qr)
		if err != nil {
			return Result{}, serverError(req.Tool, err)
		}
		return Result{DataURI: uri}, nil
	}

	return Result{}, invalidTool(req.Tool)
}

func (d *Dispatcher) caesar(req Request) (Result, error) {
	var (
		text string
		err  error
	)
	switch req.Action {
	case ActionEncrypt:
		text, err = CaesarEncrypt(req.Input)
	case ActionDecrypt:
		text, err = CaesarDecrypt(req.Input)
	default:
		return Result{}, invalidAction(req.Tool)
	}
	if err != nil {
		return Result{}, serverError(req.Tool, err)
	}

	return Result{Text: text}, nil
}

func (d *Dispatcher) base64(req Request) (Result, error) {
	switch req.Action {
	case ActionEncode:
		return Result{Text: Base64Encode(req.Input)}, nil
	case ActionDecode:
	default:
		return Result{}, invalidAction(req.Tool)
	}

	raw, err := Base64Decode(req.Input)
	if err != nil {
		return Result{}, decodeError(req.Tool, err)
	}

	text, err := decodeText(raw)
	if err != nil {
		if d.hexFallback {
			return Result{Text: hexString(raw)}, nil
		}
		return Result{}, decodeError(req.Tool, err)
	}

	return Result{Text: text}, nil
}
