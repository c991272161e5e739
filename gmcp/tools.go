package gmcp

import (
	"fmt"
	"strings"

	"github.com/mangohow/toolbox/toolbox"
)

const dataURIPrefix = "data:image/png;base64,"

type toolArguments struct {
	Action string `json:"action"`
	Input  string `json:"input"`
}

// toolboxHandler 将一个toolbox工具暴露为MCP工具
type toolboxHandler struct {
	info       toolbox.ToolInfo
	dispatcher *toolbox.Dispatcher
}

// ToolboxHandlers 为每个工具创建处理器, 与JSON接口一样解码结果不是UTF-8时回退为十六进制
func ToolboxHandlers(maxInputLength int) []ToolHandler {
	d := toolbox.New(toolbox.WithMaxInputLength(maxInputLength), toolbox.WithHexFallback())

	var handlers []ToolHandler
	for _, info := range toolbox.Tools() {
		handlers = append(handlers, &toolboxHandler{info: info, dispatcher: d})
	}

	return handlers
}

func (h *toolboxHandler) ToolName() string {
	return h.info.Name
}

func (h *toolboxHandler) Description() string {
	return h.info.Description
}

func (h *toolboxHandler) InputSchema() map[string]any {
	properties := map[string]any{
		"input": map[string]any{
			"type":        "string",
			"description": "Text to transform",
		},
	}
	required := []string{"input"}

	if len(h.info.Actions) > 0 {
		properties["action"] = map[string]any{
			"type": "string",
			"enum": h.info.Actions,
		}
		required = append(required, "action")
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func (h *toolboxHandler) Handle(ctx *Context) (*CallToolResult, error) {
	var args toolArguments
	if err := ctx.BindArguments(&args); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", h.info.Name, err)
	}

	res, err := h.dispatcher.Dispatch(toolbox.Request{Tool: h.info.Name, Action: args.Action, Input: args.Input})
	if err != nil {
		return ErrorResult(toolbox.APIMessage(err)), nil
	}

	if res.IsImage() {
		return ImageResult(strings.TrimPrefix(res.DataURI, dataURIPrefix), "image/png"), nil
	}

	return TextResult(res.Text), nil
}
