package gmcp

import (
	"fmt"
	"sort"
)

type ToolHandler interface {
	ToolName() string
	Description() string
	InputSchema() map[string]any
	Handle(ctx *Context) (*CallToolResult, error)
}

// Router 工具需要在服务启动前注册
type Router struct {
	tools map[string]ToolHandler
}

func (r *Router) Register(handlers ...ToolHandler) {
	if r.tools == nil {
		r.tools = make(map[string]ToolHandler)
	}
	for _, h := range handlers {
		r.tools[h.ToolName()] = h
	}
}

func (r *Router) Tools() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, h := range r.tools {
		tools = append(tools, Tool{
			Name:        h.ToolName(),
			Description: h.Description(),
			InputSchema: h.InputSchema(),
		})
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})

	return tools
}

func (r *Router) ServeTool(ctx *Context, toolName string) (*CallToolResult, error) {
	handler, ok := r.tools[toolName]
	if !ok {
		return nil, fmt.Errorf("no such tool: %s", toolName)
	}

	return handler.Handle(ctx)
}
