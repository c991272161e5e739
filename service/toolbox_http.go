package service

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/mangohow/toolbox/errors"
	"github.com/mangohow/toolbox/serialize"
	transport "github.com/mangohow/toolbox/transport/http"
	"github.com/mangohow/toolbox/transport/binding"
)

type ToolboxHTTPServer interface {
	Index(context.Context, *IndexRequest) (*IndexPage, error)
	Submit(context.Context, *SubmitRequest) (*IndexPage, error)
	Process(context.Context, *ProcessRequest) (*serialize.Response, error)
	Health(context.Context, *HealthRequest) (*serialize.Response, error)
}

func RegisterToolboxHTTPServer(s *transport.Server, srv ToolboxHTTPServer) {
	s.RegisterService(&Toolbox_ServiceDesc, srv)
}

var Toolbox_ServiceDesc = transport.ServiceDesc{
	HandlerType: (*ToolboxHTTPServer)(nil),
	Methods: []transport.MethodDesc{
		{Method: http.MethodGet, Path: "/", Handler: _Toolbox_Index_HTTP_Handler},
		{Method: http.MethodPost, Path: "/", Handler: _Toolbox_Submit_HTTP_Handler},
		{Method: http.MethodPost, Path: "/process", Handler: _Toolbox_Process_HTTP_Handler},
		{Method: http.MethodGet, Path: "/healthz", Handler: _Toolbox_Health_HTTP_Handler},
	},
}

func _Toolbox_Index_HTTP_Handler(ctx context.Context, srv any, middleware transport.Middleware) (any, error) {
	var in IndexRequest
	// 查询参数只用于预选工具, 解析失败时忽略
	_ = transport.FromContext(ctx).BindQuery(&in)

	h := func(ctx context.Context, req any) (any, error) {
		return srv.(ToolboxHTTPServer).Index(ctx, req.(*IndexRequest))
	}

	return middleware(ctx, &in, h)
}

func _Toolbox_Submit_HTTP_Handler(ctx context.Context, srv any, middleware transport.Middleware) (any, error) {
	var in SubmitRequest
	// 表单页面的错误都渲染在页面中
	in.bindErr = transport.FromContext(ctx).BindForm(&in)

	h := func(ctx context.Context, req any) (any, error) {
		return srv.(ToolboxHTTPServer).Submit(ctx, req.(*SubmitRequest))
	}

	return middleware(ctx, &in, h)
}

func _Toolbox_Process_HTTP_Handler(ctx context.Context, srv any, middleware transport.Middleware) (any, error) {
	var payload map[string]any
	bindErr := transport.FromContext(ctx).BindJSON(&payload)

	h := func(ctx context.Context, req any) (any, error) {
		switch {
		case stderrors.Is(bindErr, binding.ErrBodyTooLarge):
			return nil, errors.FromError(CodePayloadTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", MessagePayloadTooLarge, bindErr)
		case bindErr != nil || len(payload) == 0:
			return nil, errors.FromError(CodeNoPayload, http.StatusBadRequest, "NO_PAYLOAD", MessageNoPayload, bindErr)
		}

		return srv.(ToolboxHTTPServer).Process(ctx, req.(*ProcessRequest))
	}

	return middleware(ctx, newProcessRequest(payload), h)
}

func _Toolbox_Health_HTTP_Handler(ctx context.Context, srv any, middleware transport.Middleware) (any, error) {
	h := func(ctx context.Context, req any) (any, error) {
		return srv.(ToolboxHTTPServer).Health(ctx, req.(*HealthRequest))
	}

	return middleware(ctx, &HealthRequest{}, h)
}
