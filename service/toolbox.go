// Package service wires the tool dispatcher to the form page and the JSON API.
package service

import (
	"context"
	"html/template"
	"net/http"

	"github.com/mangohow/toolbox/errors"
	"github.com/mangohow/toolbox/serialize"
	"github.com/mangohow/toolbox/toolbox"
	transport "github.com/mangohow/toolbox/transport/http"
	"github.com/mangohow/toolbox/web"
)

const (
	MessageNoPayload       = "No JSON payload"
	MessagePayloadTooLarge = "Payload too large"
)

// 错误码
const (
	CodeInvalidTool = iota + 1001
	CodeInvalidAction
	CodeDecodeError
	CodeServerError
	CodeNoPayload
	CodePayloadTooLarge
)

type ToolboxService struct {
	// 表单页面解码失败时报错
	form *toolbox.Dispatcher
	// JSON接口解码结果不是UTF-8时回退为十六进制
	api *toolbox.Dispatcher
}

func NewToolboxService(maxInputLength int) *ToolboxService {
	return &ToolboxService{
		form: toolbox.New(toolbox.WithMaxInputLength(maxInputLength)),
		api:  toolbox.New(toolbox.WithMaxInputLength(maxInputLength), toolbox.WithHexFallback()),
	}
}

// IndexPage 表单页面, 由transport的结果编码器渲染
type IndexPage struct {
	web.Page
}

func (p *IndexPage) Render(c *transport.Context) error {
	out, err := web.RenderIndex(&p.Page)
	if err != nil {
		return err
	}

	return c.HTML(http.StatusOK, out)
}

func newIndexPage(tool, input string) *IndexPage {
	infos := toolbox.Tools()
	page := &IndexPage{Page: web.Page{Tool: tool, InputText: input}}
	seen := make(map[string]bool)
	for _, info := range infos {
		page.Tools = append(page.Tools, web.ToolOption{Name: info.Name, Actions: info.Actions})
		for _, action := range info.Actions {
			if !seen[action] {
				seen[action] = true
				page.Actions = append(page.Actions, action)
			}
		}
	}

	return page
}

func (s *ToolboxService) Index(_ context.Context, req *IndexRequest) (*IndexPage, error) {
	return newIndexPage(req.Tool, ""), nil
}

// Submit handles the form post. Every outcome is rendered into the page
// with status 200.
func (s *ToolboxService) Submit(_ context.Context, req *SubmitRequest) (*IndexPage, error) {
	page := newIndexPage(req.Tool, req.InputText)
	if req.bindErr != nil {
		page.setResult(toolbox.FormMessage(req.bindErr))
		return page, nil
	}

	res, err := s.form.Dispatch(toolbox.Request{Tool: req.Tool, Action: req.Action, Input: req.InputText})
	if err != nil {
		page.setResult(toolbox.FormMessage(err))
		return page, nil
	}

	if res.IsImage() {
		page.QRDataURI = template.URL(res.DataURI)
	} else {
		page.setResult(res.Text)
	}

	return page, nil
}

func (p *IndexPage) setResult(text string) {
	p.Result = &text
}

func (s *ToolboxService) Process(_ context.Context, req *ProcessRequest) (*serialize.Response, error) {
	if req.inputErr != nil {
		return nil, apiError(req.inputErr)
	}

	res, err := s.api.Dispatch(toolbox.Request{Tool: req.Tool, Action: req.Action, Input: req.Input})
	if err != nil {
		return nil, apiError(err)
	}

	if res.IsImage() {
		resp := serialize.Image(res.DataURI)
		return &resp, nil
	}

	resp := serialize.Result(res.Text)
	return &resp, nil
}

// apiError 将工具错误映射为HTTP错误, 客户端错误400, 其余500
func apiError(err error) errors.Error {
	kind := toolbox.KindOf(err)
	status, code := http.StatusInternalServerError, CodeServerError
	switch kind {
	case toolbox.InvalidTool:
		status, code = http.StatusBadRequest, CodeInvalidTool
	case toolbox.InvalidAction:
		status, code = http.StatusBadRequest, CodeInvalidAction
	case toolbox.DecodeError:
		status, code = http.StatusBadRequest, CodeDecodeError
	}

	return errors.FromError(code, status, kind.String(), toolbox.APIMessage(err), err)
}

func (s *ToolboxService) Health(_ context.Context, _ *HealthRequest) (*serialize.Response, error) {
	resp := serialize.Result("ok")
	return &resp, nil
}
