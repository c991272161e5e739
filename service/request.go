package service

import (
	"fmt"
)

type IndexRequest struct {
	Tool string `query:"tool"`
}

type SubmitRequest struct {
	Tool      string `form:"tool"`
	Action    string `form:"action"`
	InputText string `form:"input_text"`

	bindErr error
}

// ProcessRequest is built from the raw JSON object, a non-string tool or
// action is treated as absent and an absent input as "".
type ProcessRequest struct {
	Tool   string
	Action string
	Input  string

	inputErr error
}

type HealthRequest struct{}

func newProcessRequest(payload map[string]any) *ProcessRequest {
	req := &ProcessRequest{}
	req.Tool, _ = payload["tool"].(string)
	req.Action, _ = payload["action"].(string)

	input, ok := payload["input"]
	if !ok {
		return req
	}
	if s, ok := input.(string); ok {
		req.Input = s
	} else {
		req.inputErr = fmt.Errorf("input must be a string, got %s", jsonType(input))
	}

	return req
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}

	return fmt.Sprintf("%T", v)
}
