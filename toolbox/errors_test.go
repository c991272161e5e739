package toolbox

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessages(t *testing.T) {
	tests := []struct {
		err  error
		api  string
		form string
	}{
		{invalidTool("nope"), "Invalid tool", "Invalid tool"},
		{invalidAction(ToolCaesar), "Invalid caesar action", "Invalid caesar action"},
		{invalidAction(ToolBase64), "Invalid base64 action", "Invalid base64 action"},
		{decodeError(ToolBase64, errors.New("incorrect padding")), "Base64 error: incorrect padding", "Error: incorrect padding"},
		{serverError(ToolQR, errors.New("too much data")), "Server error: too much data", "Error: too much data"},
		{fmt.Errorf("wrapped: %w", serverError(ToolQR, errors.New("x"))), "Server error: x", "Error: x"},
		{errors.New("foreign"), "Server error: foreign", "Error: foreign"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.api, APIMessage(tt.err))
		assert.Equal(t, tt.form, FormMessage(tt.err))
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "DecodeError", DecodeError.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
	assert.Equal(t, ServerError, KindOf(errors.New("x")))
	assert.Equal(t, Kind(0), KindOf(nil))

	_, err := New().Dispatch(Request{Tool: ToolSHA256, Input: "x"})
	assert.Equal(t, Kind(0), KindOf(err))

	cause := errors.New("cause")
	err = serverError(ToolQR, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "qr: ServerError: cause", err.Error())
	assert.Equal(t, "InvalidTool: Invalid tool", invalidTool("").Error())
}
