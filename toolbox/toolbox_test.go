package toolbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		req  Request
		want Result
	}{
		{"caesar encrypt", Request{Tool: ToolCaesar, Action: ActionEncrypt, Input: "abc"}, Result{Text: "fgh"}},
		{"caesar decrypt", Request{Tool: ToolCaesar, Action: ActionDecrypt, Input: "fgh"}, Result{Text: "abc"}},
		{"caesar shifts every character", Request{Tool: ToolCaesar, Action: ActionEncrypt, Input: "Z z!"}, Result{Text: "_%\x7f&"}},
		{"base64 encode", Request{Tool: ToolBase64, Action: ActionEncode, Input: "hello"}, Result{Text: "aGVsbG8="}},
		{"base64 decode", Request{Tool: ToolBase64, Action: ActionDecode, Input: "aGVsbG8="}, Result{Text: "hello"}},
		{"base64 decode ignores whitespace", Request{Tool: ToolBase64, Action: ActionDecode, Input: "aGVs\nbG8="}, Result{Text: "hello"}},
		{"base64 decode empty", Request{Tool: ToolBase64, Action: ActionDecode, Input: ""}, Result{Text: ""}},
		{"sha256 ignores action", Request{Tool: ToolSHA256, Action: "whatever", Input: ""}, Result{Text: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Dispatch(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDispatchErrors(t *testing.T) {
	d := New()

	tests := []struct {
		name    string
		req     Request
		kind    Kind
		message string
	}{
		{"caesar bogus action", Request{Tool: ToolCaesar, Action: "bogus", Input: "x"}, InvalidAction, "Invalid caesar action"},
		{"caesar missing action", Request{Tool: ToolCaesar, Input: "x"}, InvalidAction, "Invalid caesar action"},
		{"base64 bogus action", Request{Tool: ToolBase64, Action: "encrypt", Input: "x"}, InvalidAction, "Invalid base64 action"},
		{"unknown tool", Request{Tool: "nope", Action: "x", Input: "y"}, InvalidTool, "Invalid tool"},
		{"missing tool", Request{Input: "y"}, InvalidTool, "Invalid tool"},
		{"invalid base64", Request{Tool: ToolBase64, Action: ActionDecode, Input: "not-valid-base64!!"}, DecodeError, ""},
		{"decrypt below zero", Request{Tool: ToolCaesar, Action: ActionDecrypt, Input: "\x01"}, ServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := d.Dispatch(tt.req)
			require.Error(t, err)
			assert.Equal(t, Result{}, res)
			assert.Equal(t, tt.kind, KindOf(err))

			var te *Error
			require.ErrorAs(t, err, &te)
			if tt.message != "" {
				assert.Equal(t, tt.message, te.Message)
			}
		})
	}
}

func TestDispatchBase64NonUTF8(t *testing.T) {
	// 0xff 0xfe 0x00
	input := "//4A"

	t.Run("strict dispatcher reports a decode error", func(t *testing.T) {
		_, err := New().Dispatch(Request{Tool: ToolBase64, Action: ActionDecode, Input: input})
		require.Error(t, err)
		assert.Equal(t, DecodeError, KindOf(err))
		assert.Contains(t, err.Error(), "not valid UTF-8")
	})

	t.Run("hex fallback dispatcher returns hex", func(t *testing.T) {
		res, err := New(WithHexFallback()).Dispatch(Request{Tool: ToolBase64, Action: ActionDecode, Input: input})
		require.NoError(t, err)
		assert.Equal(t, "fffe00", res.Text)
	})

	t.Run("hex fallback still rejects malformed base64", func(t *testing.T) {
		_, err := New(WithHexFallback()).Dispatch(Request{Tool: ToolBase64, Action: ActionDecode, Input: "abc"})
		assert.Equal(t, DecodeError, KindOf(err))
	})
}

func TestDispatchQR(t *testing.T) {
	res, err := New().Dispatch(Request{Tool: ToolQR, Input: "hello"})
	require.NoError(t, err)
	assert.True(t, res.IsImage())
	assert.Empty(t, res.Text)
	assert.True(t, strings.HasPrefix(res.DataURI, "data:image/png;base64,"))
}

func TestDispatchMaxInputLength(t *testing.T) {
	d := New(WithMaxInputLength(4))

	_, err := d.Dispatch(Request{Tool: ToolSHA256, Input: "12345"})
	require.Error(t, err)
	assert.Equal(t, ServerError, KindOf(err))
	assert.Contains(t, err.Error(), "input exceeds 4 bytes")

	res, err := d.Dispatch(Request{Tool: ToolSHA256, Input: "1234"})
	require.NoError(t, err)
	assert.Len(t, res.Text, 64)

	_, err = New(WithMaxInputLength(0)).Dispatch(Request{Tool: ToolSHA256, Input: strings.Repeat("a", DefaultMaxInputLength+1)})
	assert.NoError(t, err)
}

func TestDispatchRecoversPanic(t *testing.T) {
	d := New(WithQROptions(QROptions{BoxSize: 10, Border: 3}))

	// nil palette colors make png encoding panic
	_, err := d.Dispatch(Request{Tool: ToolQR, Input: "hello"})
	require.Error(t, err)
	assert.Equal(t, ServerError, KindOf(err))
}

func TestTools(t *testing.T) {
	infos := Tools()
	require.Len(t, infos, 4)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{ToolCaesar, ToolBase64, ToolSHA256, ToolQR}, names)

	infos[0].Name = "changed"
	assert.Equal(t, ToolCaesar, Tools()[0].Name)
}
