package llog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mangohow/toolbox/service"
	transport "github.com/mangohow/toolbox/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, sync, err := InitLogger(WithConsole(&buf), WithLevel("debug"), WithServiceName("toolbox"))
	require.NoError(t, err)
	defer sync()

	logger.Infow("hello", "k", "v")
	sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "toolbox", entry["service"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "time")
}

func TestInitLoggerFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "toolbox.log")
	logger, sync, err := InitLogger(WithConsole(nil), WithFilename(filename), WithRotation(1, 1, 1))
	require.NoError(t, err)

	logger.Info("to file")
	sync()
	assert.FileExists(t, filename)
}

func TestInitLoggerInvalid(t *testing.T) {
	_, _, err := InitLogger(WithLevel("loud"))
	assert.Error(t, err)

	_, _, err = InitLogger(WithEncoding("xml"))
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("warn"))
	assert.Error(t, SetLevel("nope"))
	require.NoError(t, SetLevel("info"))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, GetLogger(), FromContext(context.Background()))

	l := GetLogger().With("x", 1)
	assert.Equal(t, l, FromContext(WithLogger(context.Background(), l)))
}

func TestMiddlewares(t *testing.T) {
	var buf bytes.Buffer
	_, sync, err := InitLogger(WithConsole(&buf))
	require.NoError(t, err)
	defer sync()

	s := transport.New()
	s.Middleware(LoggerInjectMiddleware(""), RequestLoggingMiddleware())
	service.RegisterToolboxHTTPServer(s, service.NewToolboxService(0))

	t.Run("keeps the incoming request id", func(t *testing.T) {
		buf.Reset()
		r := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{"tool":"sha256","input":"x"}`))
		r.Header.Set("X-Request-ID", "rid-1")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rid-1", w.Header().Get("X-Request-ID"))
		assert.Contains(t, buf.String(), `"requestId":"rid-1"`)
		assert.Contains(t, buf.String(), `"path":"/process"`)
		assert.NotContains(t, buf.String(), `"input"`)
	})

	t.Run("generates a request id and logs client errors", func(t *testing.T) {
		buf.Reset()
		r := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), `"errMsg":"No JSON payload"`)
		assert.Contains(t, buf.String(), `"status":400`)
	})
}
