package binding

import (
	"errors"
	"fmt"
	"net/http"
)

// FormBinding 绑定x-www-form-urlencoded或multipart表单中的body参数
type FormBinding struct{}

const defaultMemory = 32 << 20

func (f FormBinding) Bind(r *http.Request, obj any) error {
	if err := r.ParseMultipartForm(defaultMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("bind form error: request body too large: %w", err)
		}
		return fmt.Errorf("bind form error: %w", err)
	}

	return mapValues(r.PostForm, f.Name(), obj)
}

func (f FormBinding) Name() string {
	return "form"
}

// QueryBinding 绑定路径中的查询参数 /api/xxx?key1=aaa&key2=bbb
type QueryBinding struct {
	Tag string
}

func (q QueryBinding) Bind(r *http.Request, obj any) error {
	return mapValues(r.URL.Query(), q.Tag, obj)
}

func (q QueryBinding) Name() string {
	return "query"
}
