package binding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrEmptyBody 请求体为空
	ErrEmptyBody = errors.New("bind json error: empty request body")
	// ErrBodyTooLarge 请求体超过了http.MaxBytesReader的限制
	ErrBodyTooLarge = errors.New("bind json error: request body too large")
	// ErrTrailingData 第一个JSON值之后还有其他内容
	ErrTrailingData = errors.New("bind json error: unexpected data after the JSON value")
)

type JsonBinding struct{}

// Bind decodes the body regardless of the Content-Type header.
func (j JsonBinding) Bind(r *http.Request, obj any) error {
	if r == nil || r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	if obj == nil {
		return errors.New("bind json error: obj is nil")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(obj); err != nil {
		return decodeError(err)
	}

	// body中只能有一个JSON值
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return ErrTrailingData
		}
		if err = decodeError(err); errors.Is(err, ErrBodyTooLarge) {
			return err
		}
		return ErrTrailingData
	}

	return nil
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return ErrBodyTooLarge
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	}

	return fmt.Errorf("bind json error: %w", err)
}

func (j JsonBinding) Name() string {
	return "json"
}
