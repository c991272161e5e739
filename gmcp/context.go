package gmcp

import (
	"context"
	"encoding/json"

	"github.com/mangohow/toolbox/tools/sync"
)

var (
	ctxPool = sync.NewPool[*Context](func() *Context {
		return &Context{}
	})
)

// Context 一次tools/call调用的上下文
type Context struct {
	context.Context
	session   Session
	arguments json.RawMessage
}

func newContext(ctx context.Context, session Session, arguments json.RawMessage) *Context {
	c := ctxPool.Get()
	c.Context = ctx
	c.session = session
	c.arguments = arguments
	return c
}

func putContext(c *Context) {
	c.Context = nil
	c.session = nil
	c.arguments = nil
	ctxPool.Put(c)
}

func (c *Context) SessionID() string {
	return c.session.SessionID()
}

// BindArguments 解析调用参数, 参数缺省时obj保持不变
func (c *Context) BindArguments(obj any) error {
	if len(c.arguments) == 0 || string(c.arguments) == "null" {
		return nil
	}

	return json.Unmarshal(c.arguments, obj)
}
