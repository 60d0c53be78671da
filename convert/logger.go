package convert

import (
	"context"
	"log/slog"

	"github.com/ByLCY/figui/figma"
)

// nopHandler 丢弃所有日志；Enabled 返回 false，调用方不会格式化消息。
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

func loggerOrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return newNopLogger()
	}
	return l
}

// nodeAttrs 是日志中标识节点的统一字段。
func nodeAttrs(n *figma.Node) slog.Attr {
	if n == nil {
		return slog.Group("node")
	}
	return slog.Group("node",
		slog.String("id", n.ID),
		slog.String("name", n.Name),
		slog.String("type", string(n.Type)),
	)
}
