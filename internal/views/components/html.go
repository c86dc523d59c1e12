package components

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/a-h/templ"
)

// HTML writes markup to w and remembers the first write error, so a view can be
// written as a straight sequence of calls and checked once at the end.
type HTML struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewHTML returns a writer bound to ctx and w.
func NewHTML(ctx context.Context, w io.Writer) *HTML {
	return &HTML{ctx: ctx, w: w}
}

// Raw writes markup unescaped.
func (h *HTML) Raw(markup string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, markup)
}

// Text writes value with HTML escaping.
func (h *HTML) Text(value string) {
	h.Raw(templ.EscapeString(value))
}

// Printf formats markup. Arguments of any string kind and fmt.Stringer values
// are escaped; other arguments are formatted as-is.
func (h *HTML) Printf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			escaped[i] = templ.EscapeString(v)
		case fmt.Stringer:
			escaped[i] = templ.EscapeString(v.String())
		default:
			if rv := reflect.ValueOf(arg); rv.Kind() == reflect.String {
				escaped[i] = templ.EscapeString(rv.String())
				continue
			}
			escaped[i] = arg
		}
	}
	h.Raw(fmt.Sprintf(format, escaped...))
}

// Component renders a nested component in place.
func (h *HTML) Component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// Err reports the first error encountered.
func (h *HTML) Err() error {
	return h.err
}

// Func adapts a markup-writing function to a templ.Component.
func Func(render func(h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(ctx, w)
		render(h)
		return h.Err()
	})
}
