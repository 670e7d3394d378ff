package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type opIDKey struct{}

// WithOpID returns ctx tagged with a fresh operation id, unless ctx already
// carries one. Session transitions and outbound requests share the id so a
// single login can be followed through the log.
func WithOpID(ctx context.Context) context.Context {
	if _, ok := OpID(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, opIDKey{}, uuid.NewString())
}

// OpID extracts the operation id from ctx.
func OpID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(opIDKey{}).(string)
	return id, ok && id != ""
}

// OpIDHandler adds an "op_id" attribute to every record whose context carries
// an operation id.
type OpIDHandler struct {
	inner slog.Handler
}

func NewOpIDHandler(inner slog.Handler) *OpIDHandler {
	return &OpIDHandler{inner: inner}
}

func (h *OpIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *OpIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := OpID(ctx); ok {
		r.AddAttrs(slog.String("op_id", id))
	}
	return h.inner.Handle(ctx, r)
}

func (h *OpIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &OpIDHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *OpIDHandler) WithGroup(name string) slog.Handler {
	return &OpIDHandler{inner: h.inner.WithGroup(name)}
}
