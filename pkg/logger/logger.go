// Package logger provides the service's structured, levelled logger built on
// log/slog.
//
// Handlers never log through the package-level helpers; they ask for the
// request-scoped logger so every line carries the request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Debug("listing shops")
//	// → time=... level=DEBUG msg="listing shops" request_id=3f2c...
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// L is the base logger. It is replaced by Setup and is safe to use before
// Setup runs (text output at DEBUG level).
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Options controls how Setup builds the base logger.
type Options struct {
	Production bool
	Output     io.Writer
	// Extra handlers receive every record in addition to the console output
	// (e.g. a MongoHandler).
	Extra []slog.Handler
}

// Setup builds the base logger: JSON at INFO in production, text at DEBUG
// everywhere else.
func Setup(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var console slog.Handler
	if opts.Production {
		console = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		console = slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	handler := console
	if len(opts.Extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{console}, opts.Extra...)...)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return L
}

type ctxKey struct{}

// WithCtx returns the request logger stored in ctx by the logging
// middleware, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// InjectLogger stores log in ctx for WithCtx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }

// MultiHandler fans each record out to several handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: hs}
}
