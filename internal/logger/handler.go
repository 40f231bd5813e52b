package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// tagKey is the attribute key DebugTagf attaches and the filter inspects.
const tagKey = "tag"

// debugFilter dumps filter decisions to stderr. Only useful when chasing a
// misconfigured filter list, hence an env switch rather than config.
var debugFilter = os.Getenv("LOOM_DEBUG_LOG_FILTER") != ""

// filteringHandler wraps a base slog.Handler and drops records whose
// source package, source file, or tag is excluded by the config lists.
// Disabled lists override enabled lists; a non-empty enabled list makes
// membership mandatory.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{baseHandler: base, cfg: cfg}
}

// Enabled defers to the base handler's level check.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// Handle applies package, file, and tag filtering before delegating.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	pkg, file := sourceOf(r)

	if file != "" {
		if dropped, why := h.cfg.excludesSource(pkg, file); dropped {
			if debugFilter {
				fmt.Fprintf(os.Stderr, "[logfilter] drop %q: %s\n", r.Message, why)
			}
			return nil
		}
	}

	tag, hasTag := tagOf(r)
	if dropped, why := h.cfg.excludesTag(tag, hasTag); dropped {
		if debugFilter {
			fmt.Fprintf(os.Stderr, "[logfilter] drop %q: %s\n", r.Message, why)
		}
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

// sourceOf extracts the base filename and immediate package directory of
// the record's origin, preferring the Source attribute and falling back to
// resolving the PC.
func sourceOf(r slog.Record) (pkg, file string) {
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == slog.SourceKey {
			if source, ok := a.Value.Any().(*slog.Source); ok && source != nil && source.File != "" {
				file = filepath.Base(source.File)
				pkg = filepath.Base(filepath.Dir(source.File))
			}
			return false
		}
		return true
	})
	if file == "" && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		if frame, _ := frames.Next(); frame.File != "" {
			file = filepath.Base(frame.File)
			pkg = filepath.Base(filepath.Dir(frame.File))
		}
	}
	return pkg, file
}

// tagOf returns the record's tag attribute, lowercased, if present.
func tagOf(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			found = true
			return false
		}
		return true
	})
	return tag, found
}

// WithAttrs returns a new handler with attributes added to the base.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group opened on the base.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
