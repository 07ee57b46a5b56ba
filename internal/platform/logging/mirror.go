package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives a copy of every emitted log record. Used to fan log
// lines out to an external sink without touching the zap pipeline.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

type mirrorHolder struct {
	fn MirrorFunc
}

var mirror atomic.Pointer[mirrorHolder]

// SetMirror installs the process-wide log mirror. Pass nil to remove it.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&mirrorHolder{fn: fn})
}

func mirrorLog(ctx context.Context, level Level, msg string, args ...any) {
	holder := mirror.Load()
	if holder == nil || holder.fn == nil {
		return
	}
	holder.fn(ctx, level, msg, args...)
}
