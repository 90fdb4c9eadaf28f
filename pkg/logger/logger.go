// Package logger provides the process-wide structured logger: a zap JSON core
// on stderr exposed as a logr.Logger.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/jptr/pkg/settings"
)

type loggerContextKey struct{}

// Field names shared by every log entry and by callers adding values.
const (
	CommandKey   = "command"
	PointerKey   = "pointer"
	FileKey      = "file"
	FormatKey    = "format"
	CommitKey    = "commit"
	VersionKey   = "version"
	BuildTimeKey = "build_time"
	GoVersionKey = "go_version"
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

var (
	once sync.Once

	globalZapLogger  *zap.Logger
	globalLogrLogger *logr.Logger

	defaultNoopLogger = logr.Discard()
)

// New builds a zap-backed logger writing JSON lines to w. logLevel follows
// zapcore levels: -1 is debug (logr V(1)), 0 info, 1 warn, 2 error.
func New(w io.Writer, logLevel int8) (logr.Logger, *zap.Logger) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	goVersion := "unknown"
	if bi, ok := debug.ReadBuildInfo(); ok {
		goVersion = bi.GoVersion
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(zapcore.Level(logLevel)),
	).With([]zapcore.Field{
		zap.String(CommitKey, settings.VersionInformation.Commit),
		zap.String(VersionKey, settings.VersionInformation.BuildVersion),
		zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
		zap.String(GoVersionKey, goVersion),
	})

	zl := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.WithFatalHook(zapcore.WriteThenPanic),
	)
	return zapr.NewLogger(zl), zl
}

// Get initializes the global logger on stderr the first time it is called;
// later calls return the same logger whatever the level.
func Get(logLevel int8) *logr.Logger {
	once.Do(func() {
		lgr, zl := New(os.Stderr, logLevel)
		globalZapLogger = zl
		globalLogrLogger = &lgr
	})
	if globalLogrLogger == nil {
		return &defaultNoopLogger
	}
	return globalLogrLogger
}

// WithLogger attaches log to ctx. A context already holding the same logger
// is returned unchanged.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger attached to ctx, then the global logger,
// then a no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && log != nil {
		return log
	}
	return GetGlobalLogger()
}

// Sync flushes buffered entries. Errors from syncing a pipe or terminal are
// ignored.
func Sync() {
	if globalZapLogger == nil {
		return
	}
	if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
	}
}

// isIgnorableSyncError matches the errors Sync returns for pipes and TTYs.
// Windows consoles report "The handle is invalid." wrapped in *os.PathError.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}

// GetGlobalLogger returns the global logger, or a no-op logger before Get.
func GetGlobalLogger() *logr.Logger {
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// GetNoopLogger returns a logger that discards everything.
func GetNoopLogger() *logr.Logger {
	return &defaultNoopLogger
}

// WithValues returns a copy of lgr carrying keysAndValues.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	if lgr == nil {
		lgr = &defaultNoopLogger
	}
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}
