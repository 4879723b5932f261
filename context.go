package vault

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// DefaultLogger is used for all context that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

type contextKey int

const (
	contextKeyLogger contextKey = iota
	contextKeyCaller
	contextKeyTime
)

// WithLogger sets the logger for this context.
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithLogInfo accepts keyvalue pairs, and returns another context like this,
// after passing all the keyvals to the Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// WithCaller sets the identity that the hosting platform authenticated the
// request as. The engine trusts this value and does not verify signatures.
func WithCaller(ctx context.Context, caller Address) context.Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the authenticated caller of the request.
func GetCaller(ctx context.Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyCaller).(Address)
	return val, ok && len(val) != 0
}

// WithBlockTime sets the time that is considered "now" while processing a
// request. All timestamps recorded by the engine are taken from it.
func WithBlockTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyTime, t)
}

// BlockTime returns the time set with WithBlockTime or the wall clock time
// if none was set.
func BlockTime(ctx context.Context) time.Time {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Now()
	}
	return val
}

// Now returns BlockTime as UnixTime.
func Now(ctx context.Context) UnixTime {
	return AsUnixTime(BlockTime(ctx))
}
