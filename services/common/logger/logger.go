package logger

import (
	"context"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process wide logger. It is a no-op logger until New is called.
var Log = zap.NewNop()

// RequestIDKey is where the request ID lives in a gin or plain context.
const RequestIDKey = "request_id"

type ctxKey struct{}

// New builds the service logger and installs it as Log. In production the
// JSON encoder uses an ISO8601 "timestamp"; elsewhere a colourised console
// encoder is used. A non-nil shipper receives a JSON copy of every entry.
func New(env, service string, shipper io.Writer) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var l *zap.Logger
	if shipper == nil {
		built, err := cfg.Build()
		if err != nil {
			return nil, err
		}
		l = built
	} else {
		level := zap.NewAtomicLevelAt(cfg.Level.Level())
		jsonCfg := zap.NewProductionEncoderConfig()
		jsonCfg.TimeKey = "timestamp"
		jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		var console zapcore.Encoder
		if env == "production" {
			console = zapcore.NewJSONEncoder(cfg.EncoderConfig)
		} else {
			console = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
		}
		core := zapcore.NewTee(
			zapcore.NewCore(console, zapcore.AddSync(os.Stdout), level),
			zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(shipper), level),
		)
		l = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	l = l.With(zap.String("service", service))
	Log = l
	return l, nil
}

// WithRequestID stores a request ID on a plain context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestID reads the request ID from a gin context or a context produced by
// WithRequestID.
func RequestID(ctx context.Context) string {
	if gc, ok := ctx.(*gin.Context); ok {
		if v := gc.GetString(RequestIDKey); v != "" {
			return v
		}
		if gc.Request == nil {
			return ""
		}
		ctx = gc.Request.Context()
	}
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// For returns l annotated with the request ID carried by ctx, if any.
func For(ctx context.Context, l *zap.Logger) *zap.Logger {
	if rid := RequestID(ctx); rid != "" {
		return l.With(zap.String(RequestIDKey, rid))
	}
	return l
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	For(ctx, Log).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	For(ctx, Log).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	For(ctx, Log).Error(msg, fields...)
}
