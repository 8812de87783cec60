package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New() *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	if strings.ToLower(os.Getenv("FUND_ENV")) == "dev" {
		logger, err = zap.NewDevelopment(opts...)
	} else {
		opts = append(opts, zap.Fields(zap.Field{
			Key:    "FUND_ENV",
			Type:   zapcore.StringType,
			String: os.Getenv("FUND_ENV"),
		}))
		logger, err = zap.NewProduction(opts...)
	}

	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

const ContextKey = "LOGGER"

func NewContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, logger)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	logger, ok := ctx.Value(ContextKey).(*zap.SugaredLogger)
	if !ok {
		logger = New()
		logger.Warn("no logger found in ctx - creating new one")
	}
	return logger
}

func init() {
	logger := New()
	zap.ReplaceGlobals(logger.Desugar())
}
