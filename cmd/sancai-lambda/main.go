//go:build lambda

// Package main runs the sancai analysis as an AWS Lambda function URL handler.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/f3rmion/sancai/internal/cache"
	"github.com/f3rmion/sancai/internal/dict"
	"github.com/f3rmion/sancai/internal/engine"
	"github.com/f3rmion/sancai/internal/function"
	"github.com/f3rmion/sancai/internal/logging"
	"go.uber.org/zap"
)

func main() {
	cfg, err := function.ParseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.NewWithWriter(cfg.LogLevel, os.Stdout)
	defer logger.Sync()

	// The loader lives as long as the execution environment, so warm invocations
	// reuse the parsed dictionary.
	loader := dict.NewLoader(dict.NewSource(cfg.Dictionary), cfg.LoadTimeout, logger)
	e := engine.New(loader, logger)

	if cfg.RedisAddr != "" {
		rc, err := cache.Connect(context.Background(), cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			TTL:      cfg.CacheTTL,
		}, logger)
		if err != nil {
			logger.Warn("Result cache disabled", zap.Error(err))
		} else {
			defer rc.Close()
			e = e.WithCache(rc)
		}
	}

	lambda.Start(function.NewHandler(e, logger).Handle)
}
