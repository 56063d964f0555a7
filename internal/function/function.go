// Package function serves name analysis behind an AWS Lambda function URL.
package function

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/caarlos0/env/v11"
	"github.com/f3rmion/sancai/internal/engine"
	"github.com/f3rmion/sancai/internal/sancai"
	"go.uber.org/zap"
)

// Config is read from the environment of the function.
type Config struct {
	Dictionary    string        `env:"SANCAI_DICTIONARY,required,notEmpty"` // file path or http(s) URL
	LoadTimeout   time.Duration `env:"SANCAI_LOAD_TIMEOUT" envDefault:"30s"`
	LogLevel      string        `env:"SANCAI_LOG_LEVEL"    envDefault:"info"`
	RedisAddr     string        `env:"SANCAI_REDIS_ADDR"`
	RedisPassword string        `env:"SANCAI_REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"SANCAI_CACHE_TTL"    envDefault:"24h"`
}

// ParseEnv loads Config from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// Handler answers POST {"surname": "...", "givenName": "..."} with an engine.Outcome.
type Handler struct {
	analyzer interface {
		Analyze(ctx context.Context, in sancai.NameInput) (*sancai.Result, error)
	}
	logger *zap.Logger
}

// NewHandler creates a handler over e.
func NewHandler(e *engine.Engine, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{analyzer: e, logger: logger}
}

// Handle is the lambda entry point.
func (h *Handler) Handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	if m := event.RequestContext.HTTP.Method; m != "" && m != http.MethodPost {
		return errResp(http.StatusMethodNotAllowed, "use POST")
	}

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}

	var in sancai.NameInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return errResp(http.StatusBadRequest, "invalid JSON: "+err.Error())
	}
	in = sancai.Normalize(in)

	res, err := h.analyzer.Analyze(ctx, in)
	out := engine.Assemble(in, res, err)

	status := StatusFor(out)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Analysis failed",
			zap.String("surname", in.Surname),
			zap.String("given_name", in.GivenName),
			zap.Error(err),
		)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return errResp(http.StatusInternalServerError, "encoding outcome failed")
	}
	return events.LambdaFunctionURLResponse{StatusCode: status, Headers: jsonHeader, Body: string(data)}, nil
}

// StatusFor maps an outcome to an HTTP status code.
func StatusFor(out engine.Outcome) int {
	if out.OK {
		return http.StatusOK
	}
	if out.Error == nil {
		return http.StatusInternalServerError
	}
	switch out.Error.Code {
	case sancai.CodeInvalidInput, sancai.CodeUnresolvedCharacter:
		return http.StatusUnprocessableEntity
	case sancai.CodeDictionaryUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}
