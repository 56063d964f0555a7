package function

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/f3rmion/sancai/internal/dict"
	"github.com/f3rmion/sancai/internal/engine"
	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func testHandler() *Handler {
	d := dict.FromRecords(
		dict.Record{Char: "王", Strokes: dict.Strokes{Kangxi: 4}},
		dict.Record{Char: "浩", Strokes: dict.Strokes{Kangxi: 11}},
		dict.Record{Char: "然", Strokes: dict.Strokes{Kangxi: 12}},
	)
	return NewHandler(engine.New(engine.Static(d), nil), zap.NewNop())
}

func post(body string) events.LambdaFunctionURLRequest {
	var req events.LambdaFunctionURLRequest
	req.RequestContext.HTTP.Method = http.MethodPost
	req.Body = body
	return req
}

func TestHandle(t *testing.T) {
	h := testHandler()
	ctx := context.Background()

	tests := []struct {
		name   string
		req    events.LambdaFunctionURLRequest
		status int
		check  func(t *testing.T, body string)
	}{
		{
			name:   "ok",
			req:    post(`{"surname": "王", "givenName": "浩然"}`),
			status: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.Equal(t, int64(23), gjson.Get(body, "result.grids.earth").Int())
				assert.Equal(t, "earth", gjson.Get(body, "result.threeTalents.0").String())
			},
		},
		{
			name:   "unresolved",
			req:    post(`{"surname": "王", "givenName": "龘"}`),
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body string) {
				assert.Equal(t, "UNRESOLVED_CHARACTER", gjson.Get(body, "error.code").String())
				assert.Equal(t, "龘", gjson.Get(body, "invalidCharacters.0").String())
			},
		},
		{
			name:   "invalid",
			req:    post(`{"surname": "", "givenName": "浩"}`),
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body string) {
				assert.Equal(t, "surname", gjson.Get(body, "error.field").String())
				assert.Equal(t, "empty", gjson.Get(body, "error.reason").String())
			},
		},
		{
			name:   "bad json",
			req:    post(`{"surname":`),
			status: http.StatusBadRequest,
		},
		{
			name: "base64",
			req: func() events.LambdaFunctionURLRequest {
				r := post(base64.StdEncoding.EncodeToString([]byte(`{"surname": "王", "givenName": "浩"}`)))
				r.IsBase64Encoded = true
				return r
			}(),
			status: http.StatusOK,
		},
		{
			name: "wrong method",
			req: func() events.LambdaFunctionURLRequest {
				r := post(`{}`)
				r.RequestContext.HTTP.Method = http.MethodGet
				return r
			}(),
			status: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.Handle(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])
			if tt.check != nil {
				tt.check(t, resp.Body)
			}
		})
	}
}

func TestHandleDictionaryUnavailable(t *testing.T) {
	loader := dict.NewLoader(dict.FileSource{Path: "/nonexistent/dictionary.json"}, time.Second, nil)
	h := NewHandler(engine.New(loader, nil), nil)

	resp, err := h.Handle(context.Background(), post(`{"surname": "王", "givenName": "浩"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.True(t, gjson.Get(resp.Body, "error.retryable").Bool())
}

func TestStatusForUnknownError(t *testing.T) {
	out := engine.Assemble(sancai.NameInput{Surname: "王", GivenName: "浩"}, nil, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(out))
}

func TestParseEnv(t *testing.T) {
	t.Setenv("SANCAI_DICTIONARY", "https://example.com/strokes.json")
	t.Setenv("SANCAI_LOAD_TIMEOUT", "5s")

	cfg, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/strokes.json", cfg.Dictionary)
	assert.Equal(t, 5*time.Second, cfg.LoadTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
}

func TestParseEnvRequiresDictionary(t *testing.T) {
	t.Setenv("SANCAI_DICTIONARY", "")
	_, err := ParseEnv()
	assert.Error(t, err)
}
