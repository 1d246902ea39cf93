package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/argot"
	httpadapter "github.com/aretw0/argot/pkg/adapters/http"
	"github.com/aretw0/argot/pkg/adapters/memory"
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/observability"
	"github.com/aretw0/argot/pkg/persistence/middleware"
	"github.com/aretw0/argot/pkg/schema"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	eng, err := argot.New(argot.WithBuiltins(), argot.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)

	store, err := memory.NewFromCommands(domain.Command{
		Name:        "move",
		Description: "Move a piece",
		Usage: schema.Usage{
			{Name: "steps", Type: schema.Types("number")},
			{Name: "dir", Type: schema.Types("string"), Optional: true},
		},
	})
	require.NoError(t, err)

	return httpadapter.NewHandler(eng, store, httpadapter.WithGatherer(reg))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httpadapter.ErrorDetail {
	t.Helper()
	var body httpadapter.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestHealthAndInfo(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), argot.Version)
}

func TestListTypes(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, "GET", "/types", "")
	require.Equal(t, http.StatusOK, w.Code)

	var types []httpadapter.TypeInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	require.Len(t, types, 6)
	assert.Equal(t, "boolean", types[0].Name)
}

func TestCommands(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, "GET", "/commands", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"synopsis":"move <steps:number> [dir:string]"`)

	w = do(t, h, "GET", "/commands/move", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"description":"Move a piece"`)

	w = do(t, h, "GET", "/commands/fly", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeError(t, w).Kind)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
		wantKind string
	}{
		{
			name:     "catalog command",
			body:     `{"command":"move","tokens":["3","north"]}`,
			wantCode: http.StatusOK,
			wantBody: `{"command":"move","values":[3,"north"]}`,
		},
		{
			name:     "inline usage with json numbers",
			body:     `{"usage":[{"type":["number","string"],"count":2}],"tokens":[4,"x"]}`,
			wantCode: http.StatusOK,
			wantBody: `{"values":[[4,"x"]]}`,
		},
		{
			name:     "argument error",
			body:     `{"command":"move","tokens":["far"]}`,
			wantCode: http.StatusUnprocessableEntity,
			wantKind: "token_validation",
		},
		{
			name:     "schema error",
			body:     `{"usage":[{"type":"string","required":false},{"type":"string"}],"tokens":[]}`,
			wantCode: http.StatusBadRequest,
			wantKind: "schema_order",
		},
		{
			name:     "usage not a list",
			body:     `{"usage":{"type":"string"},"tokens":[]}`,
			wantCode: http.StatusBadRequest,
			wantKind: "schema_type",
		},
		{
			name:     "unknown command",
			body:     `{"command":"fly","tokens":[]}`,
			wantCode: http.StatusNotFound,
			wantKind: "not_found",
		},
		{
			name:     "both command and usage",
			body:     `{"command":"move","usage":[],"tokens":[]}`,
			wantCode: http.StatusBadRequest,
			wantKind: "bad_request",
		},
		{
			name:     "neither",
			body:     `{"tokens":[]}`,
			wantCode: http.StatusBadRequest,
			wantKind: "bad_request",
		},
		{
			name:     "malformed body",
			body:     `{`,
			wantCode: http.StatusBadRequest,
			wantKind: "bad_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t)
			w := do(t, h, "POST", "/parse", tt.body)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, decodeError(t, w).Kind)
			}
		})
	}
}

func TestParse_ArgumentErrorDetail(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, "POST", "/parse", `{"command":"move","tokens":["far"]}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	detail := decodeError(t, w)
	require.NotNil(t, detail.Position)
	assert.Equal(t, 0, *detail.Position)
	assert.Equal(t, "far", detail.Value)
	assert.Equal(t, []string{"number"}, detail.Types)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHandler(t)

	do(t, h, "POST", "/parse", `{"command":"move","tokens":["1"]}`)
	do(t, h, "POST", "/parse", `{"command":"move","tokens":["x"]}`)

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `argot_parse_total{outcome="success"} 1`)
	assert.Contains(t, body, `argot_parse_errors_total{kind="token_validation"} 1`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	eng, err := argot.New()
	require.NoError(t, err)
	h := httpadapter.NewHandler(eng, nil)

	w := do(t, h, "GET", "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// No catalog configured
	w = do(t, h, "GET", "/commands", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := newHandler(t)
	w := do(t, h, "OPTIONS", "/parse", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPutAndDeleteCommand(t *testing.T) {
	eng, err := argot.New()
	require.NoError(t, err)
	store := middleware.NewValidationMiddleware(eng)(memory.NewStore())
	h := httpadapter.NewHandler(eng, store)

	// 1. Create
	w := do(t, h, "PUT", "/commands/greet", `{"description":"Say hi","usage":[{"name":"who","type":"string"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"synopsis":"greet <who:string>"`)

	w = do(t, h, "POST", "/parse", `{"command":"greet","tokens":["ada"]}`)
	assert.JSONEq(t, `{"command":"greet","values":["ada"]}`, w.Body.String())

	// 2. Rejected usages never reach the store
	w = do(t, h, "PUT", "/commands/bad", `{"usage":[{"type":"uuid"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unknown_type", decodeError(t, w).Kind)

	w = do(t, h, "PUT", "/commands/bad", `{"usage":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "schema_type", decodeError(t, w).Kind)

	w = do(t, h, "GET", "/commands/bad", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 3. Delete
	w = do(t, h, "DELETE", "/commands/greet", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, "GET", "/commands/greet", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutCommand_ReadOnly(t *testing.T) {
	eng, err := argot.New()
	require.NoError(t, err)
	store := middleware.NewReadOnlyMiddleware()(memory.NewStore())
	h := httpadapter.NewHandler(eng, store)

	w := do(t, h, "PUT", "/commands/greet", `{"usage":[]}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "read_only", decodeError(t, w).Kind)

	w = do(t, h, "DELETE", "/commands/greet", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
