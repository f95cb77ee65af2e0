package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/linsolve/internal/direct"
	"github.com/san-kum/linsolve/internal/jacobi"
	"github.com/san-kum/linsolve/internal/solver"
	"github.com/san-kum/linsolve/internal/trace"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(nil, logger).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// oversizedSystem encodes a rows×cols all-ones system with matching constants.
func oversizedSystem(rows, cols int) string {
	a := make([][]float64, rows)
	for i := range a {
		a[i] = make([]float64, cols)
		for j := range a[i] {
			a[i][j] = 1
		}
	}
	b := make([]float64, rows)
	body, _ := json.Marshal(map[string]any{"coefficients": a, "constants": b})
	return string(body)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestDirectEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/direct", `{"coefficients":[[2,3],[1,-1]],"constants":[7,1]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	res := decodeBody[trace.Result](t, resp)
	assert.True(t, res.Success)
	assert.Equal(t, trace.MethodDirect, res.Method)
	require.Len(t, res.Solution, 2)
	assert.InDelta(t, 2, res.Solution[0], 1e-9)
	assert.InDelta(t, 1, res.Solution[1], 1e-9)
	require.NotNil(t, res.Determinant)
	assert.InDelta(t, -5, *res.Determinant, 1e-12)
	assert.Len(t, res.Steps, 4)
}

func TestDirectSingular(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/direct", `{"coefficients":[[1,2],[2,4]],"constants":[1,2]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	res := decodeBody[trace.Result](t, resp)
	assert.False(t, res.Success)
	assert.Equal(t, direct.MsgSingular, res.Error)
	assert.Len(t, res.Steps, 2)
}

func TestJacobiEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body := `{"coefficients":[[4,-1,0],[-1,4,-1],[0,-1,4]],"constants":[15,10,10],"tolerance":1e-8,"maxIterations":200}`
	resp := post(t, ts, "/api/jacobi", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeBody[trace.Result](t, resp)
	assert.True(t, res.Success)
	require.NotNil(t, res.Converged)
	assert.True(t, *res.Converged)
	require.NotNil(t, res.Tolerance)
	assert.Equal(t, 1e-8, *res.Tolerance)
	assert.Len(t, res.Steps, 5)
}

func TestJacobiValidationFailure(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/jacobi", `{"coefficients":[[0,1],[1,1]],"constants":[1,1]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	res := decodeBody[trace.Result](t, resp)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "position (1, 1)")
	assert.Empty(t, res.Steps)
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/api/direct", `{"coefficients":`},
		{"missing constants", "/api/direct", `{"coefficients":[[1]]}`},
		{"empty matrix", "/api/jacobi", `{"coefficients":[],"constants":[1]}`},
		{"negative tolerance", "/api/jacobi", `{"coefficients":[[1]],"constants":[1],"tolerance":-1}`},
		{"missing coefficients", "/api/dominance", `{}`},
		{"too many rows", "/api/jacobi", oversizedSystem(11, 11)},
		{"row too long", "/api/direct", oversizedSystem(2, 11)},
		{"too many iterations", "/api/jacobi", `{"coefficients":[[1]],"constants":[1],"maxIterations":1001}`},
		{"compare too many iterations", "/api/compare", `{"coefficients":[[1]],"constants":[1],"maxIterations":100000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			e := decodeBody[ErrorResponse](t, resp)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/validate", `{"coefficients":[[1,2],[3,1]],"constants":[1,1]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	v := decodeBody[jacobi.Validation](t, resp)
	assert.True(t, v.Valid)
	require.NotNil(t, v.IsDiagonallyDominant)
	assert.False(t, *v.IsDiagonallyDominant)

	resp = post(t, ts, "/api/validate", `{"coefficients":[[1,2],[3,4],[5,6]],"constants":[1,1]}`)
	v = decodeBody[jacobi.Validation](t, resp)
	assert.False(t, v.Valid)
	assert.Equal(t, jacobi.MsgNotSquare, v.Error)
}

func TestDominanceEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/dominance", `{"coefficients":[[4,-1,0],[-1,4,-1],[0,-1,4]]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isDiagonallyDominant":true}`, string(raw))
}

func TestCompareEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/compare", `{"coefficients":[[4,-1],[-1,4]],"constants":[3,3],"tolerance":1e-10}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	c := decodeBody[solver.Comparison](t, resp)
	assert.True(t, c.Agree)
	require.NotNil(t, c.MaxDifference)
}

func TestCompareUsesServerRegistry(t *testing.T) {
	reg := solver.NewRegistry()
	reg.Register(trace.MethodDirect, func(_ context.Context, req solver.Request) trace.Result {
		return trace.Result{Method: trace.MethodDirect, Success: true, Solution: []float64{0, 0}}
	})
	ts := httptest.NewServer(New(reg, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes())
	defer ts.Close()

	resp := post(t, ts, "/api/compare", `{"coefficients":[[4,-1],[-1,4]],"constants":[3,3],"tolerance":1e-10}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	c := decodeBody[solver.Comparison](t, resp)
	assert.False(t, c.Agree)
	require.NotNil(t, c.MaxDifference)
	assert.InDelta(t, 1, *c.MaxDifference, 1e-6)
}

func TestPresetsAndMethods(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/presets")
	require.NoError(t, err)
	defer resp.Body.Close()

	presets := decodeBody[[]PresetResponse](t, resp)
	require.NotEmpty(t, presets)
	for i := 1; i < len(presets); i++ {
		assert.Less(t, presets[i-1].Name, presets[i].Name)
	}

	resp2, err := http.Get(ts.URL + "/api/methods")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, []string{"direct", "jacobi"}, decodeBody[[]string](t, resp2))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	rec := httptest.NewRecorder()
	New(nil, logger).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	line := buf.String()
	assert.True(t, strings.Contains(line, `"path":"/health"`), line)
	assert.Contains(t, line, `"status":200`)
	assert.Contains(t, line, `"request_id"`)
}

func TestListenAndServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	done := make(chan error, 1)
	go func() { done <- New(nil, logger).ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	assert.NoError(t, <-done)
}
