package httpx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Parse(t *testing.T) {
	page := Page{DefaultLimit: 20, MaxLimit: 200}

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", query: "", wantLimit: 20, wantOffset: 0},
		{name: "explicit", query: "limit=5&offset=10", wantLimit: 5, wantOffset: 10},
		{name: "upper bound", query: "limit=200", wantLimit: 200},
		{name: "lower bound", query: "limit=1", wantLimit: 1},
		{name: "limit too large", query: "limit=201", wantErr: true},
		{name: "limit zero", query: "limit=0", wantErr: true},
		{name: "limit negative", query: "limit=-3", wantErr: true},
		{name: "limit not a number", query: "limit=ten", wantErr: true},
		{name: "offset negative", query: "offset=-1", wantErr: true},
		{name: "offset not a number", query: "offset=1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			limit, offset, err := page.Parse(q)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrorValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("%w: bad", common.ErrorValidation), http.StatusBadRequest},
		{fmt.Errorf("find: %w", common.ErrorNotFound), http.StatusNotFound},
		{common.ErrorUnauthorized, http.StatusUnauthorized},
		{common.ErrTokenExpired, http.StatusUnauthorized},
		{common.ErrorConflict, http.StatusConflict},
		{common.ErrorRateLimited, http.StatusTooManyRequests},
		{errors.New("db is down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), "err=%v", tt.err)
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), rec, logging.Nop(), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"An unknown error occurred."}`, rec.Body.String())
}

func TestWriteError_ValidationDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("list news: %w", fmt.Errorf("%w: limit must be between 1 and 200", common.ErrorValidation))
	WriteError(context.Background(), rec, logging.Nop(), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request: limit must be between 1 and 200"}`, rec.Body.String())
}

func TestReadJSON(t *testing.T) {
	var dst struct {
		VariantID string `json:"variant_id"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"variant_id":"v1"}`))
	require.NoError(t, ReadJSON(r, &dst))
	assert.Equal(t, "v1", dst.VariantID)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	require.NoError(t, ReadJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope"))
	require.ErrorIs(t, ReadJSON(r, &dst), common.ErrorValidation)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(common.RequestIDHeaderName))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(common.RequestIDHeaderName, "req-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-1", seen)
}

func TestRecover(t *testing.T) {
	h := Recover(logging.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAccessLog_PassesStatusThrough(t *testing.T) {
	h := AccessLog(logging.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, ln, logging.Nop()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
