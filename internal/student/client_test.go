package student

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func backend(t *testing.T, status int, body string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var seen []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestClient_List(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    []Student
		wantErr bool
	}{
		{
			name:   "populated roster keeps server order",
			status: http.StatusOK,
			body:   `[{"id":2,"name":"Lee"},{"id":1,"name":"Ana"}]`,
			want:   []Student{{ID: "2", Name: "Lee"}, {ID: "1", Name: "Ana"}},
		},
		{
			name:   "empty roster",
			status: http.StatusOK,
			body:   `[]`,
			want:   []Student{},
		},
		{
			name:   "string ids",
			status: http.StatusOK,
			body:   `[{"id":"a-1","name":"Ana"}]`,
			want:   []Student{{ID: "a-1", Name: "Ana"}},
		},
		{
			name:   "any 2xx is success",
			status: http.StatusNonAuthoritativeInfo,
			body:   `[]`,
			want:   []Student{},
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"detail":"boom"}`,
			wantErr: true,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `[]`,
			wantErr: true,
		},
		{
			name:    "null body",
			status:  http.StatusOK,
			body:    `null`,
			wantErr: true,
		},
		{
			name:    "html body",
			status:  http.StatusOK,
			body:    `<html></html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := backend(t, tt.status, tt.body)
			c := NewClient(srv.URL)

			got, err := c.List(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrFetchFailed), "error %v should wrap ErrFetchFailed", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_RequestShape(t *testing.T) {
	srv, seen := backend(t, http.StatusOK, `[]`)
	c := NewClient(srv.URL + "/")
	c.newID = func() string { return "req-1" }

	_, err := c.List(context.Background())
	require.NoError(t, err)

	require.Len(t, *seen, 1, "exactly one request per List")
	req := (*seen)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/students/", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "req-1", req.Header.Get(RequestIDHeader))
}

func TestClient_ListURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:8000", "http://localhost:8000/api/students/"},
		{"http://localhost:8000/", "http://localhost:8000/api/students/"},
		{"https://school.example.com/backend", "https://school.example.com/backend/api/students/"},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			assert.Equal(t, tt.want, NewClient(tt.base).ListURL())
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestClient_CancelledContext(t *testing.T) {
	srv, _ := backend(t, http.StatusOK, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Tracing(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	t.Run("success", func(t *testing.T) {
		srv, _ := backend(t, http.StatusOK, `[{"id":1,"name":"Ana"}]`)
		_, err := NewClient(srv.URL, WithTracerProvider(tp)).List(context.Background())
		require.NoError(t, err)

		spans := rec.Ended()
		require.NotEmpty(t, spans)
		span := spans[len(spans)-1]
		assert.Equal(t, "student.List", span.Name())
		assert.NotEqual(t, codes.Error, span.Status().Code)
	})

	t.Run("failure", func(t *testing.T) {
		srv, _ := backend(t, http.StatusBadGateway, ``)
		_, err := NewClient(srv.URL, WithTracerProvider(tp)).List(context.Background())
		require.Error(t, err)

		spans := rec.Ended()
		span := spans[len(spans)-1]
		assert.Equal(t, codes.Error, span.Status().Code)
	})
}

func TestID_UnmarshalJSON(t *testing.T) {
	var s Student
	require.NoError(t, json.Unmarshal([]byte(`{"id":9007199254740993,"name":"Big"}`), &s))
	assert.Equal(t, ID("9007199254740993"), s.ID)

	require.Error(t, json.Unmarshal([]byte(`{"id":{"x":1},"name":"Bad"}`), &s))
}
