package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studentroster/internal/roster"
	"studentroster/internal/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminURL = "http://localhost:8000/admin"

type fakeFetcher struct {
	calls    int
	students []student.Student
	err      error
}

func (f *fakeFetcher) List(context.Context) ([]student.Student, error) {
	f.calls++
	return f.students, f.err
}

type errLog struct{ errs []error }

func (l *errLog) Debug(string, ...interface{}) {}
func (l *errLog) Info(string, ...interface{})  {}
func (l *errLog) Warn(string, ...interface{})  {}
func (l *errLog) Error(_ string, args ...interface{}) {
	for _, a := range args {
		if err, ok := a.(error); ok {
			l.errs = append(l.errs, err)
		}
	}
}

func get(t *testing.T, srv Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func newTestServer(f Fetcher, log *errLog) Server {
	opts := &Options{AdminURL: testAdminURL, Fetcher: f, DisableReqLogs: true}
	if log != nil {
		opts.Logger = log
	}
	return NewServer(opts)
}

func TestHome_EmptyRoster(t *testing.T) {
	f := &fakeFetcher{students: []student.Student{}}
	rec := get(t, newTestServer(f, nil), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "You have no students in your database..!")
	assert.Contains(t, body, `<a href="`+testAdminURL+`">Django Admin</a>`)
	assert.NotContains(t, body, "<li")
	assert.NotContains(t, body, roster.DisconnectedTitle)
	assert.Equal(t, 1, f.calls)
}

func TestHome_PopulatedRoster(t *testing.T) {
	f := &fakeFetcher{students: []student.Student{
		{ID: "1", Name: "Ana"},
		{ID: "2", Name: "Lee"},
	}}
	rec := get(t, newTestServer(f, nil), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h2>Students List</h2>")
	assert.Equal(t, 2, strings.Count(body, "<li"))
	ana := strings.Index(body, `<li data-key="1">Ana</li>`)
	lee := strings.Index(body, `<li data-key="2">Lee</li>`)
	require.NotEqual(t, -1, ana)
	require.NotEqual(t, -1, lee)
	assert.Less(t, ana, lee)
	assert.NotContains(t, body, testAdminURL)
}

func TestHome_FetchFailure(t *testing.T) {
	log := &errLog{}
	f := &fakeFetcher{err: student.ErrFetchFailed}
	rec := get(t, newTestServer(f, log), "/")

	require.Equal(t, http.StatusOK, rec.Code, "failures render the disconnected view, not an error page")
	body := rec.Body.String()
	assert.Contains(t, body, "Frontend and Backend are not connected!")
	assert.NotContains(t, body, "<li")
	assert.NotContains(t, body, roster.EmptyTitle)

	require.Len(t, log.errs, 1)
	assert.True(t, errors.Is(log.errs[0], student.ErrFetchFailed))
}

func TestHome_EscapesNames(t *testing.T) {
	f := &fakeFetcher{students: []student.Student{{ID: "1", Name: "<script>alert(1)</script>"}}}
	body := get(t, newTestServer(f, nil), "/").Body.String()

	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestHome_EachRequestMountsOnce(t *testing.T) {
	f := &fakeFetcher{students: []student.Student{}}
	srv := newTestServer(f, nil)
	get(t, srv, "/")
	get(t, srv, "/")
	assert.Equal(t, 2, f.calls)
}

func TestHome_CustomBaseURL(t *testing.T) {
	var paths []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer backend.Close()

	base := backend.URL + "/campus"
	srv := NewServer(&Options{
		AdminURL:       base + "/admin",
		Fetcher:        student.NewClient(base),
		DisableReqLogs: true,
	})
	body := get(t, srv, "/").Body.String()

	assert.Equal(t, []string{"/campus/api/students/"}, paths)
	assert.Contains(t, body, `href="`+base+`/admin"`)
}

func TestHome_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	url := backend.URL
	backend.Close()

	log := &errLog{}
	srv := newTestServer(student.NewClient(url), log)
	body := get(t, srv, "/").Body.String()

	assert.Contains(t, body, roster.DisconnectedTitle)
	require.Len(t, log.errs, 1)
	assert.ErrorIs(t, log.errs[0], student.ErrFetchFailed)
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(&fakeFetcher{}, nil), "/healthz")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
