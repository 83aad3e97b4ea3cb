package student

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"studentroster/internal/jsonutil"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// ListPath is the backend route serving the roster.
const ListPath = "/api/students/"

// RequestIDHeader carries a per-request id so backend and client logs line up.
const RequestIDHeader = "X-Request-ID"

const tracerName = "studentroster/student"

// ErrFetchFailed covers every way a roster fetch can fail: transport errors,
// non-2xx statuses and undecodable bodies alike.
var ErrFetchFailed = errors.New("fetch failed")

// Client lists students from the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  oteltrace.Tracer
	newID   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. No timeout is applied by
// default; cancellation comes from the caller's context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp oteltrace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tracer:  otel.Tracer(tracerName),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListURL returns the absolute URL of the roster endpoint.
func (c *Client) ListURL() string {
	return c.baseURL + ListPath
}

// List performs a single GET against the roster endpoint and returns the
// records in server order. A successful response always yields a non-nil
// slice; every failure wraps ErrFetchFailed.
func (c *Client) List(ctx context.Context) ([]Student, error) {
	url := c.ListURL()
	reqID := c.newID()

	ctx, span := c.tracer.Start(ctx, "student.List",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", url),
			attribute.String("studentroster.request_id", reqID),
		))
	defer span.End()

	students, err := c.list(ctx, url, reqID, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("studentroster.students", len(students)))
	return students, nil
}

func (c *Client) list(ctx context.Context, url, reqID string, span oteltrace.Span) ([]Student, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", ErrFetchFailed, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	students, err := jsonutil.UnmarshalArrayAllowEmpty[Student](body, "decode students")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return students, nil
}
