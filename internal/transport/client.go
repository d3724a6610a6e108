package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dandigam/village-health-hub-sub001/internal/telemetry"
)

// DefaultTimeout is the hard wall-clock budget applied to requests that do not specify their own
const DefaultTimeout = 10 * time.Second

// TokenSource provides the bearer token of the current session, if one exists
type TokenSource interface {
	// Token returns the current bearer token and whether one is available
	Token() (string, bool)
}

// TokenSourceFunc allows using a plain function as a TokenSource
type TokenSourceFunc func() (string, bool)

// Token returns the current bearer token and whether one is available
func (fn TokenSourceFunc) Token() (string, bool) {
	return fn()
}

// Request describes a single request against the camp backend
type Request struct {
	// Endpoint is the path relative to the backend base address
	Endpoint string
	// Method is the HTTP method to use
	Method string
	// Body is JSON-encoded into the request body if it is non-nil
	Body any
	// Header holds additional request headers
	Header http.Header
	// Timeout overrides the client's request budget if it is positive
	Timeout time.Duration
}

// Client issues single requests against the camp backend.
// Every failure mode is classified as exactly one of HTTPError, TimeoutError or NetworkError;
// the client never retries on its own and never panics.
type Client struct {
	base    string
	timeout time.Duration
	http    *http.Client
	tokens  TokenSource
	tracker *telemetry.Tracker
}

// New creates a new backend client.
// tokens may be nil if requests should never carry an authorization header.
func New(base string, timeout time.Duration, tokens TokenSource, tracker *telemetry.Tracker) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base:    base,
		timeout: timeout,
		http:    &http.Client{},
		tokens:  tokens,
		tracker: tracker,
	}
}

// Do performs the given request and returns the raw response payload.
// The returned error is always one of the classified outcome types.
func (client *Client) Do(ctx context.Context, request *Request) ([]byte, error) {
	timeout := request.Timeout
	if timeout <= 0 {
		timeout = client.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	requestID := uuid.New()
	started := time.Now()

	httpRequest, err := client.buildRequest(ctx, request)
	if err != nil {
		outcome := &NetworkError{Endpoint: request.Endpoint, Err: err}
		client.observe(requestID, request, started, 0, outcome)
		return nil, outcome
	}

	response, err := client.http.Do(httpRequest)
	if err != nil {
		outcome := classifyTransportFailure(request.Endpoint, err)
		client.observe(requestID, request, started, 0, outcome)
		return nil, outcome
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		outcome := classifyTransportFailure(request.Endpoint, err)
		client.observe(requestID, request, started, response.StatusCode, outcome)
		return nil, outcome
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		outcome := &HTTPError{Status: response.StatusCode, Endpoint: request.Endpoint}
		client.observe(requestID, request, started, response.StatusCode, outcome)
		return nil, outcome
	}

	client.observe(requestID, request, started, response.StatusCode, nil)
	return payload, nil
}

func (client *Client) buildRequest(ctx context.Context, request *Request) (*http.Request, error) {
	var body io.Reader
	if request.Body != nil {
		raw, err := json.Marshal(request.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, client.base+request.Endpoint, body)
	if err != nil {
		return nil, err
	}

	for key, values := range request.Header {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	if client.tokens != nil {
		if token, ok := client.tokens.Token(); ok {
			httpRequest.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return httpRequest, nil
}

// observe emits the diagnostic event of a finished request.
// It only writes logs and counters and never influences the request outcome itself.
func (client *Client) observe(requestID uuid.UUID, request *Request, started time.Time, status int, outcome error) {
	duration := time.Since(started)

	if outcome == nil {
		log.Debug().
			Stringer("request_id", requestID).
			Str("endpoint", request.Endpoint).
			Str("method", request.Method).
			Int("status", status).
			Dur("duration", duration).
			Msg("backend request succeeded")
		if client.tracker != nil {
			client.tracker.Record(request.Endpoint, telemetry.OutcomeOK)
		}
		return
	}

	event := log.Debug().
		Stringer("request_id", requestID).
		Str("endpoint", request.Endpoint).
		Str("method", request.Method).
		Dur("duration", duration).
		Err(outcome)

	kind := telemetry.OutcomeNetworkError
	switch outcome.(type) {
	case *HTTPError:
		kind = telemetry.OutcomeHTTPError
		event = event.Int("status", status)
	case *TimeoutError:
		kind = telemetry.OutcomeTimeout
	}
	event.Msg("backend request failed")

	if client.tracker != nil {
		client.tracker.RecordError(request.Endpoint, kind, outcome)
	}
}

func classifyTransportFailure(endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Endpoint: endpoint}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &TimeoutError{Endpoint: endpoint}
	}
	return &NetworkError{Endpoint: endpoint, Err: err}
}
