package transport

import "fmt"

// HTTPError reports that the backend was reachable but rejected the request with a non-2xx status code.
// The response body is intentionally not interpreted.
type HTTPError struct {
	Status   int
	Endpoint string
}

func (err *HTTPError) Error() string {
	return fmt.Sprintf("backend rejected '%s' with status %d", err.Endpoint, err.Status)
}

// TimeoutError reports that the backend did not answer within the configured request budget.
// The underlying request was cancelled when the budget elapsed.
type TimeoutError struct {
	Endpoint string
}

func (err *TimeoutError) Error() string {
	return fmt.Sprintf("request to '%s' exceeded its time budget", err.Endpoint)
}

// NetworkError reports a transport-level failure (DNS, connection reset, unusable response body)
// before a well-formed response was received
type NetworkError struct {
	Endpoint string
	Err      error
}

func (err *NetworkError) Error() string {
	return fmt.Sprintf("request to '%s' failed: %s", err.Endpoint, err.Err)
}

func (err *NetworkError) Unwrap() error {
	return err.Err
}
