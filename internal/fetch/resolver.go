package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/rs/zerolog/log"

	"github.com/dandigam/village-health-hub-sub001/internal/telemetry"
	"github.com/dandigam/village-health-hub-sub001/internal/transport"
)

// Provenance tags whether resolved data came from the live backend or is a substituted fallback
type Provenance string

const (
	ProvenanceLive     Provenance = "live"
	ProvenanceFallback Provenance = "fallback"
)

// Result carries the data a read resolved to together with its provenance.
// Exactly one provenance applies; a result is never an error.
type Result[T any] struct {
	Data       T          `json:"data"`
	Provenance Provenance `json:"provenance"`
}

// Resolver wraps the backend client with the read policy of the console: a read always produces
// usable data. Failed or empty reads are answered with the caller-supplied fallback value instead
// of an error, because a dashboard that may run against an unreachable or unseeded backend must
// never present a blank error screen for a read.
type Resolver struct {
	client  *transport.Client
	tracker *telemetry.Tracker
}

// NewResolver creates a new read resolver on top of the given backend client
func NewResolver(client *transport.Client, tracker *telemetry.Tracker) *Resolver {
	return &Resolver{
		client:  client,
		tracker: tracker,
	}
}

// Resolve reads the given endpoint and returns its payload tagged as live data.
// If the read fails with any outcome classification, or succeeds with a structurally empty payload
// (null, or a collection with zero elements), the supplied fallback value is returned tagged as
// fallback data. No error ever crosses this boundary.
func Resolve[T any](ctx context.Context, resolver *Resolver, endpoint string, fallback T) Result[T] {
	payload, err := resolver.client.Do(ctx, &transport.Request{
		Endpoint: endpoint,
		Method:   http.MethodGet,
	})
	if err != nil {
		log.Debug().Str("endpoint", endpoint).Err(err).Msg("read failed; serving fallback data")
		return substitute(resolver, endpoint, fallback)
	}

	if emptyPayload(payload) {
		log.Debug().Str("endpoint", endpoint).Msg("read returned no content; serving fallback data")
		return substitute(resolver, endpoint, fallback)
	}

	var data T
	if err := json.Unmarshal(payload, &data); err != nil {
		log.Debug().Str("endpoint", endpoint).Err(err).Msg("read returned an unusable payload; serving fallback data")
		return substitute(resolver, endpoint, fallback)
	}
	if emptyValue(data) {
		log.Debug().Str("endpoint", endpoint).Msg("read returned an empty collection; serving fallback data")
		return substitute(resolver, endpoint, fallback)
	}

	return Result[T]{
		Data:       data,
		Provenance: ProvenanceLive,
	}
}

func substitute[T any](resolver *Resolver, endpoint string, fallback T) Result[T] {
	if resolver.tracker != nil {
		resolver.tracker.Record(endpoint, telemetry.OutcomeFallback)
	}
	return Result[T]{
		Data:       fallback,
		Provenance: ProvenanceFallback,
	}
}

// emptyPayload reports whether the raw response payload carries no usable content at all
func emptyPayload(payload []byte) bool {
	trimmed := bytes.TrimSpace(payload)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// emptyValue reports whether a decoded payload is a collection with zero elements
func emptyValue(value any) bool {
	ref := reflect.ValueOf(value)
	switch ref.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return ref.Len() == 0
	case reflect.Pointer:
		return ref.IsNil()
	default:
		return false
	}
}
