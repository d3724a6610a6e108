package fetch

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dandigam/village-health-hub-sub001/internal/transport"
)

// Mutator wraps the backend client with the write policy of the console: a failed write surfaces
// as a nil result and is never papered over with substituted data. Fabricating success for a write
// would corrupt caller assumptions about persisted state, so writes fail visibly while reads
// (see Resolver) degrade silently.
type Mutator struct {
	client *transport.Client
}

// NewMutator creates a new write gateway on top of the given backend client
func NewMutator(client *transport.Client) *Mutator {
	return &Mutator{
		client: client,
	}
}

// Mutate performs a state-changing request against the given endpoint.
// On success the decoded response payload is returned; a response without a body decodes to the
// zero value. On any failure the result is nil together with the classified error, and the caller
// has to treat it as "operation did not take effect". The gateway never retries.
func Mutate[T any](ctx context.Context, mutator *Mutator, endpoint, method string, body any) (*T, error) {
	payload, err := mutator.client.Do(ctx, &transport.Request{
		Endpoint: endpoint,
		Method:   method,
		Body:     body,
	})
	if err != nil {
		log.Warn().Str("endpoint", endpoint).Str("method", method).Err(err).Msg("mutation was not persisted")
		return nil, err
	}

	result := new(T)
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, result); err != nil {
			outcome := &transport.NetworkError{Endpoint: endpoint, Err: err}
			log.Warn().Str("endpoint", endpoint).Str("method", method).Err(outcome).Msg("mutation response was unusable")
			return nil, outcome
		}
	}
	return result, nil
}
