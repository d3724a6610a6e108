package telemetry

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dandigam/village-health-hub-sub001/internal/hashmap"
	"github.com/dandigam/village-health-hub-sub001/internal/threadsafe"
)

// Outcome labels the result of a single backend request
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeHTTPError    Outcome = "http_error"
	OutcomeTimeout      Outcome = "timeout"
	OutcomeNetworkError Outcome = "network_error"
	OutcomeFallback     Outcome = "fallback_served"
)

// Tracker keeps track of per-endpoint request outcomes and flushes them to the log in batches
// in order to keep per-request logging cheap
type Tracker struct {
	counts    hashmap.Map[string, int64]
	lastError *threadsafe.Map[string, string]
}

// NewTracker creates a new request outcome tracker
func NewTracker() *Tracker {
	return &Tracker{
		counts:    hashmap.NewNormal[string, int64](),
		lastError: threadsafe.NewMap[string, string](),
	}
}

// Record accumulates the outcome of a single request against an endpoint.
// The increment runs under the map lock, so concurrent requests never lose counts.
func (tracker *Tracker) Record(endpoint string, outcome Outcome) {
	key := counterKey(endpoint, outcome)
	tracker.counts.BootstrappedManipulation(func(underlying map[string]int64) {
		underlying[key]++
	})
}

// RecordError accumulates a failed request and remembers its error as the most recent one of the endpoint
func (tracker *Tracker) RecordError(endpoint string, outcome Outcome, err error) {
	tracker.Record(endpoint, outcome)
	if err != nil {
		tracker.lastError.Set(endpoint, err.Error())
	}
}

// Flush writes all accumulated counters to the log and resets them.
// It returns the amount of flushed counters.
func (tracker *Tracker) Flush() int {
	flushed := 0
	tracker.counts.BootstrappedManipulation(func(underlying map[string]int64) {
		if len(underlying) == 0 {
			return
		}
		event := log.Info()
		for key, count := range underlying {
			event = event.Int64(key, count)
			delete(underlying, key)
			flushed++
		}
		event.Msg("backend request outcomes")
	})
	if flushed > 0 {
		tracker.lastError.Range(func(endpoint, message string) {
			log.Debug().Str("endpoint", endpoint).Str("error", message).Msg("most recent backend error")
		})
		tracker.lastError.Reset()
	}
	return flushed
}

func counterKey(endpoint string, outcome Outcome) string {
	return fmt.Sprintf("%s|%s", endpoint, outcome)
}
