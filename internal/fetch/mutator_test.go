package fetch_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dandigam/village-health-hub-sub001/internal/fetch"
	"github.com/dandigam/village-health-hub-sub001/internal/transport"
)

type patient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newMutator(t *testing.T, handler http.HandlerFunc) *fetch.Mutator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return fetch.NewMutator(transport.New(server.URL, time.Second, nil, nil))
}

func TestMutate_Success(t *testing.T) {
	var gotBody []byte
	mutator := newMutator(t, func(writer http.ResponseWriter, request *http.Request) {
		gotBody, _ = io.ReadAll(request.Body)
		writer.WriteHeader(http.StatusCreated)
		writer.Write([]byte(`{"id":"pat-9","name":"Asha Verma"}`))
	})

	created, err := fetch.Mutate[patient](context.Background(), mutator, "/patients", http.MethodPost, map[string]string{"name": "Asha Verma"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if created == nil || created.ID != "pat-9" {
		t.Fatalf("expected the created patient, got %+v", created)
	}

	var sent map[string]string
	if err := json.Unmarshal(gotBody, &sent); err != nil || sent["name"] != "Asha Verma" {
		t.Fatalf("expected the request body to carry the patient, got %s", gotBody)
	}
}

func TestMutate_EmptyResponseBody(t *testing.T) {
	mutator := newMutator(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})

	created, err := fetch.Mutate[patient](context.Background(), mutator, "/patients", http.MethodPost, nil)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if created == nil {
		t.Fatalf("expected a non-nil zero value result for an empty response body")
	}
}

func TestMutate_FailureReturnsNilSentinel(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"http error": func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusBadRequest)
		},
		"unusable response": func(writer http.ResponseWriter, _ *http.Request) {
			writer.Write([]byte("not json"))
		},
	}
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			mutator := newMutator(t, handler)

			created, err := fetch.Mutate[patient](context.Background(), mutator, "/patients", http.MethodPost, nil)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if created != nil {
				t.Fatalf("a failed mutation must not fabricate a result, got %+v", created)
			}
		})
	}
}

func TestMutate_UnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()
	mutator := fetch.NewMutator(transport.New(server.URL, time.Second, nil, nil))

	created, err := fetch.Mutate[patient](context.Background(), mutator, "/patients", http.MethodPost, nil)
	if err == nil || created != nil {
		t.Fatalf("expected a nil result and an error, got %+v, %v", created, err)
	}
}
