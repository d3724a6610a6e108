package inmem

import (
	"context"
	"testing"

	"github.com/dandigam/village-health-hub-sub001/internal/session"
)

func TestDriver_Roundtrip(t *testing.T) {
	driver := New()
	if err := driver.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	defer driver.Close()

	loaded, err := driver.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !loaded.Empty() {
		t.Fatalf("expected a fresh driver to load an empty record, got %+v", loaded)
	}

	record := &session.Record{
		Token:     "token-1",
		Subject:   `{"id":"usr-1","name":"Meera","role":"DOCTOR"}`,
		ExpiresAt: "2026-09-01T10:00:00Z",
	}
	if err := driver.Store(context.Background(), record); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	loaded, err = driver.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *record {
		t.Fatalf("expected the loaded record to equal the stored one, got %+v", loaded)
	}
}

func TestDriver_StoreReplacesRecord(t *testing.T) {
	driver := New()
	if err := driver.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	defer driver.Close()

	first := &session.Record{Token: "token-1", Subject: "{}", ExpiresAt: "2026-09-01T10:00:00Z"}
	if err := driver.Store(context.Background(), first); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	second := &session.Record{Token: "token-2", Subject: "{}", ExpiresAt: "2026-09-02T10:00:00Z"}
	if err := driver.Store(context.Background(), second); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	loaded, err := driver.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *second {
		t.Fatalf("expected the second record to replace the first one, got %+v", loaded)
	}
}

func TestDriver_Erase(t *testing.T) {
	driver := New()
	if err := driver.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	defer driver.Close()

	record := &session.Record{Token: "token-1", Subject: "{}", ExpiresAt: "2026-09-01T10:00:00Z"}
	if err := driver.Store(context.Background(), record); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if err := driver.Erase(context.Background()); err != nil {
		t.Fatalf("erase failed: %v", err)
	}
	loaded, err := driver.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !loaded.Empty() {
		t.Fatalf("expected an erased storage to load an empty record, got %+v", loaded)
	}

	// Erasing again must stay a no-op
	if err := driver.Erase(context.Background()); err != nil {
		t.Fatalf("erase of an empty storage failed: %v", err)
	}
}
