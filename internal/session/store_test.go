package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dandigam/village-health-hub-sub001/internal/role"
)

type fakeStorage struct {
	record Record
	erases int
}

func (storage *fakeStorage) Initialize(_ context.Context) error {
	return nil
}

func (storage *fakeStorage) Load(_ context.Context) (*Record, error) {
	record := storage.record
	return &record, nil
}

func (storage *fakeStorage) Store(_ context.Context, record *Record) error {
	storage.record = *record
	return nil
}

func (storage *fakeStorage) Erase(_ context.Context) error {
	storage.record = Record{}
	storage.erases++
	return nil
}

func (storage *fakeStorage) Close() {}

type fakeAuthenticator struct {
	ttl   time.Duration
	err   error
	calls int
}

func (auth *fakeAuthenticator) Authenticate(_ context.Context, username, _ string) (*Credential, error) {
	auth.calls++
	if auth.err != nil {
		return nil, auth.err
	}
	return &Credential{
		Token: "token-" + username,
		Subject: &Subject{
			ID:   "usr-1",
			Name: username,
			Role: role.Doctor,
		},
		ExpiresAt: time.Now().Add(auth.ttl),
	}, nil
}

func TestStore_Login(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, &fakeAuthenticator{ttl: time.Hour}, false)
	defer store.Close()

	credential, err := store.Login(context.Background(), "meera", "secret")
	if err != nil {
		t.Fatalf("expected a successful login, got %v", err)
	}
	if credential.Token != "token-meera" {
		t.Fatalf("unexpected token: %q", credential.Token)
	}
	if store.Current() == nil {
		t.Fatalf("expected the store to be authenticated")
	}
	if !storage.record.Complete() {
		t.Fatalf("expected all three record entries to be persisted, got %+v", storage.record)
	}
	if !store.monitor.Armed() {
		t.Fatalf("expected the expiry monitor to be armed")
	}

	token, ok := store.Token()
	if !ok || token != "token-meera" {
		t.Fatalf("expected the token source to serve the session token, got %q, %v", token, ok)
	}
}

func TestStore_LoginFailure(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, &fakeAuthenticator{err: errors.New("bad credentials")}, false)
	defer store.Close()

	_, err := store.Login(context.Background(), "meera", "wrong")
	if !errors.Is(err, ErrInvalidLogin) {
		t.Fatalf("expected an invalid login error, got %v", err)
	}
	if store.Current() != nil {
		t.Fatalf("expected the store to stay anonymous")
	}
}

func TestStore_LoginFailureOfflineFallback(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, &fakeAuthenticator{err: errors.New("backend unreachable")}, true)
	defer store.Close()

	credential, err := store.Login(context.Background(), "meera", "secret")
	if err != nil {
		t.Fatalf("expected an offline fallback session, got %v", err)
	}
	if !strings.HasPrefix(credential.Token, "offline-") {
		t.Fatalf("expected an offline token, got %q", credential.Token)
	}
	if credential.Subject.Role != role.Admin {
		t.Fatalf("expected the fixed offline role, got %q", credential.Subject.Role)
	}
	remaining := time.Until(credential.ExpiresAt)
	if remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Fatalf("expected a 24h offline session, got %v", remaining)
	}
	if !storage.record.Complete() {
		t.Fatalf("expected the offline session to be persisted")
	}
}

func TestStore_LoginAlreadyExpiredCredential(t *testing.T) {
	store := NewStore(&fakeStorage{}, &fakeAuthenticator{ttl: -time.Minute}, false)
	defer store.Close()

	_, err := store.Login(context.Background(), "meera", "secret")
	if !errors.Is(err, ErrExpiredCredential) {
		t.Fatalf("expected an expired credential error, got %v", err)
	}
	if store.Current() != nil {
		t.Fatalf("expected the store to stay anonymous")
	}
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, &fakeAuthenticator{ttl: time.Hour}, false)
	defer store.Close()

	if _, err := store.Login(context.Background(), "meera", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if store.Current() != nil {
		t.Fatalf("expected the store to be anonymous after logout")
	}
	if !storage.record.Empty() {
		t.Fatalf("expected the persisted record to be erased, got %+v", storage.record)
	}
	if store.monitor.Armed() {
		t.Fatalf("expected the expiry monitor to be disarmed after logout")
	}

	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("logout of an anonymous store failed: %v", err)
	}
}

func TestStore_Restore(t *testing.T) {
	storage := &fakeStorage{}
	record, err := encodeRecord(&Credential{
		Token:     "token-1",
		Subject:   &Subject{ID: "usr-1", Name: "Meera", Role: role.Nurse},
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("could not encode the record: %v", err)
	}
	storage.record = *record

	store := NewStore(storage, nil, false)
	defer store.Close()

	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	credential := store.Current()
	if credential == nil {
		t.Fatalf("expected the store to be authenticated after restore")
	}
	if credential.Subject.Role != role.Nurse {
		t.Fatalf("unexpected restored role: %q", credential.Subject.Role)
	}
	if !store.monitor.Armed() {
		t.Fatalf("expected the expiry monitor to be armed after restore")
	}
}

func TestStore_RestoreExpiredCredential(t *testing.T) {
	storage := &fakeStorage{}
	record, err := encodeRecord(&Credential{
		Token:     "token-1",
		Subject:   &Subject{ID: "usr-1", Name: "Meera", Role: role.Nurse},
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	if err != nil {
		t.Fatalf("could not encode the record: %v", err)
	}
	storage.record = *record

	store := NewStore(storage, nil, false)
	defer store.Close()

	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if store.Current() != nil {
		t.Fatalf("expected an expired persisted session to end up anonymous")
	}
	if !storage.record.Empty() {
		t.Fatalf("expected the expired record to be erased, got %+v", storage.record)
	}
}

func TestStore_RestorePartialRecord(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{"token only", Record{Token: "token-1"}},
		{"missing expiry", Record{Token: "token-1", Subject: `{"id":"usr-1","name":"Meera","role":"NURSE"}`}},
		{"unparseable expiry", Record{Token: "token-1", Subject: `{"id":"usr-1","name":"Meera","role":"NURSE"}`, ExpiresAt: "someday"}},
		{"unknown role", Record{Token: "token-1", Subject: `{"id":"usr-1","name":"Meera","role":"INTERN"}`, ExpiresAt: "2099-01-01T00:00:00Z"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			storage := &fakeStorage{record: test.record}
			store := NewStore(storage, nil, false)
			defer store.Close()

			if err := store.Restore(context.Background()); err != nil {
				t.Fatalf("restore failed: %v", err)
			}
			if store.Current() != nil {
				t.Fatalf("expected an unusable persisted record to end up anonymous")
			}
			if !storage.record.Empty() {
				t.Fatalf("expected the unusable record to be erased, got %+v", storage.record)
			}
		})
	}
}

func TestStore_RestoreEmptyStorage(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, nil, false)
	defer store.Close()

	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if store.Current() != nil {
		t.Fatalf("expected the store to stay anonymous")
	}
	if storage.erases != 0 {
		t.Fatalf("expected restore of an empty storage not to erase anything")
	}
}

func TestStore_ExpiryForcesLogout(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, &fakeAuthenticator{ttl: 100 * time.Millisecond}, false)
	defer store.Close()

	if _, err := store.Login(context.Background(), "meera", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	time.Sleep(250 * time.Millisecond)

	if store.Current() != nil {
		t.Fatalf("expected the session to be force-ended after its expiry elapsed")
	}
	if !storage.record.Empty() {
		t.Fatalf("expected the persisted record to be erased on forced logout")
	}
}

// A stale expiry timer of a previous session epoch must never end a newer session: logging out
// and immediately logging back in leaves exactly one live timer, the new session's one.
func TestStore_SingleTimerPerSessionEpoch(t *testing.T) {
	storage := &fakeStorage{}
	auth := &fakeAuthenticator{ttl: 150 * time.Millisecond}
	store := NewStore(storage, auth, false)
	defer store.Close()

	if _, err := store.Login(context.Background(), "meera", "secret"); err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	auth.ttl = 600 * time.Millisecond
	if _, err := store.Login(context.Background(), "meera", "secret"); err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	// Wait past the first session's expiry instant; the second session has to survive it
	time.Sleep(300 * time.Millisecond)
	if store.Current() == nil {
		t.Fatalf("a stale expiry timer ended the newer session")
	}

	// The second session still expires on its own schedule
	time.Sleep(450 * time.Millisecond)
	if store.Current() != nil {
		t.Fatalf("expected the second session to expire eventually")
	}
}

// A timer callback that already fired for an old session but only acquires the store lock after
// a logout and re-login must leave the new session untouched. The test provokes exactly that
// interleaving: it holds the store lock across the expiry instant so the callback is blocked
// between its scheduling check and the expiry decision, replaces the session underneath it and
// only then lets it proceed.
func TestStore_StaleExpiryDoesNotEndNewSession(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, &fakeAuthenticator{ttl: 50 * time.Millisecond}, false)
	defer store.Close()

	if _, err := store.Login(context.Background(), "meera", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	store.mtx.Lock()
	time.Sleep(150 * time.Millisecond)

	if err := store.endLocked(context.Background()); err != nil {
		store.mtx.Unlock()
		t.Fatalf("could not end the first session: %v", err)
	}
	fresh := &Credential{
		Token:     "token-fresh",
		Subject:   &Subject{ID: "usr-2", Name: "Arjun", Role: role.Doctor},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if _, err := store.beginLocked(context.Background(), fresh); err != nil {
		store.mtx.Unlock()
		t.Fatalf("could not begin the second session: %v", err)
	}
	store.mtx.Unlock()

	// Let the blocked callback acquire the lock and make its decision
	time.Sleep(100 * time.Millisecond)

	credential := store.Current()
	if credential == nil || credential.Token != "token-fresh" {
		t.Fatalf("a stale expiry callback ended a fresh session with an hour of lifetime left")
	}
	if !storage.record.Complete() {
		t.Fatalf("expected the fresh session to stay persisted, got %+v", storage.record)
	}
}

func TestStore_ReLoginReplacesSession(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, &fakeAuthenticator{ttl: time.Hour}, false)
	defer store.Close()

	if _, err := store.Login(context.Background(), "meera", "secret"); err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if _, err := store.Login(context.Background(), "arjun", "secret"); err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	credential := store.Current()
	if credential == nil || credential.Token != "token-arjun" {
		t.Fatalf("expected the second session to replace the first one, got %+v", credential)
	}
	if storage.record.Token != "token-arjun" {
		t.Fatalf("expected the persisted record to carry the new token, got %q", storage.record.Token)
	}
}
