package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dandigam/village-health-hub-sub001/internal/random"
	"github.com/dandigam/village-health-hub-sub001/internal/role"
)

var (
	// ErrInvalidLogin is returned when the backend rejected the login and no offline fallback
	// session may be issued
	ErrInvalidLogin = errors.New("the backend rejected the login")

	// ErrExpiredCredential is returned when a login produced a credential whose expiry instant
	// has already elapsed
	ErrExpiredCredential = errors.New("the issued credential is already expired")
)

const (
	offlineTokenPrefix     = "offline-"
	offlineSessionLifetime = 24 * time.Hour
)

// Authenticator performs the credential exchange against the camp backend
type Authenticator interface {
	// Authenticate exchanges the given login credentials for a session credential
	Authenticate(ctx context.Context, username, password string) (*Credential, error)
}

// Store owns the session lifecycle of the console process. It is either anonymous or holds
// exactly one authenticated credential, and it is the single writer of the persisted session
// record: no other component mutates persisted session state.
//
// Every transition into the authenticated state arms the expiry monitor; every transition out of
// it disarms the monitor, so at most one live expiry timer exists per session epoch.
type Store struct {
	mtx     sync.Mutex
	storage Storage
	auth    Authenticator
	monitor *Monitor

	// offlineLogin controls whether a failed backend login is downgraded to a local fallback
	// session instead of surfacing as an error
	offlineLogin bool

	now func() time.Time

	current *Credential
}

// NewStore creates a new anonymous session store on top of the given persisted record storage
func NewStore(storage Storage, auth Authenticator, offlineLogin bool) *Store {
	return &Store{
		storage:      storage,
		auth:         auth,
		monitor:      NewMonitor(),
		offlineLogin: offlineLogin,
		now:          time.Now,
	}
}

// Current returns the credential of the current session, or nil if the store is anonymous.
// The returned credential is read-only.
func (store *Store) Current() *Credential {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	return store.current
}

// Subject returns the subject of the current session, or nil if the store is anonymous
func (store *Store) Subject() *Subject {
	credential := store.Current()
	if credential == nil {
		return nil
	}
	return credential.Subject
}

// Token returns the bearer token of the current session and whether one exists.
// This implements the transport layer's token source.
func (store *Store) Token() (string, bool) {
	credential := store.Current()
	if credential == nil {
		return "", false
	}
	return credential.Token, true
}

// Login exchanges the given credentials for a session credential, persists it and transitions
// the store into the authenticated state.
// If the exchange fails and offline logins are enabled, a locally issued fallback credential is
// used instead so the console stays usable without a reachable backend. This is deliberately
// loud in the log because the resulting session never touched the backend.
func (store *Store) Login(ctx context.Context, username, password string) (*Credential, error) {
	credential, err := store.auth.Authenticate(ctx, username, password)
	if err != nil {
		if !store.offlineLogin {
			log.Warn().Str("username", username).Err(err).Msg("login failed")
			return nil, errors.Join(ErrInvalidLogin, err)
		}
		credential = store.offlineCredential()
		log.Warn().
			Str("username", username).
			Str("role", string(credential.Subject.Role)).
			Time("expires_at", credential.ExpiresAt).
			Err(err).
			Msg("backend login failed; issuing an OFFLINE fallback session")
	}

	store.mtx.Lock()
	defer store.mtx.Unlock()
	return store.beginLocked(ctx, credential)
}

// Logout transitions the store into the anonymous state and erases the persisted record.
// It is safe to call when the store is already anonymous.
func (store *Store) Logout(ctx context.Context) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	return store.endLocked(ctx)
}

// Restore loads the persisted session record and transitions the store into the authenticated
// state if the record is complete and not yet expired. Partial, invalid or expired records are
// erased and leave the store anonymous. Restore is meant to be called once at process start.
func (store *Store) Restore(ctx context.Context) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()

	record, err := store.storage.Load(ctx)
	if err != nil {
		return err
	}
	if record.Empty() {
		return nil
	}
	if !record.Complete() {
		log.Warn().Msg("persisted session record is incomplete; discarding it")
		return store.endLocked(ctx)
	}

	credential, err := decodeRecord(record)
	if err != nil {
		log.Warn().Err(err).Msg("persisted session record is invalid; discarding it")
		return store.endLocked(ctx)
	}

	remaining := credential.ExpiresAt.Sub(store.now())
	if remaining <= 0 {
		log.Info().Time("expired_at", credential.ExpiresAt).Msg("persisted session is expired; discarding it")
		return store.endLocked(ctx)
	}

	store.current = credential
	store.monitor.Arm(remaining, store.expire)
	log.Info().
		Str("subject", credential.Subject.ID).
		Str("role", string(credential.Subject.Role)).
		Time("expires_at", credential.ExpiresAt).
		Msg("restored persisted session")
	return nil
}

// Close disarms the expiry monitor without touching the persisted record
func (store *Store) Close() {
	store.monitor.Disarm()
}

func (store *Store) beginLocked(ctx context.Context, credential *Credential) (*Credential, error) {
	remaining := credential.ExpiresAt.Sub(store.now())
	if remaining <= 0 {
		if err := store.endLocked(ctx); err != nil {
			return nil, err
		}
		return nil, ErrExpiredCredential
	}

	record, err := encodeRecord(credential)
	if err != nil {
		return nil, err
	}
	if err := store.storage.Store(ctx, record); err != nil {
		return nil, err
	}

	store.current = credential
	store.monitor.Arm(remaining, store.expire)
	return credential, nil
}

func (store *Store) endLocked(ctx context.Context) error {
	store.monitor.Disarm()
	store.current = nil
	return store.storage.Erase(ctx)
}

// expire is the monitor callback that ends the session whose timer fired.
// The decision to end is made under the store lock against the current state: a callback that
// fired for an earlier session but only acquired the lock after a logout and re-login must not
// end the newer session, whose own expiry still lies in the future.
func (store *Store) expire() {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	if store.current == nil || store.current.ExpiresAt.After(store.now()) {
		return
	}
	log.Info().Msg("session expiry elapsed; forcing logout")
	if err := store.endLocked(context.Background()); err != nil {
		log.Error().Err(err).Msg("could not erase the persisted session record of an expired session")
	}
}

func (store *Store) offlineCredential() *Credential {
	return &Credential{
		Token: offlineTokenPrefix + random.String(32, random.CharsetTokens),
		Subject: &Subject{
			ID:   "offline",
			Name: "Offline Operator",
			Role: role.Admin,
		},
		ExpiresAt: store.now().Add(offlineSessionLifetime),
	}
}

func encodeRecord(credential *Credential) (*Record, error) {
	subject, err := json.Marshal(credential.Subject)
	if err != nil {
		return nil, err
	}
	return &Record{
		Token:     credential.Token,
		Subject:   string(subject),
		ExpiresAt: credential.ExpiresAt.Format(time.RFC3339),
	}, nil
}

func decodeRecord(record *Record) (*Credential, error) {
	expiresAt, err := time.Parse(time.RFC3339, record.ExpiresAt)
	if err != nil {
		return nil, err
	}
	subject := new(Subject)
	if err := json.Unmarshal([]byte(record.Subject), subject); err != nil {
		return nil, err
	}
	if subject.ID == "" || !subject.Role.Valid() {
		return nil, errors.New("persisted subject is missing its ID or carries an unknown role")
	}
	return &Credential{
		Token:     record.Token,
		Subject:   subject,
		ExpiresAt: expiresAt,
	}, nil
}
