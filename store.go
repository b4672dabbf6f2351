package truegate

import (
	"context"
	"sync"
	"time"
)

// StoreState is the session store's lifecycle state
type StoreState = string

const (
	// StateLoading means session restoration has not finished yet. Guards
	// must wait on it instead of treating it as anonymous, or a refresh
	// would flash a login redirect before restoration completes.
	StateLoading StoreState = "loading"
	// StateAnonymous means no session exists
	StateAnonymous StoreState = "anonymous"
	// StateAuthenticated means exactly one session is live
	StateAuthenticated StoreState = "authenticated"
)

// Snapshot is a point-in-time read of the store used by guards and views.
type Snapshot struct {
	State   StoreState
	Session *Session
}

// IsAuthenticated reports whether the snapshot carries a live session.
func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.Session != nil
}

// SessionStore holds zero-or-one Session for the process and owns the
// "clear" path of the persisted token: setting the store to anonymous also
// erases durable storage, so the invariant is structural rather than a
// convention spread across callers.
type SessionStore struct {
	mu        sync.RWMutex
	state     StoreState
	session   *Session
	tokens    TokenStore
	logger    Logger
	now       func() time.Time
	initOnce  sync.Once
	nextSubID int
	listeners map[int]func(Snapshot)
}

// NewSessionStore returns a store in the Loading state backed by the given
// token storage.
func NewSessionStore(tokens TokenStore) *SessionStore {
	return &SessionStore{
		state:     StateLoading,
		tokens:    tokens,
		logger:    defLogger{},
		now:       time.Now,
		listeners: map[int]func(Snapshot){},
	}
}

func (s *SessionStore) WithLogger(logger Logger) *SessionStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock injects a custom clock (useful for tests).
func (s *SessionStore) WithClock(clock func() time.Time) *SessionStore {
	if clock != nil {
		s.now = clock
	}
	return s
}

// Initialize restores the persisted session exactly once per process:
// load token, decode claims, check liveness. Any failure discards the
// token and lands in Anonymous; it never returns an error to the caller
// because every failure mode is just "no usable session".
func (s *SessionStore) Initialize(ctx context.Context) Snapshot {
	s.initOnce.Do(func() {
		select {
		case <-ctx.Done():
			s.transition(StateAnonymous, nil)
			return
		default:
		}

		token, err := s.tokens.Load()
		if err != nil {
			s.logger.Warn("session restore: token storage unreadable: %v", err)
			s.transition(StateAnonymous, nil)
			return
		}
		if token == "" {
			s.transition(StateAnonymous, nil)
			return
		}

		claims, err := DecodeToken(token)
		if err != nil {
			s.logger.Info("session restore: discarding undecodable token: %v", err)
			s.eraseToken()
			s.transition(StateAnonymous, nil)
			return
		}

		if !claims.LiveAt(s.now()) {
			s.logger.Info("session restore: discarding expired token")
			s.eraseToken()
			s.transition(StateAnonymous, nil)
			return
		}

		s.transition(StateAuthenticated, sessionFromClaims(claims, s.now()))
	})
	return s.Snapshot()
}

// Get returns the current session (nil when anonymous or loading) and the
// store state.
func (s *SessionStore) Get() (*Session, StoreState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.state
}

// Snapshot returns the current state as a value for guard evaluation.
func (s *SessionStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, Session: s.session}
}

// Set replaces the current session. Passing nil clears the store, which
// additionally erases the persisted token. Setting a session does NOT
// persist a token: token persistence belongs to the AuthManager at the
// moment the token is first obtained, because the store only ever holds
// the decoded identity.
func (s *SessionStore) Set(session *Session) {
	if session == nil {
		s.Clear()
		return
	}
	s.transition(StateAuthenticated, session)
}

// Clear drops the session, erases the persisted token, and lands in
// Anonymous. Calling it while already anonymous is a harmless no-op
// transition.
func (s *SessionStore) Clear() {
	s.eraseToken()
	s.transition(StateAnonymous, nil)
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Listeners run synchronously after each state change,
// last-write-wins.
func (s *SessionStore) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *SessionStore) transition(state StoreState, session *Session) {
	s.mu.Lock()
	s.state = state
	s.session = session
	snap := Snapshot{State: state, Session: session}
	targets := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		targets = append(targets, fn)
	}
	s.mu.Unlock()

	for _, fn := range targets {
		fn(snap)
	}
}

func (s *SessionStore) eraseToken() {
	if err := s.tokens.Erase(); err != nil {
		s.logger.Warn("could not erase persisted token: %v", err)
	}
}
