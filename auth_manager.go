package truegate

import (
	"context"
	"time"
)

// AuthManager coordinates the session lifecycle: it is the sole writer of
// the session store's "set" path and of the persisted token's "save" path.
// Presentation layers call its methods directly and otherwise only read
// store snapshots.
//
// Two known gaps are preserved deliberately: there is no guard against a
// second login attempt while one is in flight (the UI disables the form),
// and there is no silent token refresh flow.
type AuthManager struct {
	api       PortalAPI
	store     *SessionStore
	tokens    TokenStore
	logger    Logger
	notifier  Notifier
	navigator Navigator
	redirect  string
}

// NewAuthManager wires the orchestrator over the pipeline, store, and
// token storage. The token store must be the same instance the store and
// pipeline use, or the set/clear paths would disagree about persistence.
func NewAuthManager(api PortalAPI, store *SessionStore, tokens TokenStore) *AuthManager {
	return &AuthManager{
		api:       api,
		store:     store,
		tokens:    tokens,
		logger:    defLogger{},
		notifier:  defNotifier{},
		navigator: noopNavigator{},
	}
}

func (m *AuthManager) WithLogger(logger Logger) *AuthManager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

func (m *AuthManager) WithNotifier(notifier Notifier) *AuthManager {
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

func (m *AuthManager) WithNavigator(navigator Navigator) *AuthManager {
	if navigator != nil {
		m.navigator = navigator
	}
	return m
}

// Initialize restores the persisted session; see SessionStore.Initialize.
func (m *AuthManager) Initialize(ctx context.Context) Snapshot {
	return m.store.Initialize(ctx)
}

// Store exposes the session store for read-only consumers (guards, views).
func (m *AuthManager) Store() *SessionStore {
	return m.store
}

// SetRedirect remembers the path an anonymous user was bounced from, so a
// successful login can return them there.
func (m *AuthManager) SetRedirect(path string) {
	m.redirect = path
}

// GetRedirectOrDefault consumes the remembered path, falling back to the
// role home for the given session.
func (m *AuthManager) GetRedirectOrDefault(session *Session) string {
	if m.redirect != "" {
		path := m.redirect
		m.redirect = ""
		return path
	}
	if session.IsAdmin() {
		return RouteAdminDashboard
	}
	return RouteUserHome
}

// Login validates the credentials, runs the pipeline login, persists the
// returned token, and transitions the store to Authenticated. On failure
// the store is untouched and the rejection propagates for display.
func (m *AuthManager) Login(ctx context.Context, payload LoginPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	res, err := m.api.Login(ctx, payload)
	if err != nil {
		m.logger.Info("login rejected for %s: %v", payload.Email, err)
		return err
	}

	if res.Token != "" {
		// best effort: an unwritable disk should not block the login
		if err := m.tokens.Save(res.Token); err != nil {
			m.logger.Warn("could not persist session token: %v", err)
		}
	}

	session := res.User
	if session == nil {
		session = fabricateUser(payload.Email, time.Now())
	}
	m.store.Set(session)
	m.notifier.Success("Login successful!")
	m.navigator.Navigate(m.GetRedirectOrDefault(session))
	return nil
}

// Register creates the account but never authenticates: the user must
// verify email and then log in. Session state is untouched either way.
func (m *AuthManager) Register(ctx context.Context, payload RegisterPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	_, err := m.api.Register(ctx, payload)
	return err
}

// Logout clears the store (which erases the persisted token) and lands in
// Anonymous. It is synchronous, idempotent, and deliberately makes no
// network call: the server keeps no session to invalidate.
func (m *AuthManager) Logout() {
	m.store.Clear()
	m.notifier.Success("Logged out successfully")
}

// UpdateUser sends the partial profile update for the current session and,
// only after a confirmed success, shallow-merges the patch into the live
// session. The server response body is not re-read into the session. When
// anonymous this is a no-op.
func (m *AuthManager) UpdateUser(ctx context.Context, patch UserPatch) error {
	session, state := m.store.Get()
	if state != StateAuthenticated || session == nil {
		return nil
	}
	if patch.IsZero() {
		return nil
	}

	if _, err := m.api.UpdateUser(ctx, session.Email, patch); err != nil {
		return err
	}

	updated := session.Clone()
	updated.Merge(patch)
	m.store.Set(updated)
	return nil
}

// ChangePassword validates and forwards the password change. No session
// mutation; the current token stays valid.
func (m *AuthManager) ChangePassword(ctx context.Context, payload ChangePasswordPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	_, err := m.api.ChangePassword(ctx, payload)
	return err
}

// ResendVerification is a stateless pass-through to the pipeline.
func (m *AuthManager) ResendVerification(ctx context.Context) error {
	_, err := m.api.ResendVerification(ctx)
	return err
}

// VerifyEmail is a stateless pass-through to the pipeline.
func (m *AuthManager) VerifyEmail(ctx context.Context, token, email string) error {
	_, err := m.api.VerifyEmail(ctx, token, email)
	return err
}

// RequestPasswordReset is a stateless pass-through to the pipeline.
func (m *AuthManager) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := m.api.RequestPasswordReset(ctx, email)
	return err
}

// ResetPassword is a stateless pass-through to the pipeline.
func (m *AuthManager) ResetPassword(ctx context.Context, token, password string) error {
	_, err := m.api.ResetPassword(ctx, token, password)
	return err
}
