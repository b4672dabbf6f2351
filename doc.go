// Package truegate is the client SDK for the TrueGate smart-home security
// portal. It owns the session and request-pipeline core shared by every
// portal front end: decoding bearer tokens into sessions, holding the
// current identity, guarding navigation, and wrapping the remote HTTP API
// with authentication, anti-forgery, and degraded-mode policy.
//
// Session lifecycle:
//   - SessionStore holds zero-or-one Session per process and starts in a
//     Loading state until Initialize restores (or discards) the persisted
//     token. Consumers subscribe for change notifications instead of
//     polling, so protected views never flash an anonymous redirect while
//     restoration is still in flight.
//   - AuthManager is the sole writer of the store and of the persisted
//     token. Login, Logout, Register, and profile updates all funnel
//     through it; the presentation layer only reads snapshots.
//
// Request pipeline:
//   - Client attaches the stored bearer token to every request and fetches
//     a fresh anti-forgery token before each mutating call. A 401 off the
//     login path erases the stored token and forces navigation back to the
//     login route. Server and network failures surface through a Notifier
//     and still reject the operation for the caller.
//   - Degraded fallback, when enabled in Config, fabricates a marked login
//     or register success while the backend is unreachable. It never
//     applies to security-sensitive calls such as password changes.
package truegate
