package truegate

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeTokenDecode        = "TOKEN_DECODE_FAILED"
	textCodeTokenExpired       = "TOKEN_EXPIRED"
	textCodeUnauthorized       = "SESSION_UNAUTHORIZED"
	textCodeServerUnavailable  = "SERVER_UNAVAILABLE"
	textCodeNetworkUnreachable = "NETWORK_UNREACHABLE"
)

// ErrTokenDecode is returned when a persisted token cannot be decoded.
// Callers treat it as "no usable session", never as a fatal condition.
var ErrTokenDecode = goerrors.New("unable to decode session token", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenDecode)

// ErrTokenExpired is returned for tokens whose claims decoded but are no
// longer live. A missing expiry counts as expired.
var ErrTokenExpired = goerrors.New("session token is expired", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenExpired)

// ErrUnauthorized is the 401-off-login-path error; receiving it means the
// stored token has already been erased.
var ErrUnauthorized = goerrors.New("session is no longer valid", goerrors.CategoryAuth).
	WithTextCode(textCodeUnauthorized).
	WithCode(goerrors.CodeUnauthorized)

// ErrServerUnavailable covers 5xx responses from the portal API.
var ErrServerUnavailable = goerrors.New("server error, try again later", goerrors.CategoryOperation).
	WithTextCode(textCodeServerUnavailable)

// ErrNetworkUnreachable covers transport-level failures reaching the API.
var ErrNetworkUnreachable = goerrors.New("network unreachable", goerrors.CategoryOperation).
	WithTextCode(textCodeNetworkUnreachable)

// IsDecodeError reports whether err marks an undecodable session token.
func IsDecodeError(err error) bool {
	return hasTextCode(err, textCodeTokenDecode)
}

// IsExpiredError reports whether err marks an expired session token.
func IsExpiredError(err error) bool {
	return hasTextCode(err, textCodeTokenExpired)
}

// IsAuthError reports whether err is the forced-logout 401 condition.
func IsAuthError(err error) bool {
	return hasTextCode(err, textCodeUnauthorized)
}

// IsServerError reports whether err represents a 5xx portal response.
func IsServerError(err error) bool {
	return hasTextCode(err, textCodeServerUnavailable)
}

// IsNetworkError reports whether err represents an unreachable backend.
func IsNetworkError(err error) bool {
	return hasTextCode(err, textCodeNetworkUnreachable)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
