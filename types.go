package truegate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Notifier surfaces user-visible messages, standing in for the portal's
// toast layer. Implementations must be safe to call from any goroutine.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// Navigator performs a forced route change, e.g. back to the login page
// after an authentication failure.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function into a Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	if f != nil {
		f(path)
	}
}

// TokenStore persists the bearer session token across process restarts.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Erase() error
}

// PortalAPI holds one method per remote portal operation. Client is the
// canonical implementation; consumers depend on the interface so tests can
// substitute doubles.
type PortalAPI interface {
	Login(ctx context.Context, payload LoginPayload) (*LoginResponse, error)
	Register(ctx context.Context, payload RegisterPayload) (*MessageResponse, error)
	VerifyEmail(ctx context.Context, token, email string) (*MessageResponse, error)
	ResendVerification(ctx context.Context) (*MessageResponse, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, email string, patch UserPatch) (*MessageResponse, error)
	ChangePassword(ctx context.Context, payload ChangePasswordPayload) (*MessageResponse, error)
	RequestPasswordReset(ctx context.Context, email string) (*MessageResponse, error)
	ResetPassword(ctx context.Context, token, password string) (*MessageResponse, error)
}

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetTimeout() time.Duration
	GetTokenStoragePath() string
	GetCSRFHeaderName() string
	GetDegradedFallback() bool
	GetDebug() bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] TRUEGATE "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] TRUEGATE "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] TRUEGATE "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] TRUEGATE "+newline(format), args...)
}

func newline(format string) string {
	if !strings.HasSuffix(format, "\n") {
		format = format + "\n"
	}
	return format
}

// defNotifier routes notifications through a Logger when no real toast
// surface is wired.
type defNotifier struct {
	logger Logger
}

func (n defNotifier) Success(message string) { n.log().Info("notify success: %s", message) }
func (n defNotifier) Error(message string)   { n.log().Warn("notify error: %s", message) }
func (n defNotifier) Info(message string)    { n.log().Info("notify info: %s", message) }

func (n defNotifier) log() Logger {
	if n.logger != nil {
		return n.logger
	}
	return defLogger{}
}

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}
