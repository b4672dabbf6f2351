package truegate_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	truegate "github.com/truegate/go-client"
)

// MockPortalAPI implements truegate.PortalAPI
type MockPortalAPI struct {
	mock.Mock
}

func (m *MockPortalAPI) Login(ctx context.Context, payload truegate.LoginPayload) (*truegate.LoginResponse, error) {
	args := m.Called(ctx, payload)
	res, _ := args.Get(0).(*truegate.LoginResponse)
	return res, args.Error(1)
}

func (m *MockPortalAPI) Register(ctx context.Context, payload truegate.RegisterPayload) (*truegate.MessageResponse, error) {
	args := m.Called(ctx, payload)
	res, _ := args.Get(0).(*truegate.MessageResponse)
	return res, args.Error(1)
}

func (m *MockPortalAPI) VerifyEmail(ctx context.Context, token, email string) (*truegate.MessageResponse, error) {
	args := m.Called(ctx, token, email)
	res, _ := args.Get(0).(*truegate.MessageResponse)
	return res, args.Error(1)
}

func (m *MockPortalAPI) ResendVerification(ctx context.Context) (*truegate.MessageResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*truegate.MessageResponse)
	return res, args.Error(1)
}

func (m *MockPortalAPI) ListUsers(ctx context.Context) ([]truegate.User, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]truegate.User)
	return res, args.Error(1)
}

func (m *MockPortalAPI) UpdateUser(ctx context.Context, email string, patch truegate.UserPatch) (*truegate.MessageResponse, error) {
	args := m.Called(ctx, email, patch)
	res, _ := args.Get(0).(*truegate.MessageResponse)
	return res, args.Error(1)
}

func (m *MockPortalAPI) ChangePassword(ctx context.Context, payload truegate.ChangePasswordPayload) (*truegate.MessageResponse, error) {
	args := m.Called(ctx, payload)
	res, _ := args.Get(0).(*truegate.MessageResponse)
	return res, args.Error(1)
}

func (m *MockPortalAPI) RequestPasswordReset(ctx context.Context, email string) (*truegate.MessageResponse, error) {
	args := m.Called(ctx, email)
	res, _ := args.Get(0).(*truegate.MessageResponse)
	return res, args.Error(1)
}

func (m *MockPortalAPI) ResetPassword(ctx context.Context, token, password string) (*truegate.MessageResponse, error) {
	args := m.Called(ctx, token, password)
	res, _ := args.Get(0).(*truegate.MessageResponse)
	return res, args.Error(1)
}

// recordingNotifier captures toast messages for assertions
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	infos     []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *recordingNotifier) Info(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, message)
}

func (n *recordingNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// recordingNavigator captures forced redirects
type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}
