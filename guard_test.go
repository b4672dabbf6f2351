package truegate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	truegate "github.com/truegate/go-client"
)

func snapshotFor(state truegate.StoreState, role truegate.UserRole) truegate.Snapshot {
	snap := truegate.Snapshot{State: state}
	if state == truegate.StateAuthenticated {
		snap.Session = &truegate.Session{ID: "u1", Email: "a@b.com", Role: role}
	}
	return snap
}

func TestEvaluateRoute(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		snap         truegate.Snapshot
		wantAction   truegate.GuardAction
		wantTarget   string
		wantRemember string
	}{
		{
			name:       "loading waits regardless of target",
			path:       truegate.RouteAdminUsers,
			snap:       snapshotFor(truegate.StateLoading, ""),
			wantAction: truegate.ActionWait,
		},
		{
			name:       "loading waits even on unknown paths",
			path:       "/no-such-page",
			snap:       snapshotFor(truegate.StateLoading, ""),
			wantAction: truegate.ActionWait,
		},
		{
			name:         "anonymous bounced off protected route remembers it",
			path:         truegate.RouteUserDevices,
			snap:         snapshotFor(truegate.StateAnonymous, ""),
			wantAction:   truegate.ActionRedirect,
			wantTarget:   truegate.RouteLogin,
			wantRemember: truegate.RouteUserDevices,
		},
		{
			name:       "anonymous may visit the landing page",
			path:       truegate.RouteHome,
			snap:       snapshotFor(truegate.StateAnonymous, ""),
			wantAction: truegate.ActionAllow,
			wantTarget: truegate.RouteHome,
		},
		{
			name:       "anonymous may visit login",
			path:       truegate.RouteLogin,
			snap:       snapshotFor(truegate.StateAnonymous, ""),
			wantAction: truegate.ActionAllow,
			wantTarget: truegate.RouteLogin,
		},
		{
			name:       "regular user blocked from admin routes",
			path:       truegate.RouteAdminDashboard,
			snap:       snapshotFor(truegate.StateAuthenticated, truegate.RoleUser),
			wantAction: truegate.ActionRedirect,
			wantTarget: truegate.RouteUserHome,
		},
		{
			name:       "regular user allowed on user routes",
			path:       truegate.RouteUserProfile,
			snap:       snapshotFor(truegate.StateAuthenticated, truegate.RoleUser),
			wantAction: truegate.ActionAllow,
			wantTarget: truegate.RouteUserProfile,
		},
		{
			name:       "admin allowed on admin routes",
			path:       truegate.RouteAdminUsers,
			snap:       snapshotFor(truegate.StateAuthenticated, truegate.RoleAdmin),
			wantAction: truegate.ActionAllow,
			wantTarget: truegate.RouteAdminUsers,
		},
		{
			name:       "unknown path resolves admin to admin home",
			path:       "/no-such-page",
			snap:       snapshotFor(truegate.StateAuthenticated, truegate.RoleAdmin),
			wantAction: truegate.ActionRedirect,
			wantTarget: truegate.RouteAdminDashboard,
		},
		{
			name:       "unknown path resolves user to user home",
			path:       "/no-such-page",
			snap:       snapshotFor(truegate.StateAuthenticated, truegate.RoleUser),
			wantAction: truegate.ActionRedirect,
			wantTarget: truegate.RouteUserHome,
		},
		{
			name:       "unknown path resolves anonymous to landing",
			path:       "/no-such-page",
			snap:       snapshotFor(truegate.StateAnonymous, ""),
			wantAction: truegate.ActionRedirect,
			wantTarget: truegate.RouteHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := truegate.EvaluateRoute(truegate.NavigationIntent{Path: tt.path}, tt.snap)
			assert.Equal(t, tt.wantAction, decision.Action)
			assert.Equal(t, tt.wantTarget, decision.Target)
			assert.Equal(t, tt.wantRemember, decision.Remember)
		})
	}
}

func TestResolveFallback(t *testing.T) {
	assert.Equal(t, truegate.RouteHome, truegate.ResolveFallback(snapshotFor(truegate.StateAnonymous, "")))
	assert.Equal(t, truegate.RouteHome, truegate.ResolveFallback(snapshotFor(truegate.StateLoading, "")))
	assert.Equal(t, truegate.RouteUserHome, truegate.ResolveFallback(snapshotFor(truegate.StateAuthenticated, truegate.RoleUser)))
	assert.Equal(t, truegate.RouteAdminDashboard, truegate.ResolveFallback(snapshotFor(truegate.StateAuthenticated, truegate.RoleAdmin)))
}
