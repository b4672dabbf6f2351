package truegate

// NavigationIntent is the route a caller is attempting to reach, paired at
// evaluation time with a store snapshot. It is recomputed on every
// navigation and never stored.
type NavigationIntent struct {
	Path string
}

// GuardAction is the kind of decision a guard evaluation produces
type GuardAction = string

const (
	// ActionAllow permits rendering the target
	ActionAllow GuardAction = "allow"
	// ActionWait renders a neutral indicator while the session restores
	ActionWait GuardAction = "wait"
	// ActionRedirect sends the caller somewhere else
	ActionRedirect GuardAction = "redirect"
)

// Decision is the outcome of evaluating a navigation intent. Remember is
// set when an anonymous caller was bounced off a protected route, so the
// login flow can return them there afterwards.
type Decision struct {
	Action   GuardAction
	Target   string
	Remember string
}

// EvaluateRoute is a pure decision function over an intent and a store
// snapshot; it performs no I/O and no store mutation.
func EvaluateRoute(intent NavigationIntent, snap Snapshot) Decision {
	if snap.State == StateLoading {
		return Decision{Action: ActionWait}
	}

	route, known := LookupRoute(intent.Path)
	if !known {
		// unmatched paths resolve by role
		return Decision{Action: ActionRedirect, Target: ResolveFallback(snap)}
	}

	if route.RequiresAuth && !snap.IsAuthenticated() {
		return Decision{
			Action:   ActionRedirect,
			Target:   RouteLogin,
			Remember: intent.Path,
		}
	}

	if route.RequiresAdmin && !snap.Session.IsAdmin() {
		return Decision{Action: ActionRedirect, Target: RouteUserHome}
	}

	return Decision{Action: ActionAllow, Target: intent.Path}
}

// ResolveFallback picks the catch-all landing route for a snapshot:
// admins go to the admin dashboard, other authenticated users to the user
// home, everyone else to the landing page.
func ResolveFallback(snap Snapshot) string {
	if !snap.IsAuthenticated() {
		return RouteHome
	}
	if snap.Session.IsAdmin() {
		return RouteAdminDashboard
	}
	return RouteUserHome
}
