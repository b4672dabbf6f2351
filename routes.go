package truegate

// Portal route paths.
const (
	RouteHome           = "/"
	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteForgotPassword = "/forgot-password"
	RouteResetPassword  = "/reset-password"
	RouteVerifyEmail    = "/verify-email"
	RouteUserHome       = "/user/home"
	RouteUserDevices    = "/user/devices"
	RouteUserCameras    = "/user/cameras"
	RouteUserSettings   = "/user/settings"
	RouteUserProfile    = "/user/profile"
	RouteAdminDashboard = "/admin/dashboard"
	RouteAdminUsers     = "/admin/users"
	RouteAdminSettings  = "/admin/settings"
)

// Route describes one navigable portal target and its access policy.
type Route struct {
	Path          string
	RequiresAuth  bool
	RequiresAdmin bool
}

var routeTable = map[string]Route{
	RouteHome:           {Path: RouteHome},
	RouteLogin:          {Path: RouteLogin},
	RouteRegister:       {Path: RouteRegister},
	RouteForgotPassword: {Path: RouteForgotPassword},
	RouteResetPassword:  {Path: RouteResetPassword},
	RouteVerifyEmail:    {Path: RouteVerifyEmail},
	RouteUserHome:       {Path: RouteUserHome, RequiresAuth: true},
	RouteUserDevices:    {Path: RouteUserDevices, RequiresAuth: true},
	RouteUserCameras:    {Path: RouteUserCameras, RequiresAuth: true},
	RouteUserSettings:   {Path: RouteUserSettings, RequiresAuth: true},
	RouteUserProfile:    {Path: RouteUserProfile, RequiresAuth: true},
	RouteAdminDashboard: {Path: RouteAdminDashboard, RequiresAuth: true, RequiresAdmin: true},
	RouteAdminUsers:     {Path: RouteAdminUsers, RequiresAuth: true, RequiresAdmin: true},
	RouteAdminSettings:  {Path: RouteAdminSettings, RequiresAuth: true, RequiresAdmin: true},
}

// LookupRoute resolves a path against the portal route table.
func LookupRoute(path string) (Route, bool) {
	route, ok := routeTable[path]
	return route, ok
}

// Routes returns every registered route, mostly for menu rendering.
func Routes() []Route {
	out := make([]Route, 0, len(routeTable))
	for _, route := range routeTable {
		out = append(out, route)
	}
	return out
}
