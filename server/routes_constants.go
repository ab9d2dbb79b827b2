package server

const (
	RouteAuthStart    = "/auth/x/start"
	RouteAuthCallback = "/auth/x/callback"
	RouteAuthLogout   = "/auth/logout"

	RouteAPIMe               = "/api/me"
	RouteAPIUsers            = "/api/users"
	RouteAPIUserByHandle     = "/api/users/{handle}"
	RouteAPIWallet           = "/api/users/wallet"
	RouteAPISubmissions      = "/api/submissions"
	RouteAPISubmissionsToday = "/api/submissions/today"
)
